// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"sync"
	"sync/atomic"
)

// Channel is a single-slot mailbox between the decoder and the renderer.
// Publish overwrites any frame that has not been taken yet, so a reader
// always sees the newest frame and never waits for one. The zero value is
// ready to use.
type Channel struct {
	mu      sync.Mutex
	pending *Frame

	published atomic.Uint64
	taken     atomic.Uint64
	dropped   atomic.Uint64
}

// ChannelStats is a snapshot of the channel counters.
type ChannelStats struct {
	Published uint64
	Taken     uint64
	Dropped   uint64
}

func NewChannel() *Channel { return &Channel{} }

// Publish stores f as the pending frame. It reports whether an unread
// frame was replaced. f must not be nil or modified afterwards.
func (c *Channel) Publish(f *Frame) (replaced bool) {
	c.mu.Lock()
	replaced = c.pending != nil
	c.pending = f
	c.mu.Unlock()

	c.published.Add(1)
	if replaced {
		c.dropped.Add(1)
	}
	return replaced
}

// TryTake removes and returns the pending frame. It returns false when no
// frame arrived since the last take.
func (c *Channel) TryTake() (*Frame, bool) {
	c.mu.Lock()
	f := c.pending
	c.pending = nil
	c.mu.Unlock()

	if f == nil {
		return nil, false
	}
	c.taken.Add(1)
	return f, true
}

func (c *Channel) Stats() ChannelStats {
	return ChannelStats{
		Published: c.published.Load(),
		Taken:     c.taken.Load(),
		Dropped:   c.dropped.Load(),
	}
}
