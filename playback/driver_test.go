// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ik5/kartina/formats"
	"github.com/ik5/kartina/internal/audiotest"
)

var errNoDevice = errors.New("no such device")

// recordingDevice wraps Discard and remembers its handles.
type recordingDevice struct {
	*Discard
	mu      sync.Mutex
	handles []*stream
	stopped int
}

func (d *recordingDevice) Play(r io.Reader) (Handle, error) {
	h, err := d.Discard.Play(r)
	if err == nil {
		d.mu.Lock()
		d.handles = append(d.handles, h.(*stream))
		d.mu.Unlock()
	}
	return h, err
}

func (d *recordingDevice) Stop(h Handle) error {
	d.mu.Lock()
	d.stopped++
	d.mu.Unlock()
	return d.Discard.Stop(h)
}

// failingDevice never opens.
type failingDevice struct{}

func (failingDevice) Format() Format                 { return DefaultFormat }
func (failingDevice) Play(io.Reader) (Handle, error) { return nil, errNoDevice }
func (failingDevice) Stop(Handle) error              { return nil }

// stalledDevice accepts streams but never reads them.
type stalledDevice struct {
	mu      sync.Mutex
	stopped []*stream
}

func (*stalledDevice) Format() Format { return DefaultFormat }

func (*stalledDevice) Play(r io.Reader) (Handle, error) { return newStream(r), nil }

func (d *stalledDevice) Stop(h Handle) error {
	s := h.(*stream)
	s.stop()
	d.mu.Lock()
	d.stopped = append(d.stopped, s)
	d.mu.Unlock()
	return nil
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	if buf == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestDriver_PlayConvertsToDeviceFormat(t *testing.T) {
	t.Parallel()

	wav := audiotest.EncodeWAV16(8000, 1, audiotest.Repeat(8192, 800))
	dev := &recordingDevice{Discard: NewDiscard(Format{SampleRate: 16000, Channels: 2})}
	d := NewDriver(dev, formats.NewRegistry(), WithLogger(quietLogger(nil)))

	if err := d.Play(context.Background(), wav, "wav"); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if len(dev.handles) != 1 {
		t.Fatalf("device got %d streams, want 1", len(dev.handles))
	}

	// 800 mono frames at 8 kHz become about 1600 stereo frames of float32.
	const want = 1600 * 2 * 4
	if got := dev.handles[0].BytesRead(); got < want-64 || got > want+64 {
		t.Errorf("device read %d bytes, want about %d", got, want)
	}
}

func TestDriver_DeviceUnavailableLoggedOnce(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	wav := audiotest.EncodeWAV16(8000, 1, audiotest.Repeat(0, 10))
	d := NewDriver(failingDevice{}, formats.NewRegistry(), WithLogger(quietLogger(&logs)))

	for range 2 {
		err := d.Play(context.Background(), wav, "wav")
		if !errors.Is(err, ErrDeviceUnavailable) || !errors.Is(err, errNoDevice) {
			t.Fatalf("Play() error = %v, want ErrDeviceUnavailable", err)
		}
	}
	if n := strings.Count(logs.String(), "audio device unavailable"); n != 1 {
		t.Errorf("device failure logged %d times, want 1", n)
	}
}

func TestDriver_DecodeFailure(t *testing.T) {
	t.Parallel()

	d := NewDriver(NewDiscard(DefaultFormat), formats.NewRegistry(), WithLogger(quietLogger(nil)))

	if err := d.Play(context.Background(), []byte("garbage"), "wav"); !errors.Is(err, ErrDecode) {
		t.Errorf("Play(garbage) error = %v, want ErrDecode", err)
	}
	if err := d.Play(context.Background(), nil, "flac"); !errors.Is(err, ErrDecode) {
		t.Errorf("Play(flac) error = %v, want ErrDecode", err)
	}
}

func TestDriver_InvalidFormat(t *testing.T) {
	t.Parallel()

	d := NewDriver(NewDiscard(Format{}), formats.NewRegistry())
	if err := d.Play(context.Background(), nil, "wav"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Play() error = %v, want ErrInvalidFormat", err)
	}
}

func TestDriver_CancelStopsDevice(t *testing.T) {
	t.Parallel()

	wav := audiotest.EncodeWAV16(48000, 2, audiotest.Repeat(100, 48000))
	dev := &stalledDevice{}
	d := NewDriver(dev, formats.NewRegistry(), WithLogger(quietLogger(nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := d.Play(ctx, wav, "wav"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Play() error = %v, want DeadlineExceeded", err)
	}
	if len(dev.stopped) != 1 {
		t.Fatalf("Stop called %d times, want 1", len(dev.stopped))
	}
	if n, err := dev.stopped[0].Read(make([]byte, 8)); n != 0 || err != io.EOF {
		t.Errorf("Read after Stop = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	dev := NewDiscard(DefaultFormat)
	if dev.Format() != DefaultFormat {
		t.Errorf("Format() = %+v", dev.Format())
	}

	h, err := dev.Play(strings.NewReader("twelve bytes"))
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := h.Wait(context.Background()); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
	if got := h.(*stream).BytesRead(); got != 12 {
		t.Errorf("BytesRead() = %d, want 12", got)
	}

	if err := dev.Stop(foreignHandle{}); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Stop(foreign) error = %v, want ErrUnknownHandle", err)
	}
}

func TestDiscard_ReadErrorReachesWait(t *testing.T) {
	t.Parallel()

	h, _ := NewDiscard(DefaultFormat).Play(io.MultiReader(strings.NewReader("ab"), errReader{}))
	if err := h.Wait(context.Background()); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("Wait() error = %v, want ErrInjected", err)
	}
}

type foreignHandle struct{}

func (foreignHandle) Wait(context.Context) error { return nil }

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, audiotest.ErrInjected }
