package input

import (
	"image"
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/inputevent-go"
	"golang.org/x/sys/unix"

	"github.com/linled/coffee-kiosk/internal/types"
)

const DevInputEventTag = "dev-input-event"

// linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0x00

	relX = 0x00
	relY = 0x01

	absX = 0x00
	absY = 0x01

	btnLeft  = 0x110
	btnTouch = 0x14a
)

// _IOW('E', 0x90, int)
const evIOCGRAB = 0x40044590

type DevInputEventConfig struct {
	Device string
	Grab   bool
	// Screen is the pointer coordinate space, absolute axes are scaled into it.
	Screen image.Point
	MaxX   int
	MaxY   int
}

// DevInputEventSource turns a touch panel or mouse evdev stream into pointer events.
// Movement is reported once per SYN_REPORT, press on touch/button down.
type DevInputEventSource struct {
	f       io.ReadCloser
	c       DevInputEventConfig
	pos     image.Point
	raw     image.Point
	moved   bool
	pressed bool
	down    bool
	queue   []types.Event
}

// compile-time interface compliance test
var _ Source = new(DevInputEventSource)

func (self *DevInputEventSource) String() string { return DevInputEventTag }

func NewDevInputEventSource(c DevInputEventConfig) (*DevInputEventSource, error) {
	f, err := os.Open(c.Device)
	if err != nil {
		return nil, errors.Annotate(err, DevInputEventTag)
	}
	if c.Grab {
		if err = unix.IoctlSetInt(int(f.Fd()), evIOCGRAB, 1); err != nil {
			f.Close()
			return nil, errors.Annotatef(err, "%s grab device=%s", DevInputEventTag, c.Device)
		}
	}
	return newDevInputEventSource(f, c), nil
}

func newDevInputEventSource(f io.ReadCloser, c DevInputEventConfig) *DevInputEventSource {
	if c.MaxX <= 0 {
		c.MaxX = c.Screen.X
	}
	if c.MaxY <= 0 {
		c.MaxY = c.Screen.Y
	}
	return &DevInputEventSource{f: f, c: c}
}

func (self *DevInputEventSource) Close() error { return self.f.Close() }

func (self *DevInputEventSource) Read() (types.Event, error) {
	for {
		if len(self.queue) != 0 {
			e := self.queue[0]
			self.queue = self.queue[1:]
			return e, nil
		}
		ie, err := inputevent.ReadOne(self.f)
		if err != nil {
			return types.Event{}, err
		}
		self.feed(ie)
	}
}

func (self *DevInputEventSource) feed(ie inputevent.InputEvent) {
	switch ie.Type {
	case evAbs:
		switch ie.Code {
		case absX:
			self.raw.X = int(ie.Value)
			self.pos.X = scale(self.raw.X, self.c.MaxX, self.c.Screen.X)
			self.moved = true
		case absY:
			self.raw.Y = int(ie.Value)
			self.pos.Y = scale(self.raw.Y, self.c.MaxY, self.c.Screen.Y)
			self.moved = true
		}

	case evRel:
		switch ie.Code {
		case relX:
			self.pos.X = clamp(self.pos.X+int(ie.Value), self.c.Screen.X-1)
			self.moved = true
		case relY:
			self.pos.Y = clamp(self.pos.Y+int(ie.Value), self.c.Screen.Y-1)
			self.moved = true
		}

	case evKey:
		if ie.Code == btnTouch || ie.Code == btnLeft {
			down := ie.Value != int32(inputevent.KeyStateUp)
			if down && !self.down {
				self.pressed = true
			}
			self.down = down
		}

	case evSyn:
		if ie.Code != synReport {
			return
		}
		ms := int64(ie.Time.Sec)*1000 + int64(ie.Time.Usec)/1000
		sample := types.PointerSample{Pos: self.pos, TimeMs: ms}
		if self.moved {
			self.queue = append(self.queue, types.Event{Kind: types.EventPointerMove, Source: DevInputEventTag, Pointer: sample})
		}
		if self.pressed {
			self.queue = append(self.queue, types.Event{Kind: types.EventPointerPress, Source: DevInputEventTag, Pointer: sample})
		}
		self.moved, self.pressed = false, false
	}
}

func scale(v, max, size int) int {
	if max <= 0 || size <= 0 {
		return v
	}
	return clamp(v*(size-1)/max, size-1)
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if max >= 0 && v > max {
		return max
	}
	return v
}
