package input

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linled/coffee-kiosk/internal/types"
	"github.com/linled/coffee-kiosk/log2"
)

type listSource struct {
	events []types.Event
	done   chan struct{}
}

func (self *listSource) String() string { return "list" }
func (self *listSource) Read() (types.Event, error) {
	if len(self.events) == 0 {
		close(self.done)
		return types.Event{}, errors.New("eof")
	}
	e := self.events[0]
	self.events = self.events[1:]
	return e, nil
}

func TestDispatchDoubleSubscribe(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	dstop := make(chan struct{})
	d := NewDispatch(log, dstop)
	fun := func(types.Event) bool { return true }

	go func() {
		sub1stop := make(chan struct{})
		d.SubscribeFunc("name", fun, sub1stop)
		close(sub1stop)
		sub2stop := make(chan struct{})
		d.SubscribeFunc("name", fun, sub2stop)
		assert.Panics(t, func() { d.SubscribeFunc("name", fun, make(chan struct{})) })
		close(dstop)
	}()

	d.Run(nil)
}

func TestDispatchRun(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	var errs []error
	var errmu sync.Mutex
	log.SetErrorFunc(func(e error) {
		errmu.Lock()
		errs = append(errs, e)
		errmu.Unlock()
	})
	dstop := make(chan struct{})
	d := NewDispatch(log, dstop)
	got := make(chan types.Event, 8)
	d.SubscribeFunc("ui", func(e types.Event) bool { got <- e; return true }, nil)

	src := &listSource{done: make(chan struct{}), events: []types.Event{
		{Kind: types.EventPointerMove, Pointer: types.PointerSample{Pos: image.Pt(1, 2)}},
		{Kind: types.EventKey, Key: types.KeyOptions},
	}}
	finished := make(chan struct{})
	go func() {
		d.Run([]Source{src})
		close(finished)
	}()
	e1, e2 := <-got, <-got
	assert.Equal(t, types.EventPointerMove, e1.Kind)
	assert.Equal(t, image.Pt(1, 2), e1.Pointer.Pos)
	assert.Equal(t, types.KeyOptions, e2.Key)
	<-src.done
	close(dstop)
	<-finished
}
