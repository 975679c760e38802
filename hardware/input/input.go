// Abstract input events
package input

import (
	"fmt"
	"sync"

	"github.com/juju/errors"

	"github.com/linled/coffee-kiosk/internal/types"
	"github.com/linled/coffee-kiosk/log2"
)

func Drain(ch <-chan types.Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

type Source interface {
	Read() (types.Event, error)
	String() string
}

// EventFunc returns false when event was not accepted (e.g. consumer queue full).
type EventFunc func(types.Event) bool

type sub struct {
	name string
	fun  EventFunc
	stop <-chan struct{}
}

// Dispatch fans out events from background sources to subscribers.
type Dispatch struct {
	Log  *log2.Log
	bus  chan types.Event
	mu   sync.Mutex
	subs map[string]*sub
	stop <-chan struct{}
}

func NewDispatch(log *log2.Log, stop <-chan struct{}) *Dispatch {
	return &Dispatch{
		Log:  log,
		bus:  make(chan types.Event),
		subs: make(map[string]*sub, 4),
		stop: stop,
	}
}

func (self *Dispatch) SubscribeFunc(name string, fun EventFunc, substop <-chan struct{}) {
	sub := &sub{
		name: name,
		fun:  fun,
		stop: substop,
	}
	self.safeSubscribe(sub)
}

func (self *Dispatch) Unsubscribe(name string) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := self.subs[name]; ok {
		delete(self.subs, name)
	} else {
		panic("code error input sub not found name=" + name)
	}
}

// Run blocks until stop. Source read error is logged and ends that source only.
func (self *Dispatch) Run(sources []Source) {
	for _, source := range sources {
		go self.readSource(source)
	}

	for {
		select {
		case event := <-self.bus:
			handled := false
			self.mu.Lock()
			for _, sub := range self.subs {
				if self.subFire(sub, event) {
					handled = true
				}
			}
			self.mu.Unlock()
			if !handled {
				self.Log.Debugf("input is not handled event=%s", event.String())
			}

		case <-self.stop:
			Drain(self.bus)
			return
		}
	}
}

func (self *Dispatch) Emit(event types.Event) {
	select {
	case self.bus <- event:
	case <-self.stop:
		return
	}
}

func (self *Dispatch) subFire(sub *sub, event types.Event) bool {
	select {
	case <-sub.stop:
		delete(self.subs, sub.name)
		return false
	default:
	}

	if sub.fun == nil {
		panic(fmt.Sprintf("input sub=%s fun=nil", sub.name))
	}
	return sub.fun(event)
}

func (self *Dispatch) safeSubscribe(s *sub) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if existing, ok := self.subs[s.name]; ok {
		select {
		case <-s.stop:
			panic("code error input subscribe already closed name=" + s.name)
		case <-existing.stop:
			delete(self.subs, existing.name)
		default:
			panic("code error input duplicate subscribe name=" + s.name)
		}
	}
	self.subs[s.name] = s
}

func (self *Dispatch) readSource(source Source) {
	tag := source.String()
	for {
		event, err := source.Read()
		if err != nil {
			select {
			case <-self.stop:
			default:
				err = errors.Annotatef(err, "input source=%s", tag)
				self.Log.Error(err)
			}
			return
		}
		self.Emit(event)
	}
}
