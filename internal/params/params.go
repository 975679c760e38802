// Package params holds the interaction mode toggles edited in the Options scene.
// One Set is built at startup and owned by state.Global; it is only mutated on the UI thread.
package params

import (
	"fmt"
	"strings"
)

const (
	CarouselSwipe      = "carousel_swipe"
	ClickableButton    = "clickable_button"
	MovementValidation = "movement_validation"
	CursorHidden       = "cursor_hidden"
	Debug              = "debug"
)

type Param struct {
	Key   string
	Name  string
	State bool
}

type Set struct {
	list  []*Param
	index map[string]*Param
}

func NewSet() *Set {
	return &Set{index: make(map[string]*Param, 8)}
}

// NewDefault returns the kiosk toggles, all off.
func NewDefault() *Set {
	s := NewSet()
	s.Add(CarouselSwipe, false, "Carrousel scroll / swipe")
	s.Add(ClickableButton, false, "Clickable cards")
	s.Add(MovementValidation, false, "Movement validation")
	s.Add(CursorHidden, false, "Cursor hidden")
	s.Add(Debug, false, "Debug mode")
	return s
}

// Add registers toggle, repeated key overwrites state and name in place.
func (self *Set) Add(key string, state bool, name string) *Param {
	if p, ok := self.index[key]; ok {
		p.State, p.Name = state, name
		return p
	}
	p := &Param{Key: key, Name: name, State: state}
	self.list = append(self.list, p)
	self.index[key] = p
	return p
}

// Get returns false for unknown key.
func (self *Set) Get(key string) bool {
	if self == nil {
		return false
	}
	if p, ok := self.index[key]; ok {
		return p.State
	}
	return false
}

func (self *Set) Set(key string, state bool) bool {
	p, ok := self.index[key]
	if ok {
		p.State = state
	}
	return ok
}

func (self *Set) Toggle(key string) (bool, bool) {
	p, ok := self.index[key]
	if !ok {
		return false, false
	}
	p.State = !p.State
	return p.State, true
}

func (self *Set) Len() int { return len(self.list) }

// At returns copy of i-th toggle in registration order.
func (self *Set) At(i int) Param { return *self.list[i] }

func (self *Set) List() []Param {
	ps := make([]Param, len(self.list))
	for i, p := range self.list {
		ps[i] = *p
	}
	return ps
}

func (self *Set) String() string {
	b := strings.Builder{}
	for i, p := range self.list {
		if i != 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%t", p.Key, p.State)
	}
	return b.String()
}
