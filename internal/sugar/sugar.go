// Package sugar is the Sugar scene picker: a "no sugar" tile and a bar of equal zones.
// Bar zone z (0 based) means sugar level z+1, level 0 is reachable only from the tile.
package sugar

import (
	"fmt"
	"image"

	"github.com/linled/coffee-kiosk/internal/types"
)

const Zones = types.SugarMax

type Target uint8

const (
	TargetNone Target = iota
	TargetTile
	TargetBar
)

func (t Target) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetTile:
		return "tile"
	case TargetBar:
		return "bar"
	}
	return fmt.Sprintf("Target(%d)", uint8(t))
}

type Picker struct {
	Tile image.Rectangle
	Bar  image.Rectangle

	target Target
	value  int
	active bool
}

func New(tile, bar image.Rectangle) *Picker {
	return &Picker{Tile: tile, Bar: bar}
}

// Reset on scene entry: value 0, nothing hovered, inactive until fade ends.
func (self *Picker) Reset() {
	self.target = TargetNone
	self.value = types.SugarNone
	self.active = false
}

func (self *Picker) SetActive(a bool) { self.active = a }
func (self *Picker) Active() bool     { return self.active }
func (self *Picker) Value() int       { return self.value }
func (self *Picker) Target() Target   { return self.target }

// Lit is number of bar segments to highlight.
func (self *Picker) Lit() int {
	if self.target != TargetBar {
		return 0
	}
	return self.value
}

// Zone maps x to bar zone 0..Zones-1, edges clamped.
func (self *Picker) Zone(x int) int {
	w := self.Bar.Dx()
	if w <= 0 {
		return 0
	}
	z := (x - self.Bar.Min.X) * Zones / w
	if z < 0 {
		z = 0
	} else if z >= Zones {
		z = Zones - 1
	}
	return z
}

// Hover updates preview value live. Returns target entered (TargetNone when target unchanged)
// so caller can play selection sound once per widget enter.
func (self *Picker) Hover(p image.Point) (entered Target) {
	if !self.active {
		return TargetNone
	}
	prev := self.target
	switch {
	case p.In(self.Tile):
		self.target = TargetTile
		self.value = types.SugarNone
	case p.In(self.Bar):
		self.target = TargetBar
		self.value = self.Zone(p.X) + 1
	default:
		return TargetNone
	}
	if self.target != prev {
		return self.target
	}
	return TargetNone
}

func (self *Picker) Visual(t Target) types.VisualState {
	if t == self.target {
		return types.VisualSelected
	}
	return types.VisualDefault
}

// Validate commits current value once, picker goes inactive.
func (self *Picker) Validate() (int, bool) {
	if !self.active {
		return 0, false
	}
	self.active = false
	return self.value, true
}
