// Package carousel is the cyclic drink selector of the Coffee scene.
// Cards are a fixed ring addressed by head offset; infinite scroll rotates the head
// instead of moving elements. Not safe for concurrent use, UI thread only.
package carousel

import (
	"image"
	"math"
	"time"

	"github.com/juju/errors"

	"github.com/linled/coffee-kiosk/internal/schedule"
	"github.com/linled/coffee-kiosk/internal/types"
)

// Card margins in pixels, animated on select.
const (
	MarginDefault   = 70
	MarginSelected  = 30
	MarginValidated = 40
)

type Config struct {
	Visible      int
	QuickStep    int
	QuickModulus int // 0 means card count
	EdgeZone     float64
	SpeedMin     float64
	SpeedMax     float64
	AnimDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		Visible:      4,
		QuickStep:    4,
		EdgeZone:     0.1,
		SpeedMin:     10,
		SpeedMax:     15,
		AnimDuration: 200 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	if c.Visible <= 0 {
		return errors.NotValidf("carousel visible=%d", c.Visible)
	}
	if c.QuickStep < 0 || c.QuickModulus < 0 {
		return errors.NotValidf("carousel quick_step=%d quick_modulus=%d", c.QuickStep, c.QuickModulus)
	}
	if c.EdgeZone < 0 || c.EdgeZone >= 0.5 {
		return errors.NotValidf("carousel edge_zone=%v", c.EdgeZone)
	}
	if c.SpeedMin <= 0 || c.SpeedMax < c.SpeedMin {
		return errors.NotValidf("carousel speed=%v..%v", c.SpeedMin, c.SpeedMax)
	}
	return nil
}

type card struct {
	drink  types.DrinkType
	visual types.VisualState
	margin schedule.Tween
}

// Slot is one rendered card position, may be partially outside viewport.
type Slot struct {
	Drink  types.DrinkType
	Index  int
	Rect   image.Rectangle
	Visual types.VisualState
	Margin float64
}

type Carousel struct {
	cfg      Config
	cards    []card
	viewport image.Rectangle
	head     int
	offset   float64
	focus    int
	active   bool

	scrollDir   int
	scrollSpeed float64
}

func New(drinks []types.DrinkType, cfg Config) *Carousel {
	self := &Carousel{cfg: cfg, focus: -1}
	self.cards = make([]card, len(drinks))
	for i, d := range drinks {
		self.cards[i] = card{drink: d, margin: schedule.Constant(MarginDefault)}
	}
	return self
}

func (self *Carousel) Len() int                  { return len(self.cards) }
func (self *Carousel) Head() int                 { return self.head }
func (self *Carousel) Offset() float64           { return self.offset }
func (self *Carousel) Active() bool              { return self.active }
func (self *Carousel) Viewport() image.Rectangle { return self.viewport }

func (self *Carousel) SetViewport(r image.Rectangle) {
	self.viewport = r
	self.offset = 0
}

func (self *Carousel) CardWidth() float64 {
	if self.cfg.Visible <= 0 {
		return 0
	}
	return float64(self.viewport.Dx()) / float64(self.cfg.Visible)
}

func (self *Carousel) modulus() int {
	if self.cfg.QuickModulus > 0 {
		return self.cfg.QuickModulus
	}
	return len(self.cards)
}

// Reset prepares carousel for scene entry: nothing focused, inactive until SetActive.
func (self *Carousel) Reset() {
	self.focus = -1
	self.active = false
	self.offset = 0
	self.StopEdge()
	for i := range self.cards {
		self.cards[i].visual = types.VisualDefault
		self.cards[i].margin = schedule.Constant(MarginDefault)
	}
}

func (self *Carousel) SetActive(a bool) { self.active = a }

// Focus returns hovered card drink.
func (self *Carousel) Focus() (types.DrinkType, bool) {
	if self.focus < 0 {
		return types.DrinkNone, false
	}
	return self.cards[self.focus].drink, true
}

func (self *Carousel) FocusIndex() int { return self.focus }

// CardAt returns card index under pointer or -1.
func (self *Carousel) CardAt(p image.Point) int {
	w := self.CardWidth()
	if len(self.cards) == 0 || w <= 0 || !p.In(self.viewport) {
		return -1
	}
	slot := int(math.Floor((float64(p.X-self.viewport.Min.X) + self.offset) / w))
	return mod(self.head+slot, len(self.cards))
}

// Hover selects card under pointer and deselects siblings.
// Returns true when focus changed.
func (self *Carousel) Hover(p image.Point, now time.Time) bool {
	if !self.active {
		return false
	}
	i := self.CardAt(p)
	if i < 0 || i == self.focus {
		return false
	}
	self.setFocus(i, now)
	return true
}

func (self *Carousel) setFocus(i int, now time.Time) {
	if self.focus >= 0 {
		c := &self.cards[self.focus]
		c.visual = types.VisualDefault
		c.margin = c.margin.Retarget(now, MarginDefault, self.cfg.AnimDuration)
	}
	self.focus = i
	c := &self.cards[i]
	c.visual = types.VisualSelected
	c.margin = c.margin.Retarget(now, MarginSelected, self.cfg.AnimDuration)
}

// Validate commits focused card, carousel goes inactive until next Reset.
func (self *Carousel) Validate(now time.Time) (types.DrinkType, bool) {
	if !self.active || self.focus < 0 {
		return types.DrinkNone, false
	}
	c := &self.cards[self.focus]
	c.visual = types.VisualValidated
	c.margin = c.margin.Retarget(now, MarginValidated, self.cfg.AnimDuration)
	self.active = false
	self.StopEdge()
	return c.drink, true
}

// Scroll moves view by dx pixels, rotating head at card boundaries.
func (self *Carousel) Scroll(dx float64) {
	w := self.CardWidth()
	n := len(self.cards)
	if w <= 0 || n == 0 {
		return
	}
	self.offset += dx
	for self.offset >= w {
		self.offset -= w
		self.head = mod(self.head+1, n)
	}
	for self.offset < 0 {
		self.offset += w
		self.head = mod(self.head-1, n)
	}
}

// QuickMove pages view and focus by configured step in direction dir (+1/-1).
func (self *Carousel) QuickMove(dir int, now time.Time) {
	n := len(self.cards)
	if n == 0 || dir == 0 {
		return
	}
	shift := dir * self.cfg.QuickStep
	self.head = mod(mod(self.head+shift, self.modulus()), n)
	self.offset = 0
	if self.focus >= 0 {
		self.setFocus(mod(self.focus+shift, n), now)
	}
}

// UpdateEdge sets auto-scroll direction and speed from pointer position.
// Left zone scrolls back, right zone forward, closer to edge is faster.
func (self *Carousel) UpdateEdge(p image.Point) {
	if !self.active || !p.In(self.viewport) {
		self.StopEdge()
		return
	}
	w := float64(self.viewport.Dx())
	x := float64(p.X - self.viewport.Min.X)
	left := w * self.cfg.EdgeZone
	right := w - left
	switch {
	case x < left:
		self.scrollDir = -1
		self.scrollSpeed = linearMap(x, 0, left, self.cfg.SpeedMax, self.cfg.SpeedMin)
	case x > right:
		self.scrollDir = 1
		self.scrollSpeed = linearMap(x, right, w, self.cfg.SpeedMin, self.cfg.SpeedMax)
	default:
		self.StopEdge()
	}
}

func (self *Carousel) StopEdge() {
	self.scrollDir = 0
	self.scrollSpeed = 0
}

// Edge returns current auto-scroll direction (-1, 0, +1) and speed in pixels per tick.
func (self *Carousel) Edge() (int, float64) { return self.scrollDir, self.scrollSpeed }

// EdgeAlpha is edge highlight intensity 64..255 for current speed, 0 when not scrolling.
func (self *Carousel) EdgeAlpha() uint8 {
	if self.scrollDir == 0 {
		return 0
	}
	return uint8(math.Round(linearMap(self.scrollSpeed, self.cfg.SpeedMin, self.cfg.SpeedMax, 64, 255)))
}

// Tick applies one auto-scroll step, returns false when idle.
func (self *Carousel) Tick() bool {
	if self.scrollDir == 0 {
		return false
	}
	self.Scroll(float64(self.scrollDir) * self.scrollSpeed)
	return true
}

// Slots lists Visible+1 card positions left to right for rendering.
func (self *Carousel) Slots(now time.Time) []Slot {
	n := len(self.cards)
	w := self.CardWidth()
	if n == 0 || w <= 0 {
		return nil
	}
	count := self.cfg.Visible + 1
	if count > n {
		count = n
	}
	slots := make([]Slot, 0, count)
	for i := 0; i < count; i++ {
		idx := mod(self.head+i, n)
		c := &self.cards[idx]
		x0 := float64(self.viewport.Min.X) + float64(i)*w - self.offset
		r := image.Rect(int(math.Round(x0)), self.viewport.Min.Y, int(math.Round(x0+w)), self.viewport.Max.Y)
		slots = append(slots, Slot{
			Drink:  c.drink,
			Index:  idx,
			Rect:   r,
			Visual: c.visual,
			Margin: c.margin.Value(now),
		})
	}
	return slots
}

// linearMap clamps x into [inMin,inMax] range and maps to [outMin,outMax].
func linearMap(x, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	t := (x - inMin) / (inMax - inMin)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return outMin + t*(outMax-outMin)
}

func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
