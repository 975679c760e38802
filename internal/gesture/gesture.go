// Package gesture turns consecutive pointer samples into user intents.
// Each interactive widget owns one Classifier holding the previous sample.
package gesture

import (
	"fmt"
	"image"
	"time"

	"github.com/linled/coffee-kiosk/internal/types"
)

type Intent uint8

const (
	None Intent = iota
	QuickDownSwipe
	QuickLeftSwipe
	QuickRightSwipe
	HoverEnter
	HoverLeave
	Click
)

var intentNames = [...]string{"None", "QuickDownSwipe", "QuickLeftSwipe", "QuickRightSwipe", "HoverEnter", "HoverLeave", "Click"}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return fmt.Sprintf("Intent(%d)", uint8(i))
}

func (i Intent) IsSwipe() bool { return i >= QuickDownSwipe && i <= QuickRightSwipe }

// Profile is quick swipe threshold: movement faster than MaxElapsed and longer than MinDistance.
type Profile struct {
	MaxElapsed  time.Duration
	MinDistance int
}

var (
	CardProfile        = Profile{MaxElapsed: 200 * time.Millisecond, MinDistance: 100}
	InteractiveProfile = Profile{MaxElapsed: 100 * time.Millisecond, MinDistance: 150}
)

// Modes are the current interaction toggles, read on every call.
type Modes struct {
	MovementValidation bool
	ClickableButton    bool
	HorizontalSwipe    bool
}

type Classifier struct {
	Bounds  image.Rectangle
	Profile Profile

	prev       types.PointerSample
	hasPrev    bool
	inside     bool
	pauseUntil int64
}

func New(bounds image.Rectangle, p Profile) *Classifier {
	return &Classifier{Bounds: bounds, Profile: p}
}

func (self *Classifier) Inside() bool { return self.inside }

// Reset forgets previous sample and hover state, used on scene change.
func (self *Classifier) Reset() {
	self.hasPrev = false
	self.inside = false
	self.pauseUntil = 0
}

// Pause ignores movement until timestamp, samples still rebaseline.
func (self *Classifier) Pause(untilMs int64) { self.pauseUntil = untilMs }

func (self *Classifier) Paused(nowMs int64) bool { return nowMs < self.pauseUntil }

// Move classifies pointer movement. Swipe is checked before hover crossing.
func (self *Classifier) Move(cur types.PointerSample, m Modes) Intent {
	prev, hadPrev := self.prev, self.hasPrev
	wasInside := self.inside
	self.prev, self.hasPrev = cur, true
	self.inside = cur.Pos.In(self.Bounds)

	if self.Paused(cur.TimeMs) {
		// hover state follows pointer silently during pause
		return None
	}
	if hadPrev && wasInside {
		if intent := self.swipe(prev, cur, m); intent != None {
			return intent
		}
	}
	switch {
	case !wasInside && self.inside:
		return HoverEnter
	case wasInside && !self.inside:
		return HoverLeave
	}
	return None
}

// Press yields Click only with clickable mode and pointer inside.
func (self *Classifier) Press(cur types.PointerSample, m Modes) Intent {
	self.prev, self.hasPrev = cur, true
	self.inside = cur.Pos.In(self.Bounds)
	if !m.ClickableButton || !self.inside || self.Paused(cur.TimeMs) {
		return None
	}
	return Click
}

func (self *Classifier) swipe(prev, cur types.PointerSample, m Modes) Intent {
	if !m.MovementValidation && !m.HorizontalSwipe {
		return None
	}
	elapsed := time.Duration(cur.TimeMs-prev.TimeMs) * time.Millisecond
	if elapsed < 0 || elapsed >= self.Profile.MaxElapsed {
		return None
	}
	d := cur.Pos.Sub(prev.Pos)
	adx, ady := abs(d.X), abs(d.Y)
	if m.MovementValidation && d.Y > adx && d.Y > self.Profile.MinDistance {
		return QuickDownSwipe
	}
	if m.HorizontalSwipe && adx > ady && adx > self.Profile.MinDistance {
		if d.X < 0 {
			return QuickLeftSwipe
		}
		return QuickRightSwipe
	}
	return None
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
