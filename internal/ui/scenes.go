package ui

import (
	"image"

	"github.com/linled/coffee-kiosk/internal/gesture"
	"github.com/linled/coffee-kiosk/internal/params"
	"github.com/linled/coffee-kiosk/internal/schedule"
	"github.com/linled/coffee-kiosk/internal/sugar"
	"github.com/linled/coffee-kiosk/internal/types"
	"github.com/linled/coffee-kiosk/log2"
)

func (self *UI) pauseAfterSwipe(c *gesture.Classifier, s types.PointerSample) {
	c.Pause(s.TimeMs + self.g.Config.SwipePause().Milliseconds())
}

// Coffee

func (self *UI) coffeeMove(s types.PointerSample, m gesture.Modes) {
	now := self.sched.Now()
	switch intent := self.cls.carousel.Move(s, m); intent {
	case gesture.QuickDownSwipe:
		self.pauseAfterSwipe(self.cls.carousel, s)
		self.validateCarousel()
		return
	case gesture.QuickLeftSwipe:
		self.pauseAfterSwipe(self.cls.carousel, s)
		self.quickMove(1)
		return
	case gesture.QuickRightSwipe:
		self.pauseAfterSwipe(self.cls.carousel, s)
		self.quickMove(-1)
		return
	}
	if self.carousel.Hover(s.Pos, now) {
		self.play(types.SoundChange)
	}
	if !m.HorizontalSwipe {
		self.carousel.UpdateEdge(s.Pos)
		self.updateAutoScroll()
	}
}

func (self *UI) coffeePress(s types.PointerSample, m gesture.Modes) {
	if self.cls.carousel.Press(s, m) != gesture.Click {
		return
	}
	self.carousel.Hover(s.Pos, self.sched.Now())
	self.validateCarousel()
}

func (self *UI) validateCarousel() {
	d, ok := self.carousel.Validate(self.sched.Now())
	if !ok {
		return
	}
	self.stopAutoScroll()
	self.play(types.SoundClick)
	self.commitDrink(d)
}

func (self *UI) quickMove(dir int) {
	self.carousel.QuickMove(dir, self.sched.Now())
	self.play(types.SoundChange)
	self.g.Log.Debugf("ui carousel quick move dir=%d head=%d", dir, self.carousel.Head())
}

func (self *UI) updateAutoScroll() {
	dir, _ := self.carousel.Edge()
	if dir == 0 {
		self.stopAutoScroll()
		return
	}
	if !self.scrollTimer.Active() {
		self.scrollTimer = self.sched.Every("auto-scroll", self.g.Config.AutoScrollInterval(), self.autoScrollTick)
	}
}

func (self *UI) autoScrollTick() {
	if self.scene != types.SceneCoffee || !self.carousel.Tick() {
		self.stopAutoScroll()
		return
	}
	if self.carousel.Hover(self.pointer, self.sched.Now()) {
		self.play(types.SoundChange)
	}
}

func (self *UI) stopAutoScroll() {
	self.sched.Cancel(self.scrollTimer)
	self.scrollTimer = nil
}

// Sugar

func (self *UI) sugarMove(s types.PointerSample, m gesture.Modes) {
	tile := self.cls.sugarTile.Move(s, m)
	bar := self.cls.sugarBar.Move(s, m)
	if tile == gesture.QuickDownSwipe || bar == gesture.QuickDownSwipe {
		self.pauseAfterSwipe(self.cls.sugarTile, s)
		self.pauseAfterSwipe(self.cls.sugarBar, s)
		self.validateSugar()
		return
	}
	if self.sugar.Hover(s.Pos) != sugar.TargetNone {
		self.play(types.SoundChange)
	}
}

func (self *UI) sugarPress(s types.PointerSample, m gesture.Modes) {
	tile := self.cls.sugarTile.Press(s, m)
	bar := self.cls.sugarBar.Press(s, m)
	if tile != gesture.Click && bar != gesture.Click {
		return
	}
	self.sugar.Hover(s.Pos)
	self.validateSugar()
}

func (self *UI) validateSugar() {
	v, ok := self.sugar.Validate()
	if !ok {
		return
	}
	self.play(types.SoundClick)
	self.commitSugar(v)
}

// Recap

func (self *UI) recapMove(s types.PointerSample, m gesture.Modes) {
	order := self.cls.recapOrder.Move(s, m)
	another := self.cls.recapAnother.Move(s, m)
	switch {
	case order == gesture.QuickDownSwipe:
		self.recap = recapOrder
		self.validateRecap()
		return
	case another == gesture.QuickDownSwipe:
		self.recap = recapAnother
		self.validateRecap()
		return
	}
	if order == gesture.HoverEnter && self.recap != recapOrder {
		self.recap = recapOrder
		self.play(types.SoundChange)
	} else if another == gesture.HoverEnter && self.recap != recapAnother {
		self.recap = recapAnother
		self.play(types.SoundChange)
	}
}

func (self *UI) recapPress(s types.PointerSample, m gesture.Modes) {
	switch {
	case self.cls.recapOrder.Press(s, m) == gesture.Click:
		self.recap = recapOrder
	case self.cls.recapAnother.Press(s, m) == gesture.Click:
		self.recap = recapAnother
	default:
		return
	}
	self.validateRecap()
}

func (self *UI) validateRecap() {
	switch self.recap {
	case recapOrder:
		self.play(types.SoundClick)
		self.confirmOrder()
	case recapAnother:
		self.play(types.SoundClick)
		self.addAnother()
	}
}

// Validate zone: hovering bottom strip commits current choice after a short delay.

func (self *UI) validateZoneMove(p image.Point) {
	inside := p.In(self.layout.Validate)
	if !inside {
		self.cancelValidateZone()
		return
	}
	if self.validateHover.Active() {
		return
	}
	d := self.g.Config.ValidateHoverDuration()
	self.validateTween = schedule.NewTween(0, 1, self.sched.Now(), d, nil)
	scene := self.scene
	self.validateHover = self.sched.After("validate-zone", d, func() {
		self.validateHover = nil
		self.validateTween = schedule.Constant(0)
		if self.scene != scene || !self.interactive {
			return
		}
		self.validateFocus()
	})
}

func (self *UI) cancelValidateZone() {
	self.sched.Cancel(self.validateHover)
	self.validateHover = nil
	self.validateTween = schedule.Constant(0)
}

func (self *UI) validateFocus() {
	switch self.scene {
	case types.SceneCoffee:
		self.validateCarousel()
	case types.SceneSugar:
		if self.sugar.Target() != sugar.TargetNone {
			self.validateSugar()
		}
	case types.SceneRecap:
		self.validateRecap()
	}
}

// Options

func (self *UI) optionPress(p image.Point) {
	i := self.layout.OptionAt(p)
	if i < 0 || i >= self.g.Params.Len() {
		return
	}
	key := self.g.Params.At(i).Key
	v, _ := self.g.Params.Toggle(key)
	self.g.Log.Infof("ui option %s=%t", key, v)
	if key == params.Debug {
		self.applyDebug(v)
	}
	self.play(types.SoundClick)
}

func (self *UI) applyDebug(on bool) {
	if on {
		self.g.Log.SetLevel(log2.LDebug)
	} else {
		self.g.Log.SetLevel(log2.LInfo)
	}
}
