package ui

import (
	"github.com/juju/errors"

	"github.com/linled/coffee-kiosk/internal/params"
	"github.com/linled/coffee-kiosk/internal/schedule"
	"github.com/linled/coffee-kiosk/internal/types"
)

// Guarded entry points. Each one checks its precondition and silently ignores
// the request otherwise, so no invalid transition is representable.

func (self *UI) exitIdle() {
	if self.scene != types.SceneIdle {
		return
	}
	self.g.Log.Infof("ui idle exit, new session")
	self.session.Reset()
	self.skipRecenter = true
	self.setScene(types.SceneCoffee)
}

func (self *UI) commitDrink(d types.DrinkType) {
	if self.scene != types.SceneCoffee || !self.interactive || d.IsNone() {
		return
	}
	self.session.Add(d)
	self.g.Log.Infof("ui drink=%s sweet=%t", d.Label, d.Sweet)
	if d.Sweet {
		self.setScene(types.SceneSugar)
		return
	}
	self.session.SetLastSugar(types.SugarNone)
	self.setScene(types.SceneRecap)
}

func (self *UI) commitSugar(v int) {
	if self.scene != types.SceneSugar || !self.interactive {
		return
	}
	last, ok := self.session.Last()
	if !ok {
		return
	}
	if !last.Drink.Sweet {
		err := errors.NotValidf("sugar=%d for non-sweet drink=%s", v, last.Drink.Label)
		self.g.Log.Error(errors.Annotate(err, "ui commitSugar forced to 0"))
	}
	self.session.SetLastSugar(v)
	last, _ = self.session.Last()
	self.g.Log.Infof("ui sugar=%d drink=%s", last.Sugar, last.Drink.Label)
	self.setScene(types.SceneRecap)
}

func (self *UI) confirmOrder() {
	if self.scene != types.SceneRecap || !self.interactive || self.session.Len() == 0 {
		return
	}
	self.g.Log.Infof("ui order confirmed items=%d", self.session.Len())
	self.setScene(types.ScenePayment)
}

func (self *UI) addAnother() {
	if self.scene != types.SceneRecap || !self.interactive {
		return
	}
	self.setScene(types.SceneCoffee)
}

func (self *UI) paymentDone() {
	if self.scene != types.ScenePayment || !self.interactive {
		return
	}
	self.play(types.SoundPayment)
	self.setScene(types.ScenePreparation)
}

func (self *UI) preparationDone() {
	if self.scene != types.ScenePreparation || !self.interactive {
		return
	}
	self.g.Log.Infof("ui order served")
	self.session.Reset()
	self.setScene(types.SceneCoffee)
}

func (self *UI) idleTimeout() {
	if !self.scene.Ordered() {
		return
	}
	self.g.Log.Infof("ui idle timeout scene=%s", self.scene.String())
	self.sched.Cancel(self.pending)
	self.exit(self.scene, types.SceneIdle)
	self.scene = types.SceneIdle
	self.showNow(types.SceneIdle)
}

// toggleOptions enters Options from anywhere or leaves it back to the scene active before.
func (self *UI) toggleOptions() {
	if self.scene == types.SceneOptions {
		next := self.resume
		self.g.Log.Infof("ui options leave -> %s params: %s", next.String(), self.g.Params.String())
		self.exit(types.SceneOptions, next)
		self.host.SetCursorHidden(self.g.Params.Get(params.CursorHidden))
		self.scene = next
		if next.Ordered() {
			self.idle.Start()
			self.show(next)
		} else {
			self.showNow(next)
		}
		return
	}

	self.resume = self.scene
	self.g.Log.Infof("ui options enter from %s", self.resume.String())
	self.sched.Cancel(self.pending)
	self.exit(self.scene, types.SceneOptions)
	self.idle.Stop()
	self.scene = types.SceneOptions
	self.optionHover = -1
	self.host.SetCursorHidden(false)
	self.showNow(types.SceneOptions)
}

// setScene starts transition into ordered scene: progress moves at once,
// scene content appears and accepts input after the fade.
func (self *UI) setScene(next types.SceneID) {
	if self.pending.Active() {
		self.g.Log.Debugf("ui transition %s -> %s rejected, fade in progress", self.scene.String(), next.String())
		return
	}
	prev := self.scene
	self.g.Log.Debugf("ui transition %s -> %s", prev.String(), next.String())
	self.exit(prev, next)
	self.scene = next
	self.interactive = false
	self.idle.Start()
	self.host.SetProgress(next.Progress(), self.g.Config.ProgressDuration())
	fade := self.g.Config.FadeDuration()
	now := self.sched.Now()
	self.fade = schedule.NewTween(0, 1, now, fade, schedule.InOutQuad)
	self.pending = self.sched.After("scene-fade", fade, func() { self.show(next) })
}

// show finishes transition: content visible and interactive.
func (self *UI) show(s types.SceneID) {
	self.pending = nil
	self.shown = s
	self.fade = schedule.Constant(1)
	self.host.ShowScene(s)
	self.idle.Start()
	if self.skipRecenter {
		self.skipRecenter = false
	} else {
		self.host.RecenterCursor()
	}
	for _, c := range self.cls.all() {
		c.Reset()
	}
	self.interactive = true
	self.enter(s)
	if self.XXX_testHook != nil {
		self.XXX_testHook(s)
	}
}

// showNow switches to out-of-band scene without fade.
func (self *UI) showNow(s types.SceneID) {
	self.pending = nil
	self.shown = s
	self.interactive = false
	self.fade = schedule.Constant(1)
	self.host.ShowScene(s)
	if self.XXX_testHook != nil {
		self.XXX_testHook(s)
	}
}

func (self *UI) enter(s types.SceneID) {
	self.g.Log.Debugf("ui enter %s", s.String())
	now := self.sched.Now()
	switch s {
	case types.SceneCoffee:
		self.carousel.Reset()
		self.carousel.SetActive(true)
	case types.SceneSugar:
		self.sugar.Reset()
		self.sugar.SetActive(true)
	case types.SceneRecap:
		self.recap = recapNone
	case types.ScenePayment:
		d := self.g.Config.PaymentDuration()
		self.payment = schedule.NewTween(0, 1, now, d, nil)
		self.after("payment", d, self.paymentDone)
	case types.ScenePreparation:
		self.enterPreparation()
	default:
		self.g.Log.Errorf("code error ui enter unexpected scene=%s", s.String())
	}
}

func (self *UI) exit(current, next types.SceneID) {
	self.g.Log.Debugf("ui exit %s -> %s", current.String(), next.String())
	self.cancelSceneTimers()
	self.interactive = false
	switch current {
	case types.SceneCoffee:
		self.carousel.SetActive(false)
		self.carousel.StopEdge()
	case types.SceneSugar:
		self.sugar.SetActive(false)
	case types.ScenePayment:
		self.payment = schedule.Constant(0)
	case types.ScenePreparation:
		self.message = message{opacity: schedule.Constant(0)}
	}
}

const (
	MsgPreparing = "Preparing your order, please wait..."
	MsgReady     = "Here is your drink, enjoy!"
)

// enterPreparation runs message timeline: preparing fades in, holds, fades out,
// ready fades in, holds, fades out, then session is served.
func (self *UI) enterPreparation() {
	cfg := self.g.Config
	fade := cfg.MessageFadeDuration()
	self.host.SetProgress(1, cfg.PreparingDuration())
	self.showMessage(MsgPreparing)
	self.after("prepare-fadeout", cfg.PreparingDuration(), func() {
		self.hideMessage()
		self.after("prepare-ready", fade, func() {
			self.showMessage(MsgReady)
			self.after("ready-fadeout", cfg.ReadyDuration(), func() {
				self.hideMessage()
				self.after("served", fade, self.preparationDone)
			})
		})
	})
}

func (self *UI) showMessage(text string) {
	now := self.sched.Now()
	self.message.text = text
	self.message.opacity = schedule.NewTween(0, 1, now, self.g.Config.MessageFadeDuration(), schedule.OutQuad)
}

func (self *UI) hideMessage() {
	now := self.sched.Now()
	self.message.opacity = self.message.opacity.Retarget(now, 0, self.g.Config.MessageFadeDuration())
	self.message.opacity.Ease = schedule.InQuad
}
