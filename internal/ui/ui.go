// Package ui is the kiosk scene state machine.
// Everything here runs on one goroutine: the host calls Handle for input and Advance
// for time. Other goroutines (input readers) only use Emit.
package ui

import (
	"context"
	"image"
	"time"

	"golang.org/x/time/rate"

	"github.com/linled/coffee-kiosk/internal/carousel"
	"github.com/linled/coffee-kiosk/internal/gesture"
	"github.com/linled/coffee-kiosk/internal/idle"
	"github.com/linled/coffee-kiosk/internal/params"
	"github.com/linled/coffee-kiosk/internal/schedule"
	"github.com/linled/coffee-kiosk/internal/state"
	"github.com/linled/coffee-kiosk/internal/sugar"
	"github.com/linled/coffee-kiosk/internal/types"
)

const eventBuffer = 64

type recapTarget uint8

const (
	recapNone recapTarget = iota
	recapOrder
	recapAnother
)

type classifiers struct {
	carousel     *gesture.Classifier
	sugarTile    *gesture.Classifier
	sugarBar     *gesture.Classifier
	recapOrder   *gesture.Classifier
	recapAnother *gesture.Classifier
}

func (self *classifiers) all() []*gesture.Classifier {
	return []*gesture.Classifier{self.carousel, self.sugarTile, self.sugarBar, self.recapOrder, self.recapAnother}
}

// message is preparation scene text with fading opacity.
type message struct {
	text    string
	opacity schedule.Tween
}

type UI struct { //nolint:maligned
	g       *state.Global
	host    types.Host
	sched   *schedule.Scheduler
	idle    *idle.Supervisor
	session types.Session
	layout  Layout

	scene        types.SceneID
	shown        types.SceneID
	resume       types.SceneID
	interactive  bool
	skipRecenter bool
	fade         schedule.Tween
	pending      *schedule.Timer
	sceneTimers  []*schedule.Timer

	carousel    *carousel.Carousel
	sugar       *sugar.Picker
	recap       recapTarget
	cls         classifiers
	pointer     image.Point
	scrollTimer *schedule.Timer

	validateHover *schedule.Timer
	validateTween schedule.Tween
	optionHover   int

	payment schedule.Tween
	message message

	changeLimit *rate.Limiter
	eventch     chan types.Event

	XXX_testHook func(types.SceneID)
}

func New() *UI { return &UI{} }

// Init prepares machine at IDLE. now is the scheduler epoch.
func (self *UI) Init(ctx context.Context, host types.Host, now time.Time) error {
	self.g = state.GetGlobal(ctx)
	self.host = host
	self.sched = schedule.New(now)
	cfg := self.g.Config

	ccfg := cfg.CarouselConfig()
	if err := ccfg.Validate(); err != nil {
		return err
	}
	self.carousel = carousel.New(types.Drinks(), ccfg)
	self.sugar = sugar.New(image.Rectangle{}, image.Rectangle{})
	card, inter := cfg.CardProfile(), cfg.InteractiveProfile()
	self.cls = classifiers{
		carousel:     gesture.New(image.Rectangle{}, card),
		sugarTile:    gesture.New(image.Rectangle{}, inter),
		sugarBar:     gesture.New(image.Rectangle{}, inter),
		recapOrder:   gesture.New(image.Rectangle{}, inter),
		recapAnother: gesture.New(image.Rectangle{}, inter),
	}
	self.Resize(cfg.ScreenSize())

	self.idle = idle.New(self.sched, cfg.IdleTimeout(), self.idleTimeout)
	self.changeLimit = rate.NewLimiter(rate.Every(cfg.SoundMinInterval()), 1)
	self.eventch = make(chan types.Event, eventBuffer)
	self.optionHover = -1
	self.fade = schedule.Constant(1)
	self.message.opacity = schedule.Constant(0)
	self.payment = schedule.Constant(0)

	self.scene, self.shown, self.resume = types.SceneIdle, types.SceneIdle, types.SceneIdle
	self.host.SetCursorHidden(self.g.Params.Get(params.CursorHidden))
	self.host.ShowScene(types.SceneIdle)
	self.g.Log.Debugf("ui init size=%v idle=%v", self.layout.Size, self.idle.Timeout())
	return nil
}

func (self *UI) Resize(w, h int) {
	self.layout = NewLayout(w, h, self.g.Params.Len())
	self.carousel.SetViewport(self.layout.Carousel)
	self.sugar.Tile, self.sugar.Bar = self.layout.SugarTile, self.layout.SugarBar
	self.cls.carousel.Bounds = self.layout.Carousel
	self.cls.sugarTile.Bounds = self.layout.SugarTile
	self.cls.sugarBar.Bounds = self.layout.SugarBar
	self.cls.recapOrder.Bounds = self.layout.RecapOrder
	self.cls.recapAnother.Bounds = self.layout.RecapAnother
}

func (self *UI) Scene() types.SceneID          { return self.scene }
func (self *UI) Shown() types.SceneID          { return self.shown }
func (self *UI) Interactive() bool             { return self.interactive }
func (self *UI) Now() time.Time                { return self.sched.Now() }
func (self *UI) Layout() Layout                { return self.layout }
func (self *UI) Selections() []types.Selection { return self.session.Selections() }
func (self *UI) IdleRemaining() time.Duration  { return self.idle.Remaining() }
func (self *UI) Carousel() *carousel.Carousel  { return self.carousel }
func (self *UI) SugarValue() int               { return self.sugar.Value() }
func (self *UI) NextTimer() (time.Time, bool)  { return self.sched.Next() }

// Emit queues event from any goroutine, dropped when UI is not keeping up.
func (self *UI) Emit(e types.Event) bool {
	select {
	case self.eventch <- e:
		return true
	default:
		self.g.Log.Errorf("ui event dropped %s", e.String())
		return false
	}
}

// Drain handles queued events, call from UI goroutine.
func (self *UI) Drain() int {
	n := 0
	for {
		select {
		case e := <-self.eventch:
			self.Handle(e)
			n++
		default:
			return n
		}
	}
}

// Advance moves clock and runs due timers.
func (self *UI) Advance(now time.Time) int { return self.sched.Advance(now) }

func (self *UI) modes() gesture.Modes {
	p := self.g.Params
	return gesture.Modes{
		MovementValidation: p.Get(params.MovementValidation),
		ClickableButton:    p.Get(params.ClickableButton),
		HorizontalSwipe:    p.Get(params.CarouselSwipe),
	}
}

func (self *UI) Handle(e types.Event) {
	if e.Kind == types.EventPointerMove || e.Kind == types.EventPointerPress {
		if e.Pointer.TimeMs == 0 {
			e.Pointer.TimeMs = self.sched.Now().UnixMilli()
		}
		self.pointer = e.Pointer.Pos
	}
	switch e.Kind {
	case types.EventPointerMove:
		self.onPointerMove(e.Pointer)
	case types.EventPointerPress:
		self.onPointerPress(e.Pointer)
	case types.EventKey:
		self.onKey(e.Key)
	case types.EventResize:
		self.Resize(e.Size.X, e.Size.Y)
	case types.EventStop:
		self.g.Stop()
	default:
		self.g.Log.Errorf("ui unhandled event %s", e.String())
	}
}

func (self *UI) onPointerMove(s types.PointerSample) {
	switch self.scene {
	case types.SceneIdle:
		self.exitIdle()
		return
	case types.SceneOptions:
		self.optionHover = self.layout.OptionAt(s.Pos)
		return
	}
	self.idle.Restart()
	if !self.interactive {
		return
	}
	m := self.modes()
	switch self.scene {
	case types.SceneCoffee:
		self.coffeeMove(s, m)
	case types.SceneSugar:
		self.sugarMove(s, m)
	case types.SceneRecap:
		self.recapMove(s, m)
	}
	if self.interactive {
		self.validateZoneMove(s.Pos)
	}
}

func (self *UI) onPointerPress(s types.PointerSample) {
	switch self.scene {
	case types.SceneIdle:
		self.exitIdle()
		return
	case types.SceneOptions:
		self.optionPress(s.Pos)
		return
	}
	self.idle.Restart()
	if !self.interactive {
		return
	}
	m := self.modes()
	switch self.scene {
	case types.SceneCoffee:
		self.coffeePress(s, m)
	case types.SceneSugar:
		self.sugarPress(s, m)
	case types.SceneRecap:
		self.recapPress(s, m)
	}
}

func (self *UI) onKey(k types.Key) {
	switch k {
	case types.KeyOptions:
		self.toggleOptions()
	case types.KeyLeft, types.KeyRight:
		if self.scene != types.SceneCoffee || !self.interactive || !self.g.Params.Get(params.CarouselSwipe) {
			return
		}
		self.idle.Restart()
		dir := 1
		if k == types.KeyLeft {
			dir = -1
		}
		self.quickMove(dir)
	case types.KeyQuit:
		self.g.Log.Infof("ui quit key")
		self.g.Stop()
	}
}

func (self *UI) play(s types.Sound) {
	if s == types.SoundChange && !self.changeLimit.AllowN(self.sched.Now(), 1) {
		return
	}
	self.host.Play(s)
}

func (self *UI) after(name string, d time.Duration, fn schedule.Func) *schedule.Timer {
	t := self.sched.After(name, d, fn)
	self.sceneTimers = append(self.sceneTimers, t)
	return t
}

// cancelSceneTimers stops everything owned by current scene content.
func (self *UI) cancelSceneTimers() {
	for _, t := range self.sceneTimers {
		self.sched.Cancel(t)
	}
	self.sceneTimers = self.sceneTimers[:0]
	self.stopAutoScroll()
	self.cancelValidateZone()
}
