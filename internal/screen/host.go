// Package screen is the ebiten window host. It draws ui.View, plays sounds
// and feeds pointer and key input into the UI. Ebiten Update is the UI goroutine.
package screen

import (
	"bytes"
	"image"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/juju/errors"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/linled/coffee-kiosk/internal/assets"
	"github.com/linled/coffee-kiosk/internal/schedule"
	"github.com/linled/coffee-kiosk/internal/state"
	"github.com/linled/coffee-kiosk/internal/types"
	"github.com/linled/coffee-kiosk/internal/ui"
)

const (
	SourceTag  = "ebiten"
	sampleRate = 44100
	maxPlayers = 16
	volume     = 0.5
)

type Host struct {
	g      *state.Global
	ui     *ui.UI
	assets *assets.Store

	audio   *audio.Context
	pcm     map[types.Sound][]byte
	players []*audio.Player

	face      text.Face
	faceLarge text.Face
	images    map[string]*ebiten.Image
	qr        *ebiten.Image
	qrRef     string

	scene    types.SceneID
	progress schedule.Tween
	touchIDs []ebiten.TouchID
	pointer  image.Point
	hasPos   bool
}

// compile-time interface compliance test
var _ types.Host = new(Host)
var _ ebiten.Game = new(Host)

func New(g *state.Global, store *assets.Store) (*Host, error) {
	self := &Host{
		g:        g,
		assets:   store,
		pcm:      make(map[types.Sound][]byte, 4),
		images:   make(map[string]*ebiten.Image, 16),
		scene:    types.SceneIdle,
		progress: schedule.Constant(0),
	}
	if err := self.loadFont(); err != nil {
		return nil, err
	}
	self.audio = audio.NewContext(sampleRate)
	for _, s := range []types.Sound{types.SoundClick, types.SoundChange, types.SoundPayment} {
		self.loadSound(s)
	}
	return self, nil
}

// Attach binds initialized UI, must be called before ebiten.RunGame.
func (self *Host) Attach(u *ui.UI) { self.ui = u }

func (self *Host) loadFont() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(self.assets.Font()))
	if err != nil {
		self.g.Log.Error(errors.Annotate(err, "font fallback to builtin"))
		if src, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
			return errors.Annotate(err, "builtin font")
		}
	}
	self.face = &text.GoTextFace{Source: src, Size: 24}
	self.faceLarge = &text.GoTextFace{Source: src, Size: 40}
	return nil
}

func (self *Host) loadSound(s types.Sound) {
	b := self.assets.Sound(s.AssetKey())
	if b == nil {
		return
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(b))
	if err != nil {
		self.g.Log.Error(errors.Annotatef(err, "sound=%s decode", s.String()))
		return
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		self.g.Log.Error(errors.Annotatef(err, "sound=%s read", s.String()))
		return
	}
	self.pcm[s] = pcm
}

func (self *Host) clock() time.Time {
	if self.ui == nil {
		return time.Now()
	}
	return self.ui.Now()
}

// Renderer

func (self *Host) ShowScene(s types.SceneID) {
	self.scene = s
	self.g.Log.Debugf("screen show %s", s.String())
}

func (self *Host) SetProgress(fraction float64, d time.Duration) {
	self.progress = self.progress.Retarget(self.clock(), fraction, d)
	self.progress.Ease = schedule.InOutQuad
}

// RecenterCursor can not warp system cursor, instead next pointer position
// becomes new baseline without movement event.
func (self *Host) RecenterCursor() { self.hasPos = false }

func (self *Host) SetCursorHidden(hidden bool) {
	if hidden {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// Audio

func (self *Host) Play(s types.Sound) {
	pcm := self.pcm[s]
	if pcm == nil {
		return
	}
	alive := self.players[:0]
	for _, p := range self.players {
		if p.IsPlaying() {
			alive = append(alive, p)
		} else {
			_ = p.Close()
		}
	}
	self.players = alive
	if len(self.players) >= maxPlayers {
		self.g.Log.Debugf("screen sound=%s dropped, players=%d", s.String(), len(self.players))
		return
	}
	p := self.audio.NewPlayerFromBytes(pcm)
	p.SetVolume(volume)
	p.Play()
	self.players = append(self.players, p)
}

// ebiten.Game

func (self *Host) Update() error {
	if !self.g.Alive.IsRunning() {
		return ebiten.Termination
	}
	self.ui.Advance(time.Now())
	self.ui.Drain()
	self.pollPointer()
	self.pollKeys()
	return nil
}

func (self *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := self.ui.Layout().Size
	return size.X, size.Y
}

func (self *Host) pollPointer() {
	self.touchIDs = ebiten.AppendTouchIDs(self.touchIDs[:0])
	var x, y int
	if len(self.touchIDs) != 0 {
		x, y = ebiten.TouchPosition(self.touchIDs[0])
	} else {
		x, y = ebiten.CursorPosition()
	}
	p := image.Pt(x, y)
	switch {
	case !self.hasPos:
		self.hasPos, self.pointer = true, p
	case p != self.pointer:
		self.pointer = p
		self.ui.Handle(types.Event{Kind: types.EventPointerMove, Source: SourceTag, Pointer: types.PointerSample{Pos: p}})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || len(inpututil.AppendJustPressedTouchIDs(nil)) != 0 {
		self.ui.Handle(types.Event{Kind: types.EventPointerPress, Source: SourceTag, Pointer: types.PointerSample{Pos: p}})
	}
}

func (self *Host) pollKeys() {
	for k := range keymap {
		if inpututil.IsKeyJustPressed(k) {
			self.ui.Handle(types.Event{Kind: types.EventKey, Source: SourceTag, Key: mapKey(k)})
		}
	}
}

// image returns cached asset image, nil when missing.
func (self *Host) image(key string) *ebiten.Image {
	if im, ok := self.images[key]; ok {
		return im
	}
	var eim *ebiten.Image
	if im, ok := self.assets.Image(key); ok {
		eim = ebiten.NewImageFromImage(im)
	}
	self.images[key] = eim
	return eim
}
