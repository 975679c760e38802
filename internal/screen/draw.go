package screen

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"

	"github.com/linled/coffee-kiosk/internal/types"
	"github.com/linled/coffee-kiosk/internal/ui"
)

var (
	colorDark   = color.RGBA{0x38, 0x22, 0x0f, 0xff}
	colorBrown  = color.RGBA{0x63, 0x48, 0x32, 0xff}
	colorLight  = color.RGBA{0xec, 0xe0, 0xd1, 0xff}
	colorAccent = color.RGBA{0xdb, 0xc1, 0xac, 0xff}
	colorCard   = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorZone   = color.RGBA{99, 72, 50, 128}
	colorDebug  = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

const (
	keyBackground = "wood_bg.jpg"
	keyLogo       = "linled_logo.png"
	qrSize        = 256
)

func (self *Host) Draw(screen *ebiten.Image) {
	v := self.ui.View()
	now := self.ui.Now()
	self.drawBackground(screen)
	switch v.Scene {
	case types.SceneIdle:
		self.drawCenterText(screen, v.Layout.Content, v.Message, self.faceLarge, colorLight, 1)
	case types.SceneOptions:
		self.drawOptions(screen, v)
	default:
		self.drawTopBar(screen, v, now)
		self.drawScene(screen, v)
		if v.Fading {
			r := v.Layout.Content.Union(v.Layout.Validate)
			fillRect(screen, r, colorBrown, float32(v.Fade))
		}
	}
	if v.Debug {
		self.drawDebug(screen, v)
	}
}

func (self *Host) drawScene(screen *ebiten.Image, v ui.View) {
	switch v.Scene {
	case types.SceneCoffee:
		self.drawCarousel(screen, v)
		self.drawValidateZone(screen, v)
	case types.SceneSugar:
		self.drawSugar(screen, v)
		self.drawValidateZone(screen, v)
	case types.SceneRecap:
		self.drawRecap(screen, v)
		self.drawValidateZone(screen, v)
	case types.ScenePayment:
		self.drawPayment(screen, v)
	case types.ScenePreparation:
		self.drawCenterText(screen, v.Layout.Content, v.Message, self.faceLarge, colorLight, v.MessageOpacity)
	}
}

func (self *Host) drawBackground(screen *ebiten.Image) {
	bg := self.image(keyBackground)
	if bg == nil {
		screen.Fill(colorBrown)
		return
	}
	self.drawCover(screen, bg, screen.Bounds(), 1)
}

func (self *Host) drawTopBar(screen *ebiten.Image, v ui.View, now time.Time) {
	l := v.Layout
	if logo := self.image(keyLogo); logo != nil {
		h := l.Progress.Min.Y - l.TopBar.Min.Y
		r := image.Rect(l.TopBar.Min.X+20, l.TopBar.Min.Y+10, l.Progress.Min.X-10, l.TopBar.Min.Y+h)
		self.drawCover(screen, logo, r, 1)
	}
	step := l.Progress.Dx() / types.SceneSteps
	for i, label := range ui.StepLabels {
		clr := colorAccent
		if types.SceneID(i) == v.Scene {
			clr = colorLight
		}
		x := float64(l.Progress.Min.X + i*step)
		y := float64(l.Progress.Min.Y - 40)
		self.drawText(screen, label, self.face, x, y, clr, 1, text.AlignStart)
	}
	fillRect(screen, l.Progress, colorLight, 1)
	p := self.progress.Value(now)
	fill := l.Progress
	fill.Max.X = fill.Min.X + int(float64(fill.Dx())*p)
	fillRect(screen, fill, colorDark, 1)
}

func (self *Host) drawCarousel(screen *ebiten.Image, v ui.View) {
	view := screen.SubImage(v.Layout.Carousel).(*ebiten.Image)
	for _, slot := range v.Slots {
		card := inset(slot.Rect, int(slot.Margin))
		if im := self.image(slot.Drink.ImageRef); im != nil {
			self.drawCover(view, im, card, 1)
		} else {
			fillRect(view, card, colorCard, 1)
		}
		switch slot.Visual {
		case types.VisualSelected:
			strokeRect(view, card, 4, colorAccent)
		case types.VisualValidated:
			strokeRect(view, card, 8, colorLight)
		}
		label := image.Rect(card.Min.X, card.Max.Y-60, card.Max.X, card.Max.Y)
		fillRect(view, label, colorDark, 0.7)
		self.drawCenterText(view, label, slot.Drink.Label, self.face, colorLight, 1)
	}
	if v.EdgeDir != 0 {
		r := v.Layout.Carousel
		w := r.Dx() / 10
		if v.EdgeDir < 0 {
			r.Max.X = r.Min.X + w
		} else {
			r.Min.X = r.Max.X - w
		}
		fillRect(screen, r, colorLight, float32(v.EdgeAlpha)/255/2)
	}
}

func (self *Host) drawSugar(screen *ebiten.Image, v ui.View) {
	tile, bar := v.Layout.SugarTile, v.Layout.SugarBar
	fillRect(screen, tile, colorCard, 1)
	self.drawCenterText(screen, tile, "No sugar", self.faceLarge, colorDark, 1)
	if v.SugarTile == types.VisualSelected {
		strokeRect(screen, tile, 6, colorAccent)
	}

	fillRect(screen, bar, colorCard, 1)
	zw := bar.Dx() / 5
	for i := 0; i < 5; i++ {
		seg := image.Rect(bar.Min.X+i*zw, bar.Max.Y-(i+1)*bar.Dy()/6, bar.Min.X+(i+1)*zw, bar.Max.Y)
		clr := colorLight
		if i < v.SugarLit {
			clr = colorDark
		}
		fillRect(screen, inset(seg, 8), clr, 1)
	}
	if v.SugarBar == types.VisualSelected {
		strokeRect(screen, bar, 6, colorAccent)
	}
	head := image.Rect(bar.Min.X, bar.Min.Y, bar.Max.X, bar.Min.Y+60)
	self.drawCenterText(screen, head, fmt.Sprintf("Sugar %d/5", v.SugarLit), self.face, colorDark, 1)
}

func (self *Host) drawRecap(screen *ebiten.Image, v ui.View) {
	order, another := v.Layout.RecapOrder, v.Layout.RecapAnother
	fillRect(screen, order, colorCard, 1)
	fillRect(screen, another, colorCard, 1)
	if v.RecapOrder == types.VisualSelected {
		strokeRect(screen, order, 6, colorAccent)
	}
	if v.RecapAnother == types.VisualSelected {
		strokeRect(screen, another, 6, colorAccent)
	}
	head := image.Rect(order.Min.X, order.Min.Y, order.Max.X, order.Min.Y+80)
	self.drawCenterText(screen, head, "Confirm order", self.faceLarge, colorDark, 1)
	y := float64(head.Max.Y + 20)
	for _, sel := range v.Selections {
		self.drawText(screen, sel.String(), self.face, float64(order.Min.X+30), y, colorDark, 1, text.AlignStart)
		y += 36
	}
	self.drawCenterText(screen, another, "Add another drink", self.faceLarge, colorDark, 1)
}

func (self *Host) drawValidateZone(screen *ebiten.Image, v ui.View) {
	r := v.Layout.Validate
	fillRect(screen, r, colorZone, 1)
	if v.Validate > 0 {
		fill := r
		fill.Max.X = fill.Min.X + int(float64(r.Dx())*v.Validate)
		fillRect(screen, fill, colorAccent, 1)
	}
	vector.StrokeLine(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Max.X), float32(r.Min.Y), 3, colorLight, false)
	self.drawCenterText(screen, r, "Validate", self.faceLarge, colorLight, 1)
}

func (self *Host) drawPayment(screen *ebiten.Image, v ui.View) {
	l := v.Layout
	if qr := self.qrImage(v.OrderRef); qr != nil {
		b := qr.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(l.Payment.Min.X+l.Payment.Dx()/2-b.Dx()/2), float64(l.Payment.Min.Y+l.Payment.Dy()/2-b.Dy()/2))
		screen.DrawImage(qr, op)
	}
	frame := l.Payment.Inset(-qrSize / 2)
	strokeRect(screen, frame, 2, colorAccent)
	for _, s := range borderPath(frame, v.Payment) {
		vector.StrokeLine(screen, s.x0, s.y0, s.x1, s.y1, 8, colorLight, true)
	}
	caption := image.Rect(l.Content.Min.X, frame.Max.Y, l.Content.Max.X, l.Content.Max.Y)
	self.drawCenterText(screen, caption, "Please tap your card", self.face, colorLight, 1)
}

func (self *Host) qrImage(ref string) *ebiten.Image {
	if ref == self.qrRef {
		return self.qr
	}
	self.qrRef = ref
	self.qr = nil
	q, err := qrcode.New(ref, qrcode.Medium)
	if err != nil {
		self.g.Log.Error(errors.Annotatef(err, "payment qr ref=%s", ref))
		return nil
	}
	q.ForegroundColor = colorDark
	q.BackgroundColor = colorLight
	self.qr = ebiten.NewImageFromImage(q.Image(qrSize))
	return self.qr
}

func (self *Host) drawOptions(screen *ebiten.Image, v ui.View) {
	head := image.Rect(0, 0, v.Layout.Size.X, v.Layout.TopBar.Max.Y)
	self.drawCenterText(screen, head, "Options", self.faceLarge, colorLight, 1)
	for _, row := range v.Options {
		clr := colorCard
		if row.Hover {
			clr = colorAccent
		}
		fillRect(screen, row.Rect, clr, 1)
		state := "OFF"
		if row.State {
			state = "ON"
		}
		y := float64(row.Rect.Min.Y + row.Rect.Dy()/2)
		self.drawText(screen, row.Name, self.face, float64(row.Rect.Min.X+20), y, colorDark, 1, text.AlignStart)
		self.drawText(screen, state, self.face, float64(row.Rect.Max.X-20), y, colorDark, 1, text.AlignEnd)
	}
}

func (self *Host) drawDebug(screen *ebiten.Image, v ui.View) {
	l := v.Layout
	for _, r := range []image.Rectangle{l.TopBar, l.Progress, l.Content, l.Validate, l.SugarTile, l.SugarBar, l.RecapOrder, l.RecapAnother, l.Payment} {
		strokeRect(screen, r, 1, colorDebug)
	}
	next := "-"
	if t, ok := self.ui.NextTimer(); ok {
		next = t.Sub(self.ui.Now()).String()
	}
	msg := fmt.Sprintf("scene=%s interactive=%t fade=%.2f idle=%v next=%s tps=%.0f",
		v.Scene.String(), v.Interactive, v.Fade, self.ui.IdleRemaining().Truncate(time.Millisecond), next, ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, msg, 4, l.Size.Y-20)
}

func (self *Host) drawCover(dst, im *ebiten.Image, r image.Rectangle, alpha float32) {
	b := im.Bounds()
	k := fitScale(b.Size(), r.Size())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(float64(r.Min.X)+(float64(r.Dx())-float64(b.Dx())*k)/2, float64(r.Min.Y)+(float64(r.Dy())-float64(b.Dy())*k)/2)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	dst.SubImage(r).(*ebiten.Image).DrawImage(im, op)
}

func (self *Host) drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color, alpha float64, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = face.Metrics().HAscent + face.Metrics().HDescent + face.Metrics().HLineGap
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}

func (self *Host) drawCenterText(dst *ebiten.Image, r image.Rectangle, s string, face text.Face, clr color.Color, alpha float64) {
	if s == "" || alpha <= 0 {
		return
	}
	c := r.Min.Add(r.Size().Div(2))
	self.drawText(dst, s, face, float64(c.X), float64(c.Y), clr, alpha, text.AlignCenter)
}

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.RGBA, alpha float32) {
	if r.Empty() || alpha <= 0 {
		return
	}
	if alpha < 1 {
		clr.A = uint8(float32(clr.A) * alpha)
		clr.R = uint8(float32(clr.R) * alpha)
		clr.G = uint8(float32(clr.G) * alpha)
		clr.B = uint8(float32(clr.B) * alpha)
	}
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func strokeRect(dst *ebiten.Image, r image.Rectangle, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), width, clr, false)
}
