package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/linled/coffee-kiosk/internal/carousel"
	"github.com/linled/coffee-kiosk/internal/params"
	"github.com/linled/coffee-kiosk/internal/sugar"
	"github.com/linled/coffee-kiosk/internal/types"
)

const MsgIdle = "LINLED COFFEE MACHINE\nFor demonstration purpose only\n\nBring your hand to interact"

var StepLabels = [types.SceneSteps]string{"Selection", "Option", "Cart", "Payment", "Preparation"}

type OptionRow struct {
	Rect  image.Rectangle
	Name  string
	State bool
	Hover bool
}

// View is a render snapshot, renderer must not keep it across frames.
type View struct {
	Scene       types.SceneID
	Layout      Layout
	Fade        float64
	Fading      bool
	Interactive bool
	Debug       bool

	Slots     []carousel.Slot
	EdgeDir   int
	EdgeAlpha uint8

	SugarTile types.VisualState
	SugarBar  types.VisualState
	SugarLit  int

	RecapOrder   types.VisualState
	RecapAnother types.VisualState
	Selections   []types.Selection

	Validate float64

	Payment  float64
	OrderRef string

	Message        string
	MessageOpacity float64

	Options []OptionRow
}

func (self *UI) View() View {
	now := self.sched.Now()
	v := View{
		Scene:       self.shown,
		Layout:      self.layout,
		Fade:        self.fade.Value(now),
		Fading:      self.pending.Active(),
		Interactive: self.interactive,
		Debug:       self.g.Params.Get(params.Debug),
		Validate:    self.validateTween.Value(now),
	}
	switch self.shown {
	case types.SceneCoffee:
		v.Slots = self.carousel.Slots(now)
		v.EdgeDir, _ = self.carousel.Edge()
		v.EdgeAlpha = self.carousel.EdgeAlpha()
	case types.SceneSugar:
		v.SugarTile = self.sugar.Visual(sugar.TargetTile)
		v.SugarBar = self.sugar.Visual(sugar.TargetBar)
		v.SugarLit = self.sugar.Lit()
	case types.SceneRecap:
		v.RecapOrder, v.RecapAnother = types.VisualDefault, types.VisualDefault
		switch self.recap {
		case recapOrder:
			v.RecapOrder = types.VisualSelected
		case recapAnother:
			v.RecapAnother = types.VisualSelected
		}
		v.Selections = self.session.Selections()
	case types.ScenePayment:
		v.Payment = self.payment.Value(now)
		v.Selections = self.session.Selections()
		v.OrderRef = OrderRef(v.Selections)
	case types.ScenePreparation:
		v.Message = self.message.text
		v.MessageOpacity = self.message.opacity.Value(now)
	case types.SceneIdle:
		v.Message = MsgIdle
		v.MessageOpacity = 1
	case types.SceneOptions:
		v.Options = make([]OptionRow, 0, self.g.Params.Len())
		for i, p := range self.g.Params.List() {
			row := OptionRow{Name: p.Name, State: p.State, Hover: i == self.optionHover}
			if i < len(self.layout.OptionRows) {
				row.Rect = self.layout.OptionRows[i]
			}
			v.Options = append(v.Options, row)
		}
	}
	return v
}

// OrderRef is the payment QR payload: one "id:sugar" pair per selection.
func OrderRef(ss []types.Selection) string {
	b := strings.Builder{}
	b.WriteString("coffee-kiosk:order:")
	for i, s := range ss {
		if i != 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d:%d", s.Drink.ID, s.Sugar)
	}
	return b.String()
}
