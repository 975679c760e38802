package ui

import "image"

// Layout is the widget geometry for one screen size, recomputed on resize.
type Layout struct {
	Size         image.Point
	TopBar       image.Rectangle
	Progress     image.Rectangle
	Content      image.Rectangle
	Carousel     image.Rectangle
	Validate     image.Rectangle
	SugarTile    image.Rectangle
	SugarBar     image.Rectangle
	RecapOrder   image.Rectangle
	RecapAnother image.Rectangle
	Payment      image.Rectangle
	OptionRows   []image.Rectangle
}

const paymentBadgeSize = 150

func NewLayout(w, h int, optionCount int) Layout {
	pw := func(p int) int { return w * p / 100 }
	ph := func(p int) int { return h * p / 100 }
	l := Layout{
		Size:         image.Pt(w, h),
		TopBar:       image.Rect(0, 0, w, ph(20)),
		Progress:     image.Rect(pw(15), ph(12), w-pw(5), ph(15)),
		Content:      image.Rect(0, ph(20), w, ph(85)),
		Validate:     image.Rect(0, ph(85), w, h),
		SugarTile:    image.Rect(pw(5), ph(25), pw(30), ph(80)),
		SugarBar:     image.Rect(pw(35), ph(25), pw(95), ph(80)),
		RecapOrder:   image.Rect(pw(5), ph(22), pw(48), ph(83)),
		RecapAnother: image.Rect(pw(52), ph(22), pw(95), ph(83)),
	}
	l.Carousel = l.Content
	c := l.Content.Min.Add(l.Content.Size().Div(2))
	half := image.Pt(paymentBadgeSize/2, paymentBadgeSize/2)
	l.Payment = image.Rectangle{Min: c.Sub(half), Max: c.Add(half)}

	rowH := ph(12)
	l.OptionRows = make([]image.Rectangle, optionCount)
	for i := range l.OptionRows {
		y := ph(20) + i*rowH
		l.OptionRows[i] = image.Rect(pw(20), y, pw(80), y+rowH-ph(2))
	}
	return l
}

// OptionAt returns option row index under p or -1.
func (self *Layout) OptionAt(p image.Point) int {
	for i, r := range self.OptionRows {
		if p.In(r) {
			return i
		}
	}
	return -1
}
