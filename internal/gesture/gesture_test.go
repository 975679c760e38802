package gesture

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linled/coffee-kiosk/internal/types"
)

func sample(x, y int, ms int64) types.PointerSample {
	return types.PointerSample{Pos: image.Pt(x, y), TimeMs: ms}
}

func TestMove(t *testing.T) {
	t.Parallel()

	bounds := image.Rect(100, 100, 400, 500)
	swipeOn := Modes{MovementValidation: true}
	horiz := Modes{HorizontalSwipe: true}
	type step struct {
		s      types.PointerSample
		m      Modes
		expect Intent
	}
	cases := []struct {
		name  string
		p     Profile
		steps []step
	}{
		{"hover", CardProfile, []step{
			{sample(10, 10, 0), swipeOn, None},
			{sample(150, 150, 50), swipeOn, HoverEnter},
			{sample(160, 160, 100), swipeOn, None},
			{sample(10, 160, 150), swipeOn, HoverLeave},
		}},
		{"quick-down", CardProfile, []step{
			{sample(150, 150, 0), swipeOn, HoverEnter},
			{sample(160, 260, 150), swipeOn, QuickDownSwipe},
		}},
		{"quick-down-leaving-bounds", CardProfile, []step{
			{sample(150, 300, 0), swipeOn, HoverEnter},
			{sample(150, 600, 10), swipeOn, QuickDownSwipe},
		}},
		{"down-disabled", CardProfile, []step{
			{sample(150, 150, 0), Modes{}, HoverEnter},
			{sample(160, 260, 150), Modes{}, None},
		}},
		{"too-slow", CardProfile, []step{
			{sample(150, 150, 0), swipeOn, HoverEnter},
			{sample(150, 300, 200), swipeOn, None},
		}},
		{"too-short", CardProfile, []step{
			{sample(150, 150, 0), swipeOn, HoverEnter},
			{sample(150, 250, 10), swipeOn, None},
		}},
		{"upward", CardProfile, []step{
			{sample(150, 400, 0), swipeOn, HoverEnter},
			{sample(150, 200, 10), swipeOn, None},
		}},
		{"interactive-threshold", InteractiveProfile, []step{
			{sample(150, 150, 0), swipeOn, HoverEnter},
			{sample(150, 280, 50), swipeOn, None},
			{sample(150, 440, 99), swipeOn, QuickDownSwipe},
		}},
		{"started-outside", CardProfile, []step{
			{sample(150, 10, 0), swipeOn, None},
			{sample(150, 200, 10), swipeOn, HoverEnter},
		}},
		{"horizontal", CardProfile, []step{
			{sample(300, 150, 0), horiz, HoverEnter},
			{sample(150, 160, 50), horiz, QuickLeftSwipe},
			{sample(360, 160, 100), horiz, QuickRightSwipe},
			{sample(360, 300, 110), horiz, None},
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			cl := New(bounds, c.p)
			for i, st := range c.steps {
				assert.Equal(t, st.expect, cl.Move(st.s, st.m), "step=%d sample=%s", i, st.s)
			}
		})
	}
}

func TestPress(t *testing.T) {
	t.Parallel()

	cl := New(image.Rect(0, 0, 100, 100), CardProfile)
	assert.Equal(t, None, cl.Press(sample(50, 50, 0), Modes{}))
	assert.Equal(t, Click, cl.Press(sample(50, 50, 10), Modes{ClickableButton: true}))
	assert.Equal(t, None, cl.Press(sample(150, 50, 20), Modes{ClickableButton: true}))
	assert.False(t, cl.Inside())
}

func TestPause(t *testing.T) {
	t.Parallel()

	m := Modes{MovementValidation: true, ClickableButton: true}
	cl := New(image.Rect(0, 0, 400, 400), CardProfile)
	assert.Equal(t, HoverEnter, cl.Move(sample(50, 50, 0), m))
	assert.Equal(t, QuickDownSwipe, cl.Move(sample(50, 200, 50), m))
	cl.Pause(550)
	assert.Equal(t, None, cl.Move(sample(50, 50, 100), m))
	assert.Equal(t, None, cl.Move(sample(50, 300, 150), m))
	assert.Equal(t, None, cl.Press(sample(50, 300, 160), m))
	assert.Equal(t, None, cl.Move(sample(500, 300, 200), m), "hover leave swallowed during pause")
	assert.False(t, cl.Inside())
	assert.Equal(t, HoverEnter, cl.Move(sample(50, 50, 600), m))
	assert.Equal(t, QuickDownSwipe, cl.Move(sample(50, 200, 650), m))

	cl.Reset()
	assert.False(t, cl.Inside())
	assert.Equal(t, HoverEnter, cl.Move(sample(50, 200, 700), m))
}

func TestIntentString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "QuickDownSwipe", QuickDownSwipe.String())
	assert.Equal(t, "Intent(99)", Intent(99).String())
	assert.True(t, QuickLeftSwipe.IsSwipe())
	assert.False(t, Click.IsSwipe())
}
