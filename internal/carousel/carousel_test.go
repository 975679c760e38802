package carousel

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linled/coffee-kiosk/internal/types"
)

var epoch = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTest(t testing.TB) *Carousel {
	c := New(types.Drinks(), DefaultConfig())
	require.NoError(t, DefaultConfig().Validate())
	c.SetViewport(image.Rect(0, 100, 1200, 500))
	c.SetActive(true)
	return c
}

func TestCardAt(t *testing.T) {
	t.Parallel()

	c := newTest(t)
	assert.Equal(t, 300.0, c.CardWidth())
	assert.Equal(t, 0, c.CardAt(image.Pt(10, 200)))
	assert.Equal(t, 3, c.CardAt(image.Pt(1199, 200)))
	assert.Equal(t, -1, c.CardAt(image.Pt(10, 50)))

	c.Scroll(-10)
	assert.Equal(t, 8, c.Head())
	assert.Equal(t, 290.0, c.Offset())
	assert.Equal(t, 8, c.CardAt(image.Pt(5, 200)))
	assert.Equal(t, 0, c.CardAt(image.Pt(15, 200)))
}

func TestScrollRotation(t *testing.T) {
	t.Parallel()

	c := newTest(t)
	c.Scroll(300*9 + 50)
	assert.Equal(t, 0, c.Head())
	assert.InDelta(t, 50, c.Offset(), 1e-9)
	c.Scroll(-100)
	assert.Equal(t, 8, c.Head())
	assert.InDelta(t, 250, c.Offset(), 1e-9)

	slots := c.Slots(epoch)
	require.Len(t, slots, 5)
	assert.Equal(t, types.DrinkTea, slots[0].Drink)
	assert.Equal(t, -250, slots[0].Rect.Min.X)
	assert.Equal(t, types.DrinkEspresso, slots[1].Drink)
}

func TestHoverValidate(t *testing.T) {
	t.Parallel()

	c := newTest(t)
	_, ok := c.Validate(epoch)
	assert.False(t, ok, "nothing focused")

	assert.True(t, c.Hover(image.Pt(450, 200), epoch))
	assert.False(t, c.Hover(image.Pt(460, 200), epoch), "same card")
	d, ok := c.Focus()
	require.True(t, ok)
	assert.Equal(t, types.DrinkLongo, d)

	assert.True(t, c.Hover(image.Pt(700, 200), epoch))
	slots := c.Slots(epoch.Add(time.Second))
	assert.Equal(t, types.VisualDefault, slots[1].Visual)
	assert.Equal(t, types.VisualSelected, slots[2].Visual)
	assert.InDelta(t, MarginSelected, slots[2].Margin, 1e-9)
	assert.InDelta(t, MarginDefault, slots[1].Margin, 1e-9)

	d, ok = c.Validate(epoch)
	require.True(t, ok)
	assert.Equal(t, types.DrinkAmericano, d)
	assert.False(t, c.Active())
	assert.False(t, c.Hover(image.Pt(100, 200), epoch), "inactive after validate")

	c.Reset()
	_, ok = c.Focus()
	assert.False(t, ok)
	assert.False(t, c.Hover(image.Pt(100, 200), epoch), "inactive until fade ends")
}

func TestQuickMoveClosedLoop(t *testing.T) {
	t.Parallel()

	c := newTest(t)
	require.True(t, c.Hover(image.Pt(100, 200), epoch))
	start, _ := c.Focus()
	for i := 0; i < c.Len(); i++ {
		c.QuickMove(1, epoch)
		if i == 0 {
			d, _ := c.Focus()
			assert.Equal(t, types.DrinkLatte, d)
			assert.Equal(t, 4, c.Head())
		}
	}
	end, _ := c.Focus()
	assert.Equal(t, start, end)
	assert.Equal(t, 0, c.Head())

	c.QuickMove(-1, epoch)
	assert.Equal(t, 5, c.Head())
	c.QuickMove(1, epoch)
	assert.Equal(t, 0, c.Head())
}

func TestQuickMoveModulus(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.QuickModulus = 8
	c := New(types.Drinks(), cfg)
	c.SetViewport(image.Rect(0, 0, 800, 100))
	c.QuickMove(1, epoch)
	c.QuickMove(1, epoch)
	assert.Equal(t, 0, c.Head())
}

func TestEdge(t *testing.T) {
	t.Parallel()

	c := newTest(t)
	cases := []struct {
		x     int
		dir   int
		speed float64
		alpha uint8
	}{
		{600, 0, 0, 0},
		{0, -1, 15, 255},
		{60, -1, 12.5, 160},
		{119, -1, 10.04, 66},
		{1199, 1, 14.96, 253},
		{1140, 1, 12.5, 160},
	}
	for _, c2 := range cases {
		c.UpdateEdge(image.Pt(c2.x, 200))
		dir, speed := c.Edge()
		assert.Equal(t, c2.dir, dir, "x=%d", c2.x)
		assert.InDelta(t, c2.speed, speed, 0.01, "x=%d", c2.x)
		assert.Equal(t, c2.alpha, c.EdgeAlpha(), "x=%d", c2.x)
	}

	c.UpdateEdge(image.Pt(0, 200))
	assert.True(t, c.Tick())
	assert.Equal(t, 8, c.Head())
	assert.InDelta(t, 285, c.Offset(), 1e-9)

	c.UpdateEdge(image.Pt(0, 600))
	assert.False(t, c.Tick(), "outside viewport stops scrolling")

	c.SetActive(false)
	c.UpdateEdge(image.Pt(0, 200))
	dir, _ := c.Edge()
	assert.Equal(t, 0, dir)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	for _, fn := range []func(*Config){
		func(c *Config) { c.Visible = 0 },
		func(c *Config) { c.QuickModulus = -1 },
		func(c *Config) { c.EdgeZone = 0.6 },
		func(c *Config) { c.SpeedMax = 1 },
	} {
		cfg := DefaultConfig()
		fn(&cfg)
		assert.Error(t, cfg.Validate())
	}
}
