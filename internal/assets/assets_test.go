package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/linled/coffee-kiosk/internal/state"
	"github.com/linled/coffee-kiosk/log2"
)

func TestStore(t *testing.T) {
	t.Parallel()

	im := image.NewRGBA(image.Rect(0, 0, 2, 3))
	im.Set(1, 1, color.RGBA{0x38, 0x22, 0x0f, 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, im))

	fs := state.NewMockFullReader(map[string]string{
		"assets/coffee2.jpg":       buf.String(),
		"assets/broken.jpg":        "not an image",
		"assets/sounds/click.wav":  "RIFF",
		"assets/fonts/arlrdbd.ttf": "",
	})
	log := log2.NewTest(t, log2.LDebug)
	var errs []error
	log.SetErrorFunc(func(e error) { errs = append(errs, e) })
	s := New(log, fs, "assets")

	got, ok := s.Image("coffee2.jpg")
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 2, 3), got.Bounds())
	again, _ := s.Image("coffee2.jpg")
	assert.True(t, got == again, "cached")

	_, ok = s.Image("missing.jpg")
	assert.False(t, ok)
	_, ok = s.Image("missing.jpg")
	assert.False(t, ok)
	require.Len(t, errs, 1, "failure logged once")
	assert.True(t, errors.IsNotFound(errors.Cause(errs[0])))

	_, ok = s.Image("broken.jpg")
	assert.False(t, ok)
	require.Len(t, errs, 2)
	assert.True(t, errors.IsNotValid(errors.Cause(errs[1])))

	assert.Equal(t, []byte("RIFF"), s.Sound("sounds/click.wav"))
	assert.Nil(t, s.Sound("sounds/none.wav"))
	assert.Equal(t, goregular.TTF, s.Font())
	assert.ElementsMatch(t, []string{"missing.jpg", "broken.jpg", "sounds/none.wav"}, s.Failed())
}
