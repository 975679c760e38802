package input

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"
	"io/ioutil"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/inputevent-go"

	"github.com/linled/coffee-kiosk/internal/types"
)

func encodeEvents(t testing.TB, evs ...inputevent.InputEvent) io.ReadCloser {
	var buf bytes.Buffer
	for _, e := range evs {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, e))
	}
	return ioutil.NopCloser(&buf)
}

func ev(ms int64, typ, code uint16, value int32) inputevent.InputEvent {
	return inputevent.InputEvent{Time: syscall.NsecToTimeval(ms * 1e6), Type: typ, Code: code, Value: value}
}

func TestDevInputEventTouch(t *testing.T) {
	t.Parallel()

	r := encodeEvents(t,
		ev(1000, evAbs, absX, 0),
		ev(1000, evAbs, absY, 4095),
		ev(1000, evKey, btnTouch, 1),
		ev(1000, evSyn, synReport, 0),
		ev(1050, evAbs, absX, 2048),
		ev(1050, evSyn, synReport, 0),
		// repeated down is not a new press
		ev(1060, evKey, btnTouch, 1),
		ev(1060, evSyn, synReport, 0),
		ev(1070, evKey, btnTouch, 0),
		ev(1070, evSyn, synReport, 0),
		ev(1080, evRel, relX, 5),
		ev(1080, evSyn, synReport, 0),
	)
	src := newDevInputEventSource(r, DevInputEventConfig{Screen: image.Pt(1280, 800), MaxX: 4095, MaxY: 4095})

	expect := []types.Event{
		{Kind: types.EventPointerMove, Source: DevInputEventTag, Pointer: types.PointerSample{Pos: image.Pt(0, 799), TimeMs: 1000}},
		{Kind: types.EventPointerPress, Source: DevInputEventTag, Pointer: types.PointerSample{Pos: image.Pt(0, 799), TimeMs: 1000}},
		{Kind: types.EventPointerMove, Source: DevInputEventTag, Pointer: types.PointerSample{Pos: image.Pt(639, 799), TimeMs: 1050}},
		{Kind: types.EventPointerMove, Source: DevInputEventTag, Pointer: types.PointerSample{Pos: image.Pt(644, 799), TimeMs: 1080}},
	}
	for i, want := range expect {
		e, err := src.Read()
		require.NoError(t, err, "event %d", i)
		assert.Equal(t, want, e, "event %d", i)
	}
	_, err := src.Read()
	assert.Equal(t, io.EOF, err)
}

func TestScale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, scale(-5, 4095, 1280))
	assert.Equal(t, 1279, scale(4095, 4095, 1280))
	assert.Equal(t, 1279, scale(9000, 4095, 1280))
	assert.Equal(t, 17, scale(17, 0, 1280))
}
