package main

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	state_new "github.com/linled/coffee-kiosk/internal/state/new"
	"github.com/linled/coffee-kiosk/internal/types"
)

func TestReplScript(t *testing.T) {
	t.Parallel()

	ctx, _ := state_new.NewTestContext(t, "", `params { movement_validation = true }`)
	r, err := newRepl(ctx, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	script := []string{
		"move 640 400",
		"wait 1.5s",
		"move 1100 300",
		"wait 20",
		"swipe 1100 300 150",
		"wait 1500",
		"move 830 300",
		"swipe 830 300 160",
		"status",
	}
	for _, line := range script {
		require.NoError(t, r.exec(line), line)
	}
	assert.Equal(t, types.SceneRecap, r.ui.Scene())
	assert.Equal(t, []types.Selection{{Drink: types.DrinkMacchiato, Sugar: 3}}, r.ui.Selections())
	assert.Contains(t, r.status(), "scene=Recap")
	assert.Contains(t, r.status(), "Macchiato sugar=3")
}

func TestReplErrors(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", "")
	r, err := newRepl(ctx, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, errors.IsNotFound(errors.Cause(r.exec("jump"))))
	assert.True(t, errors.IsNotValid(errors.Cause(r.exec("move 1"))))
	assert.True(t, errors.IsNotFound(errors.Cause(r.exec("key space"))))
	assert.True(t, errors.IsNotValid(errors.Cause(r.exec("wait -5"))))
	assert.Error(t, r.exec("wait soon"))
	assert.True(t, errors.IsNotFound(errors.Cause(r.exec("param nope"))))
	assert.NoError(t, r.exec(""))

	require.NoError(t, r.exec("param debug"))
	assert.True(t, g.Params.Get("debug"))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", formatDuration(0))
	assert.Equal(t, "14 s 500 ms", formatDuration(14500*time.Millisecond))
}
