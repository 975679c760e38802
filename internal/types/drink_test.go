package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrinks(t *testing.T) {
	t.Parallel()

	ds := Drinks()
	require.Len(t, ds, 9)
	seen := make(map[uint8]bool)
	for i, d := range ds {
		assert.False(t, d.IsNone())
		assert.Equal(t, uint8(i+1), d.ID)
		assert.False(t, seen[d.ID])
		seen[d.ID] = true
		found, ok := DrinkByID(d.ID)
		assert.True(t, ok)
		assert.Equal(t, d, found)
	}
	_, ok := DrinkByID(0)
	assert.False(t, ok)
	assert.False(t, DrinkWater.Sweet)
	assert.True(t, DrinkEspresso.Sweet)
}

func TestSession(t *testing.T) {
	t.Parallel()

	var s Session
	_, ok := s.Last()
	assert.False(t, ok)
	assert.False(t, s.Add(DrinkNone))
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.SetLastSugar(3))

	require.True(t, s.Add(DrinkWater))
	assert.False(t, s.SetLastSugar(3))
	last, _ := s.Last()
	assert.Equal(t, Selection{DrinkWater, 0}, last)

	require.True(t, s.Add(DrinkTea))
	assert.True(t, s.SetLastSugar(9))
	last, _ = s.Last()
	assert.Equal(t, SugarMax, last.Sugar)

	got := s.Selections()
	got[0].Sugar = 4
	assert.Equal(t, 0, s.Selections()[0].Sugar, "Selections returns a copy")

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Selections())
}

func TestSceneID(t *testing.T) {
	t.Parallel()

	assert.True(t, SceneCoffee.Ordered())
	assert.True(t, ScenePreparation.Ordered())
	assert.False(t, SceneIdle.Ordered())
	assert.False(t, SceneOptions.Ordered())
	assert.Equal(t, 0.4, SceneRecap.Progress())
	assert.Equal(t, "Sugar", SceneSugar.String())
	assert.Equal(t, "SceneID(42)", SceneID(42).String())
}
