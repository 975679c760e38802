package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestAfterOrder(t *testing.T) {
	t.Parallel()

	s := New(epoch)
	fired := ""
	s.After("b", 20*time.Millisecond, func() { fired += "b" })
	s.After("a1", 10*time.Millisecond, func() { fired += "1" })
	s.After("a2", 10*time.Millisecond, func() { fired += "2" })
	s.After("a3", 10*time.Millisecond, func() { fired += "3" })

	assert.Equal(t, 0, s.Advance(epoch.Add(9*time.Millisecond)))
	assert.Equal(t, "", fired)
	assert.Equal(t, 3, s.Advance(epoch.Add(10*time.Millisecond)))
	assert.Equal(t, "123", fired)
	assert.Equal(t, 1, s.Advance(epoch.Add(time.Second)))
	assert.Equal(t, "123b", fired)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, epoch.Add(time.Second), s.Now())
}

func TestResetNoDoubleFire(t *testing.T) {
	t.Parallel()

	s := New(epoch)
	n := 0
	tm := s.After("idle", 100*time.Millisecond, func() { n++ })
	now := epoch
	for i := 0; i < 100; i++ {
		now = now.Add(10 * time.Millisecond)
		s.Advance(now)
		s.Reset(tm, 100*time.Millisecond)
	}
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, s.Len())
	s.Advance(now.Add(100 * time.Millisecond))
	assert.Equal(t, 1, n)
	assert.False(t, tm.Active())
	s.Advance(now.Add(time.Hour))
	assert.Equal(t, 1, n)
}

func TestResetMovesBehindEqualDeadline(t *testing.T) {
	t.Parallel()

	s := New(epoch)
	fired := ""
	a := s.After("a", 10*time.Millisecond, func() { fired += "a" })
	s.After("b", 10*time.Millisecond, func() { fired += "b" })
	s.Reset(a, 10*time.Millisecond)
	s.Advance(epoch.Add(10 * time.Millisecond))
	assert.Equal(t, "ba", fired)
}

func TestEvery(t *testing.T) {
	t.Parallel()

	s := New(epoch)
	n := 0
	var tm *Timer
	tm = s.Every("scroll", 30*time.Millisecond, func() {
		n++
		if n == 3 {
			s.Cancel(tm)
		}
	})
	s.Advance(epoch.Add(29 * time.Millisecond))
	assert.Equal(t, 0, n)
	s.Advance(epoch.Add(61 * time.Millisecond))
	assert.Equal(t, 2, n)
	assert.True(t, tm.Active())
	s.Advance(epoch.Add(time.Second))
	assert.Equal(t, 3, n)
	assert.False(t, tm.Active())

	assert.Panics(t, func() { s.Every("bad", 0, nil) })
}

func TestNestedSchedule(t *testing.T) {
	t.Parallel()

	s := New(epoch)
	var at []time.Time
	s.After("outer", 5*time.Millisecond, func() {
		at = append(at, s.Now())
		s.After("inner", 5*time.Millisecond, func() { at = append(at, s.Now()) })
		s.After("late", time.Hour, func() { at = append(at, s.Now()) })
	})
	assert.Equal(t, 2, s.Advance(epoch.Add(20*time.Millisecond)))
	require.Len(t, at, 2)
	assert.Equal(t, epoch.Add(5*time.Millisecond), at[0])
	assert.Equal(t, epoch.Add(10*time.Millisecond), at[1])
	next, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, epoch.Add(5*time.Millisecond+time.Hour), next)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	s := New(epoch)
	n := 0
	tm := s.After("x", time.Millisecond, func() { n++ })
	s.Cancel(tm)
	s.Cancel(tm)
	s.Cancel(nil)
	s.Advance(epoch.Add(time.Second))
	assert.Equal(t, 0, n)
	var nilTimer *Timer
	assert.False(t, nilTimer.Active())
}

func TestTween(t *testing.T) {
	t.Parallel()

	tw := NewTween(0, 1, epoch, time.Second, nil)
	assert.Equal(t, 0.0, tw.Value(epoch.Add(-time.Second)))
	assert.InDelta(t, 0.5, tw.Value(epoch.Add(500*time.Millisecond)), 1e-9)
	assert.Equal(t, 1.0, tw.Value(epoch.Add(2*time.Second)))
	assert.True(t, tw.Done(epoch.Add(time.Second)))

	out := NewTween(0, 1, epoch, time.Second, OutQuad)
	assert.InDelta(t, 0.75, out.Value(epoch.Add(500*time.Millisecond)), 1e-9)
	in := NewTween(0, 1, epoch, time.Second, InQuad)
	assert.InDelta(t, 0.25, in.Value(epoch.Add(500*time.Millisecond)), 1e-9)

	re := tw.Retarget(epoch.Add(500*time.Millisecond), 0, time.Second)
	assert.InDelta(t, 0.5, re.From, 1e-9)
	assert.InDelta(t, 0.25, re.Value(epoch.Add(time.Second)), 1e-9)

	c := Constant(0.6)
	assert.Equal(t, 0.6, c.Value(epoch))
}
