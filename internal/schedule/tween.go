package schedule

import "time"

type Easing func(float64) float64

func Linear(x float64) float64  { return x }
func InQuad(x float64) float64  { return x * x }
func OutQuad(x float64) float64 { return 1 - (1-x)*(1-x) }
func InOutQuad(x float64) float64 {
	if x < 0.5 {
		return 2 * x * x
	}
	return 1 - 2*(1-x)*(1-x)
}

// Tween is a timed interpolation from From to To, evaluated lazily at render time.
type Tween struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

func NewTween(from, to float64, start time.Time, d time.Duration, ease Easing) Tween {
	if ease == nil {
		ease = Linear
	}
	return Tween{From: from, To: to, Start: start, Duration: d, Ease: ease}
}

// Constant tween holds v forever.
func Constant(v float64) Tween { return Tween{From: v, To: v, Ease: Linear} }

func (t Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (t Tween) Value(now time.Time) float64 {
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	return t.From + (t.To-t.From)*ease(t.Progress(now))
}

func (t Tween) Done(now time.Time) bool { return t.Progress(now) >= 1 }

// Retarget starts new tween from current value, used when animation is interrupted.
func (t Tween) Retarget(now time.Time, to float64, d time.Duration) Tween {
	return NewTween(t.Value(now), to, now, d, t.Ease)
}
