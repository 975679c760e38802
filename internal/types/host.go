package types

import "time"

type Sound uint8

func (s Sound) String() string {
	switch s {
	case SoundClick:
		return "click"
	case SoundChange:
		return "change"
	case SoundPayment:
		return "payment"
	}
	return "invalid"
}

const (
	SoundInvalid Sound = iota
	SoundClick         // commit
	SoundChange        // hover selection changed
	SoundPayment       // payment animation complete
)

func (s Sound) AssetKey() string {
	switch s {
	case SoundClick:
		return "sounds/click.wav"
	case SoundChange:
		return "sounds/card_change.wav"
	case SoundPayment:
		return "sounds/validate.wav"
	}
	return ""
}

// Renderer is the widget host: draws scenes, owns animations of presentation only.
type Renderer interface {
	ShowScene(SceneID)
	SetProgress(fraction float64, duration time.Duration)
	RecenterCursor()
	SetCursorHidden(bool)
}

// AudioPlayer is fire-and-forget, no completion callback.
type AudioPlayer interface {
	Play(Sound)
}

type Host interface {
	Renderer
	AudioPlayer
}
