package types

import "fmt"

type SceneID int8

// Ordered flow scenes first, their value is the progress step.
const (
	SceneCoffee SceneID = iota
	SceneSugar
	SceneRecap
	ScenePayment
	ScenePreparation

	SceneIdle
	SceneOptions
)

// Number of steps shown by progress indicator.
const SceneSteps = 5

var sceneNames = [...]string{"Coffee", "Sugar", "Recap", "Payment", "Preparation", "Idle", "Options"}

func (s SceneID) String() string {
	if s >= 0 && int(s) < len(sceneNames) {
		return sceneNames[s]
	}
	return fmt.Sprintf("SceneID(%d)", int8(s))
}

func (s SceneID) Ordered() bool { return s >= SceneCoffee && s <= ScenePreparation }

func (s SceneID) Progress() float64 { return float64(s) / SceneSteps }

// VisualState of interactive widget, mapped to style by renderer.
type VisualState uint8

const (
	VisualDefault VisualState = iota
	VisualHover
	VisualSelected
	VisualValidated
)

func (v VisualState) String() string {
	switch v {
	case VisualDefault:
		return "default"
	case VisualHover:
		return "hover"
	case VisualSelected:
		return "selected"
	case VisualValidated:
		return "validated"
	}
	return fmt.Sprintf("VisualState(%d)", uint8(v))
}
