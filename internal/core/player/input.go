package player

import "github.com/zeusync/tds/internal/core/geometry"

// Input is the state of the controls for one frame.
type Input struct {
	// Move is the raw movement direction, e.g. (1, -1) for right and up.
	Move geometry.Vec2 `yaml:"move"`
	// Aim is the world point the player is looking at.
	Aim              geometry.Vec2 `yaml:"aim"`
	Fire             bool          `yaml:"fire"`
	ToggleFlashlight bool          `yaml:"toggle_flashlight"`
	Explode          bool          `yaml:"explode"`
	Reload           bool          `yaml:"reload"`
	// FreezeTime suspends the whole simulation for the frame.
	FreezeTime bool `yaml:"freeze_time"`
}

// InputSource yields the controls once per frame.
type InputSource interface {
	Poll() Input
}

// ScriptStep holds an input for a number of consecutive frames.
type ScriptStep struct {
	Frames int   `yaml:"frames"`
	Input  Input `yaml:"input"`
}

// Script replays steps in order and loops forever. Edge-triggered actions
// (ToggleFlashlight, Explode, Reload) fire only on a step's first frame.
type Script struct {
	steps []ScriptStep
	step  int
	frame int
}

var _ InputSource = (*Script)(nil)

func NewScript(steps ...ScriptStep) *Script {
	kept := make([]ScriptStep, 0, len(steps))
	for _, s := range steps {
		if s.Frames > 0 {
			kept = append(kept, s)
		}
	}
	return &Script{steps: kept}
}

func (s *Script) Poll() Input {
	if len(s.steps) == 0 {
		return Input{}
	}

	cur := s.steps[s.step]
	in := cur.Input
	if s.frame > 0 {
		in.ToggleFlashlight = false
		in.Explode = false
		in.Reload = false
	}

	s.frame++
	if s.frame >= cur.Frames {
		s.frame = 0
		s.step = (s.step + 1) % len(s.steps)
	}
	return in
}
