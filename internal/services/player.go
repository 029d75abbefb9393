package services

import (
	"context"
	"sync"

	"github.com/vamos-sujal/ai-glow-fit/internal/models"
)

// PlaybackState is the narration player's state machine position.
type PlaybackState int

const (
	StateIdle PlaybackState = iota
	StateLoading
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Player drives narration playback for one plan view. Transitions:
// Idle -> Loading on play with no cached audio, Loading -> Playing on
// synthesis success, Loading -> Idle with the error on failure,
// Playing <-> Paused on repeated play, anything -> Idle on stop.
// Stop keeps the cached audio so replaying the same section does not
// re-synthesize; switching sections discards it. Synthesis is a single
// in-flight operation: a play request while Loading is a no-op.
type Player struct {
	synth Synthesizer

	mu      sync.Mutex
	state   PlaybackState
	section PlanSection
	audio   []byte
}

func NewPlayer(synth Synthesizer) *Player {
	return &Player{synth: synth, section: SectionWorkout}
}

// State returns the current playback state.
func (p *Player) State() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Section returns the currently selected section.
func (p *Player) Section() PlanSection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.section
}

// Audio returns the cached audio for the current section, if any.
func (p *Player) Audio() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.audio
}

// SelectSection switches the narrated section. A different section forces
// Idle and discards cached audio since it requires new synthesis.
func (p *Player) SelectSection(section PlanSection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if section == p.section {
		return
	}
	p.section = section
	p.audio = nil
	p.state = StateIdle
}

// Play advances the state machine for a play request and returns the
// resulting state. Synthesis failures surface as an error alongside the
// Idle state; the rest of the UI is unaffected.
func (p *Player) Play(ctx context.Context, plan *models.FitnessPlan) (PlaybackState, error) {
	p.mu.Lock()
	switch p.state {
	case StateLoading:
		p.mu.Unlock()
		return StateLoading, nil
	case StatePlaying:
		p.state = StatePaused
		p.mu.Unlock()
		return StatePaused, nil
	case StatePaused:
		p.state = StatePlaying
		p.mu.Unlock()
		return StatePlaying, nil
	}

	if p.audio != nil {
		p.state = StatePlaying
		p.mu.Unlock()
		return StatePlaying, nil
	}

	section := p.section
	p.state = StateLoading
	p.mu.Unlock()

	audio, err := p.synth.Synthesize(ctx, FormatForSpeech(plan, section))

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateLoading || p.section != section {
		// Stopped or switched while synthesizing; discard the result.
		return p.state, nil
	}
	if err != nil {
		p.state = StateIdle
		return StateIdle, err
	}
	p.audio = audio
	p.state = StatePlaying
	return StatePlaying, nil
}

// Stop returns to Idle and resets playback to the start. Cached audio for
// the current section survives so a subsequent play is instant.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateIdle
}
