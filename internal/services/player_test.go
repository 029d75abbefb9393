package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	audio []byte
	err   error
	calls int

	entered chan struct{}
	release chan struct{}
}

func (f *fakeSynth) Synthesize(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	return f.audio, f.err
}

func TestPlayerPlayPauseToggle(t *testing.T) {
	synth := &fakeSynth{audio: []byte("mp3")}
	player := NewPlayer(synth)

	state, err := player.Play(context.Background(), speechFixture())
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)
	assert.Equal(t, []byte("mp3"), player.Audio())

	state, err = player.Play(context.Background(), speechFixture())
	require.NoError(t, err)
	assert.Equal(t, StatePaused, state)

	state, err = player.Play(context.Background(), speechFixture())
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)

	// Toggling never re-synthesizes.
	assert.Equal(t, 1, synth.calls)
}

func TestPlayerSynthesisFailureReturnsToIdle(t *testing.T) {
	synth := &fakeSynth{err: errors.New("boom")}
	player := NewPlayer(synth)

	state, err := player.Play(context.Background(), speechFixture())
	assert.Error(t, err)
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, StateIdle, player.State())
	assert.Nil(t, player.Audio())
}

func TestPlayerStopResetsToIdleAndKeepsAudio(t *testing.T) {
	synth := &fakeSynth{audio: []byte("mp3")}
	player := NewPlayer(synth)

	_, err := player.Play(context.Background(), speechFixture())
	require.NoError(t, err)

	player.Stop()
	assert.Equal(t, StateIdle, player.State())

	state, err := player.Play(context.Background(), speechFixture())
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)
	assert.Equal(t, 1, synth.calls)
}

func TestPlayerSectionSwitchDiscardsAudio(t *testing.T) {
	synth := &fakeSynth{audio: []byte("mp3")}
	player := NewPlayer(synth)

	_, err := player.Play(context.Background(), speechFixture())
	require.NoError(t, err)

	player.SelectSection(SectionDiet)
	assert.Equal(t, StateIdle, player.State())
	assert.Nil(t, player.Audio())

	state, err := player.Play(context.Background(), speechFixture())
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)
	assert.Equal(t, 2, synth.calls)
}

func TestPlayerSameSectionSelectKeepsState(t *testing.T) {
	synth := &fakeSynth{audio: []byte("mp3")}
	player := NewPlayer(synth)

	_, err := player.Play(context.Background(), speechFixture())
	require.NoError(t, err)

	player.SelectSection(SectionWorkout)
	assert.Equal(t, StatePlaying, player.State())
	assert.NotNil(t, player.Audio())
}

func TestPlayerSecondPlayWhileLoadingIsNoOp(t *testing.T) {
	synth := &fakeSynth{
		audio:   []byte("mp3"),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	player := NewPlayer(synth)

	done := make(chan struct{})
	go func() {
		defer close(done)
		state, err := player.Play(context.Background(), speechFixture())
		assert.NoError(t, err)
		assert.Equal(t, StatePlaying, state)
	}()

	// Wait until synthesis is in flight.
	select {
	case <-synth.entered:
	case <-time.After(time.Second):
		t.Fatal("synthesis never started")
	}

	state, err := player.Play(context.Background(), speechFixture())
	require.NoError(t, err)
	assert.Equal(t, StateLoading, state)

	close(synth.release)
	<-done

	assert.Equal(t, StatePlaying, player.State())
	assert.Equal(t, 1, synth.calls)
}
