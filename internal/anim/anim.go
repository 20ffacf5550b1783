// Package anim sequences looped frame-by-frame animations. An animation
// does not draw anything itself; it switches the visual state of its owner.
package anim

import "github.com/vovakirdan/tin-quest/internal/core"

// Stater is anything whose visual state can be switched by name.
type Stater interface {
	SetState(state string)
}

// Frame is one step of an animation.
type Frame struct {
	State    string
	Duration int64 // milliseconds
}

// Animation loops through its frames while Play keeps being called.
type Animation struct {
	owner      Stater
	clock      core.Clock
	frames     []Frame
	current    int
	frameStart int64
	playing    bool
}

// New creates an empty animation for owner, timed by clock.
func New(owner Stater, clock core.Clock) *Animation {
	return &Animation{
		owner: owner,
		clock: clock,
	}
}

// AddFrame appends a frame. Duplicate states are allowed.
func (a *Animation) AddFrame(state string, durationMs int64) *Animation {
	a.frames = append(a.frames, Frame{State: state, Duration: durationMs})
	return a
}

// Frames returns the number of frames.
func (a *Animation) Frames() int {
	return len(a.frames)
}

// Current returns the index of the frame being shown.
func (a *Animation) Current() int {
	return a.current
}

// IsPlaying reports whether a play cycle is active.
func (a *Animation) IsPlaying() bool {
	return a.playing
}

// Play is meant to be called every tick while the action lasts. The first
// call after a stop shows frame 0; later calls move to the next frame once
// the current one has been shown for longer than its duration.
func (a *Animation) Play() {
	if len(a.frames) == 0 {
		return
	}

	now := a.clock.Millis()
	if !a.playing {
		a.playing = true
		a.current = 0
		a.frameStart = now
		a.apply()
		return
	}

	if now-a.frameStart > a.frames[a.current].Duration {
		a.current = (a.current + 1) % len(a.frames)
		a.frameStart = now
	}
	a.apply()
}

// Stop rewinds to frame 0 and shows it. Stopping an idle animation does nothing.
func (a *Animation) Stop() {
	if !a.playing {
		return
	}
	a.playing = false
	a.current = 0
	a.frameStart = 0
	a.apply()
}

func (a *Animation) apply() {
	if len(a.frames) == 0 {
		return
	}
	a.owner.SetState(a.frames[a.current].State)
}
