// Package audio plays the backing track and the hit and miss cues.
//
// Every failure here is survivable: a player that cannot load or start
// its track logs the problem and the game continues without sound.
package audio

import "time"

type Player interface {
	// Play starts the track from the beginning
	Play() error
	Pause()
	Resume() error
	Hit()
	Miss()

	// Ready is closed once the track can play, Ended once it has finished
	Ready() <-chan struct{}
	Ended() <-chan struct{}
	Duration() time.Duration

	Close()
}

// Silent satisfies Player without producing sound. It is ready at once and
// its track never ends, so a session relies on its deadline.
type Silent struct {
	Length time.Duration
	ready  chan struct{}
}

func NewSilent(length time.Duration) *Silent {
	s := &Silent{Length: length, ready: make(chan struct{})}
	close(s.ready)
	return s
}

func (s *Silent) Play() error             { return nil }
func (s *Silent) Pause()                  {}
func (s *Silent) Resume() error           { return nil }
func (s *Silent) Hit()                    {}
func (s *Silent) Miss()                   {}
func (s *Silent) Ready() <-chan struct{}  { return s.ready }
func (s *Silent) Ended() <-chan struct{}  { return nil }
func (s *Silent) Duration() time.Duration { return s.Length }
func (s *Silent) Close()                  {}
