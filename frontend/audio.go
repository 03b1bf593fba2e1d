package frontend

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
)

const (
	sampleRate = 44100
	// 16-bit little endian stereo
	bytesPerFrame = 4
	musicVolume   = 0.25
)

// Arpeggio patterns for the synthesized tracks, in semitones from the root
var trackPatterns = map[string][]int{
	"background": {0, 3, 7, 12, 7, 3, 0, -5, 0, 3, 7, 10, 7, 3, 0, -2},
}

// Music implements game.Audio with one looping track at a time
type Music struct {
	ctx    *audio.Context
	logger zerolog.Logger

	player  *audio.Player
	current string
}

// NewMusic creates the audio context. It must be called once per process.
func NewMusic(logger zerolog.Logger) *Music {
	return &Music{
		ctx:    audio.NewContext(sampleRate),
		logger: logger.With().Str("component", "music").Logger(),
	}
}

// PlayLoop starts track from the beginning, looping forever
func (m *Music) PlayLoop(track string) {
	if m.player != nil && m.current == track {
		if err := m.player.SetPosition(0); err != nil {
			m.logger.Warn().Err(err).Msg("failed to rewind track")
		}
		m.player.Play()
		return
	}

	if m.player != nil {
		if err := m.player.Close(); err != nil {
			m.logger.Warn().Err(err).Str("track", m.current).Msg("failed to close track")
		}
		m.player = nil
	}
	p, err := m.newLoop(track)
	if err != nil {
		m.logger.Warn().Err(err).Str("track", track).Msg("music disabled")
		return
	}
	m.player = p
	m.current = track
	m.player.Play()
	m.logger.Debug().Str("track", track).Msg("music started")
}

func (m *Music) newLoop(track string) (*audio.Player, error) {
	pcm := synthesizeTrack(track)
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	p, err := m.ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("failed to create player for %s: %w", track, err)
	}
	p.SetVolume(musicVolume)
	return p, nil
}

// Pause implements game.Audio
func (m *Music) Pause() {
	if m.player != nil {
		m.player.Pause()
	}
}

// Resume implements game.Audio
func (m *Music) Resume() {
	if m.player != nil {
		m.player.Play()
	}
}

// Stop halts playback and rewinds the track
func (m *Music) Stop() {
	if m.player == nil {
		return
	}
	m.player.Pause()
	if err := m.player.SetPosition(0); err != nil {
		m.logger.Warn().Err(err).Msg("failed to rewind track")
	}
}

// synthesizeTrack renders a short arpeggio loop as 16-bit stereo PCM.
// Unknown track names fall back to the background pattern.
func synthesizeTrack(track string) []byte {
	pattern, ok := trackPatterns[track]
	if !ok {
		pattern = trackPatterns["background"]
	}

	const (
		root = 220.0 // A3
		amp  = 0.3
		// 3/16 of a second per note
		noteFrames = sampleRate * 3 / 16
	)
	pcm := make([]byte, 0, len(pattern)*noteFrames*bytesPerFrame)

	for _, semitone := range pattern {
		freq := root * math.Pow(2, float64(semitone)/12)
		for i := 0; i < noteFrames; i++ {
			t := float64(i) / sampleRate
			// Fast attack, exponential decay; ends near silence so the loop seam is clean
			env := math.Min(1, float64(i)/200) * math.Exp(-6*float64(i)/float64(noteFrames))
			v := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
			s := int16(v / 1.3 * env * amp * math.MaxInt16)
			lo, hi := byte(s), byte(s>>8)
			pcm = append(pcm, lo, hi, lo, hi)
		}
	}
	return pcm
}
