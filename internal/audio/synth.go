package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	synthSampleRate = 44100
	synthChannels   = 1
	synthBitDepth   = 2 // bytes per sample, 16-bit PCM
)

// Synth produces sine tones on the default output device via oto.
type Synth struct {
	ctx *oto.Context

	mu          sync.Mutex
	amplifierOn bool
	players     []oto.Player
}

// NewSynth opens the audio context. The context is process-wide in oto, so
// only one Synth should exist at a time.
func NewSynth() (*Synth, error) {
	ctx, ready, err := oto.NewContext(synthSampleRate, synthChannels, synthBitDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio context: %w", err)
	}
	<-ready
	return &Synth{ctx: ctx}, nil
}

func (s *Synth) PlayTone(freqHz float64, durationMs int64) {
	s.play(freqHz, durationMs, 0.6)
}

func (s *Synth) PlayBeep(freqHz float64, durationMs int64) {
	s.play(freqHz, durationMs, 0.8)
}

func (s *Synth) play(freqHz float64, durationMs int64, volume float64) {
	if freqHz <= 0 || durationMs <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.amplifierOn {
		return
	}

	player := s.ctx.NewPlayer(newSineWave(freqHz, durationMs, volume))
	player.Play()
	s.players = append(s.players, player)
	s.reapLocked()
}

// StopAll pauses every live player. Oto has no global stop, so each player
// is paused and dropped.
func (s *Synth) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		p.Pause()
		p.Close()
	}
	s.players = nil
}

func (s *Synth) SetAmplifierEnabled(enabled bool) {
	s.mu.Lock()
	s.amplifierOn = enabled
	s.mu.Unlock()
}

// EmitWarningCue plays a low double buzz.
func (s *Synth) EmitWarningCue() {
	s.play(180, 150, 0.8)
	time.AfterFunc(250*time.Millisecond, func() {
		s.play(180, 150, 0.8)
	})
}

func (s *Synth) Close() error {
	s.StopAll()
	return nil
}

// reapLocked drops players that finished playing. Called with mu held.
func (s *Synth) reapLocked() {
	live := s.players[:0]
	for _, p := range s.players {
		if p.IsPlaying() {
			live = append(live, p)
		} else {
			p.Close()
		}
	}
	s.players = live
}

// sineWave is an io.Reader producing a fixed-length 16-bit mono sine tone
// with a short linear fade at both ends to avoid clicks.
type sineWave struct {
	freqHz   float64
	volume   float64
	total    int64 // samples
	position int64
	fade     int64
}

func newSineWave(freqHz float64, durationMs int64, volume float64) *sineWave {
	total := durationMs * synthSampleRate / 1000
	fade := int64(synthSampleRate * 5 / 1000) // 5 ms
	if fade*2 > total {
		fade = total / 4
	}
	return &sineWave{freqHz: freqHz, volume: volume, total: total, fade: fade}
}

func (w *sineWave) Read(buf []byte) (int, error) {
	if w.position >= w.total {
		return 0, io.EOF
	}

	n := 0
	for n+1 < len(buf) && w.position < w.total {
		sample := w.volume * math.Sin(2*math.Pi*w.freqHz*float64(w.position)/synthSampleRate)
		sample *= w.envelope()
		v := int16(sample * math.MaxInt16)
		buf[n] = byte(v)
		buf[n+1] = byte(v >> 8)
		n += 2
		w.position++
	}
	return n, nil
}

func (w *sineWave) envelope() float64 {
	if w.fade <= 0 {
		return 1
	}
	if w.position < w.fade {
		return float64(w.position) / float64(w.fade)
	}
	if remaining := w.total - w.position; remaining < w.fade {
		return float64(remaining) / float64(w.fade)
	}
	return 1
}
