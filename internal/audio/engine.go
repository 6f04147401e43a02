// Package audio synthesizes the pursuit sound cues procedurally; there are
// no sample assets. It implements the wanted.Audio facade on top of oto.
package audio

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"sanclaudio/internal/wanted"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Engine owns the oto context. A nil *Engine is a valid silent engine, so
// headless hosts can skip audio entirely.
type Engine struct {
	ctx   *oto.Context
	ready chan struct{}

	sfxGain float64

	// Caps on simultaneous voices per cue family; more stacks into clipping.
	activeSirens int32
	activeShots  int32
}

var _ wanted.Audio = (*Engine)(nil)

// NewEngine opens the audio device. The context becomes ready asynchronously;
// cues requested before that are dropped.
func NewEngine() (*Engine, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Engine{ctx: ctx, ready: ready, sfxGain: 0.58}, nil
}

// SetGain sets the master effect volume in [0,1].
func (e *Engine) SetGain(gain float64) {
	if e == nil {
		return
	}
	e.sfxGain = clampF(gain, 0, 1)
}

func (e *Engine) PlayGunshot(kind wanted.PursuerKind) {
	if e == nil || !e.isReady() {
		return
	}
	if atomic.LoadInt32(&e.activeShots) >= 4 {
		return
	}
	atomic.AddInt32(&e.activeShots, 1)
	samples := genGunshot(kind)
	go func() {
		defer atomic.AddInt32(&e.activeShots, -1)
		e.playBuf(samples, 1.0)
	}()
}

func (e *Engine) PlaySiren() {
	if e == nil || !e.isReady() {
		return
	}
	if atomic.LoadInt32(&e.activeSirens) >= 3 {
		return
	}
	atomic.AddInt32(&e.activeSirens, 1)
	samples := genSiren()
	go func() {
		defer atomic.AddInt32(&e.activeSirens, -1)
		e.playBuf(samples, 0.8)
	}()
}

func (e *Engine) PlayPickup() {
	if e == nil || !e.isReady() {
		return
	}
	samples := genPickup()
	go e.playBuf(samples, 1.0)
}

func (e *Engine) PlayCrash(intensity float64) {
	if e == nil || !e.isReady() {
		return
	}
	samples := genCrash(clampF(intensity, 0, 1))
	go e.playBuf(samples, 1.0)
}

func (e *Engine) PlayAnimalese(text string, basePitch, modifier float64) {
	if e == nil || !e.isReady() {
		return
	}
	samples := genAnimalese(text, basePitch, modifier)
	go e.playBuf(samples, 0.7)
}

func (e *Engine) isReady() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// playBuf drives one oto player to completion and releases it.
func (e *Engine) playBuf(samples []byte, gain float64) {
	if len(samples) == 0 {
		return
	}
	player := e.ctx.NewPlayer(&soundReader{data: samples})
	player.SetVolume(e.sfxGain * clampF(gain, 0, 1))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	player.Close()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
