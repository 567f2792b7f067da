package main

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// -- audio

type Cue int

const (
	CueStep Cue = iota
	CueKey
	CueCheckpoint
	CueTrap
	CueExtraLife
	CueExitBlocked
	CueExitUnlocked
	CueLevelComplete
	CueGameOver
	CueVictory
)

// AmbientTier selects the looped background layer. Exactly one tier plays
// at a time; AmbientNone silences the layer without touching event cues.
type AmbientTier int

const (
	AmbientNone AmbientTier = iota
	AmbientMenu
	AmbientGameplay
)

// CueSink receives fire-and-forget gameplay cues plus the current ambient
// tier. The simulation never blocks on audio and never cares whether a
// device exists.
type CueSink interface {
	Play(Cue)
	SetAmbient(t AmbientTier)
	SetVolume(v float64)
	Volume() float64
}

// NopSink swallows cues. Used when audio is disabled and in tests.
type NopSink struct {
	vol  float64
	tier AmbientTier
}

func (n *NopSink) Play(Cue)                 {}
func (n *NopSink) SetAmbient(t AmbientTier) { n.tier = t }
func (n *NopSink) SetVolume(v float64)      { n.vol = clamp(v, 0, 1) }
func (n *NopSink) Volume() float64          { return n.vol }

const sampleRate = beep.SampleRate(44100)

// BeepSink synthesizes short tone sequences per cue and plays them through
// the speaker mixer. Everything is generated; no audio assets ship with the
// game.
type BeepSink struct {
	mu         sync.Mutex
	vol        float64
	tier       AmbientTier
	ambient    *ambientLoop
	ambientVol *effects.Volume
}

// NewBeepSink initializes the speaker once. On failure it logs and falls
// back to a NopSink so a headless machine still runs the game.
func NewBeepSink(volume float64) CueSink {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio disabled: %v", err)
		return &NopSink{vol: volume}
	}
	return &BeepSink{vol: clamp(volume, 0, 1)}
}

func (b *BeepSink) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vol = clamp(v, 0, 1)
	if b.ambientVol != nil {
		speaker.Lock()
		b.ambientVol.Volume = ambientGain(b.vol)
		b.ambientVol.Silent = b.vol <= 0
		speaker.Unlock()
	}
}

// SetAmbient swaps the looped background layer. The old loop stops itself
// out of the mixer on its next read; the new one plays until replaced.
func (b *BeepSink) SetAmbient(t AmbientTier) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t == b.tier {
		return
	}
	b.tier = t
	if b.ambient != nil {
		b.ambient.Stop()
		b.ambient, b.ambientVol = nil, nil
	}
	if t == AmbientNone {
		return
	}
	loop := newAmbientLoop(t)
	vol := &effects.Volume{
		Streamer: loop,
		Base:     2,
		Volume:   ambientGain(b.vol),
		Silent:   b.vol <= 0,
	}
	b.ambient, b.ambientVol = loop, vol
	speaker.Play(vol)
}

// ambientGain sits the drone a few dB under the event cues.
func ambientGain(vol float64) float64 {
	return (vol-1)*6 - 3
}

func (b *BeepSink) Volume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.vol
}

func (b *BeepSink) Play(c Cue) {
	vol := b.Volume()
	if vol <= 0 {
		return
	}
	seq := cueStreamer(c)
	speaker.Play(&effects.Volume{
		Streamer: seq,
		Base:     2,
		Volume:   (vol - 1) * 6, // 0 dB at full volume, fading toward silence
	})
}

type note struct {
	freq float64
	dur  time.Duration
}

func cueStreamer(c Cue) beep.Streamer {
	var notes []note
	switch c {
	case CueStep:
		notes = []note{{95, 50 * time.Millisecond}}
	case CueKey:
		notes = []note{{880, 90 * time.Millisecond}, {1320, 140 * time.Millisecond}}
	case CueCheckpoint:
		notes = []note{{660, 100 * time.Millisecond}, {880, 160 * time.Millisecond}}
	case CueTrap:
		notes = []note{{320, 80 * time.Millisecond}, {160, 200 * time.Millisecond}}
	case CueExtraLife:
		notes = []note{{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 160 * time.Millisecond}}
	case CueExitBlocked:
		notes = []note{{220, 120 * time.Millisecond}, {185, 180 * time.Millisecond}}
	case CueExitUnlocked:
		notes = []note{{440, 100 * time.Millisecond}, {554, 100 * time.Millisecond}, {659, 200 * time.Millisecond}}
	case CueLevelComplete:
		notes = []note{{523, 110 * time.Millisecond}, {659, 110 * time.Millisecond}, {784, 110 * time.Millisecond}, {1046, 240 * time.Millisecond}}
	case CueGameOver:
		notes = []note{{330, 160 * time.Millisecond}, {277, 160 * time.Millisecond}, {220, 320 * time.Millisecond}}
	case CueVictory:
		notes = []note{{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 120 * time.Millisecond}, {1046, 120 * time.Millisecond}, {1318, 320 * time.Millisecond}}
	}

	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newTone(n.freq, n.dur)
	}
	return beep.Seq(parts...)
}

// tone is a sine burst with a linear decay envelope, enough for distinct
// arcade-style blips without shipping samples.
type tone struct {
	freq       float64
	pos, total int
}

func newTone(freq float64, dur time.Duration) beep.Streamer {
	return &tone{freq: freq, total: sampleRate.N(dur)}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		env := 1 - float64(t.pos)/float64(t.total)
		v := 0.22 * env * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(sampleRate))
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

// ambientLoop is an endless background drone: two detuned sines under a
// slow amplitude swell. The menu tier hums a warmer pair, gameplay a lower
// unsettled one. Stop drops it from the mixer on its next read.
type ambientLoop struct {
	mu      sync.Mutex
	stopped bool
	pos     int
	freqA   float64
	freqB   float64
	lfo     float64
}

func newAmbientLoop(t AmbientTier) *ambientLoop {
	if t == AmbientMenu {
		return &ambientLoop{freqA: 110, freqB: 164.8, lfo: 0.08}
	}
	return &ambientLoop{freqA: 55, freqB: 82.4, lfo: 0.2}
}

func (a *ambientLoop) Stop() {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
}

func (a *ambientLoop) Stream(samples [][2]float64) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return 0, false
	}
	for i := range samples {
		at := float64(a.pos) / float64(sampleRate)
		swell := 0.6 + 0.4*math.Sin(2*math.Pi*a.lfo*at)
		v := 0.06 * swell * (math.Sin(2*math.Pi*a.freqA*at) + 0.6*math.Sin(2*math.Pi*a.freqB*at))
		samples[i][0] = v
		samples[i][1] = v
		a.pos++
	}
	return len(samples), true
}

func (a *ambientLoop) Err() error { return nil }
