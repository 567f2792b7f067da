package main

import "testing"

// recordingSink captures every cue and ambient switch for assertions.
type recordingSink struct {
	cues  []Cue
	tiers []AmbientTier
	vol   float64
}

func (r *recordingSink) Play(c Cue)               { r.cues = append(r.cues, c) }
func (r *recordingSink) SetAmbient(t AmbientTier) { r.tiers = append(r.tiers, t) }
func (r *recordingSink) SetVolume(v float64)      { r.vol = clamp(v, 0, 1) }
func (r *recordingSink) Volume() float64          { return r.vol }

func TestModeChangesSwitchAmbientTier(t *testing.T) {
	rec := &recordingSink{}
	g := &Game{mode: ModeWelcome, audio: rec}

	g.setMode(ModePlaying)
	g.setMode(ModePlaying) // same mode, no re-switch
	g.setMode(ModeGameOver)
	g.setMode(ModeWelcome)

	want := []AmbientTier{AmbientGameplay, AmbientNone, AmbientMenu}
	if len(rec.tiers) != len(want) {
		t.Fatalf("ambient switches %v, want %v", rec.tiers, want)
	}
	for i := range want {
		if rec.tiers[i] != want[i] {
			t.Fatalf("ambient switches %v, want %v", rec.tiers, want)
		}
	}
}

func TestAmbientForMapping(t *testing.T) {
	cases := []struct {
		mode GameMode
		want AmbientTier
	}{
		{ModeWelcome, AmbientMenu},
		{ModePlaying, AmbientGameplay},
		{ModeLevelComplete, AmbientNone},
		{ModeGameOver, AmbientNone},
		{ModeVictory, AmbientNone},
	}
	for _, tc := range cases {
		if got := ambientFor(tc.mode); got != tc.want {
			t.Errorf("mode %v: tier %v, want %v", tc.mode, got, tc.want)
		}
	}
}

func TestAmbientLoopStreamsUntilStopped(t *testing.T) {
	loop := newAmbientLoop(AmbientGameplay)
	buf := make([][2]float64, 512)

	n, ok := loop.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("first read n=%d ok=%v, want a full buffer", n, ok)
	}
	nonzero := false
	for _, s := range buf {
		if s[0] != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Fatal("drone produced only silence")
	}

	loop.Stop()
	if n, ok := loop.Stream(buf); n != 0 || ok {
		t.Fatalf("stopped loop returned n=%d ok=%v, want drained", n, ok)
	}
}

func TestAmbientTiersSoundDifferent(t *testing.T) {
	menu := newAmbientLoop(AmbientMenu)
	game := newAmbientLoop(AmbientGameplay)
	if menu.freqA == game.freqA && menu.freqB == game.freqB {
		t.Fatal("menu and gameplay drones share the same voicing")
	}
}

func TestNopSinkTracksAmbient(t *testing.T) {
	n := &NopSink{}
	n.SetAmbient(AmbientGameplay)
	if n.tier != AmbientGameplay {
		t.Fatalf("tier %v, want gameplay", n.tier)
	}
}

func TestStartSessionRejectsBadIndex(t *testing.T) {
	g := &Game{levels: make([]*Level, 3), audio: &NopSink{}}
	if err := g.startSession(3, 3); err == nil {
		t.Fatal("out-of-range level index accepted")
	}
	if err := g.startSession(-1, 3); err == nil {
		t.Fatal("negative level index accepted")
	}
}
