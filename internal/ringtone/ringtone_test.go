package ringtone

import (
	"testing"
	"time"
)

func TestGenerate_CadenceLengths(t *testing.T) {
	c := Cadence{On: time.Second, Off: time.Second}
	pcm := Generate(8000, c)
	if len(pcm) != 16000 {
		t.Fatalf("expected 16000 samples, got %d", len(pcm))
	}
}

func TestGenerate_OffSegmentIsSilent(t *testing.T) {
	c := Ringback()
	pcm := Generate(8000, c)
	onSamples := 8000 * 2
	for i := onSamples; i < len(pcm); i++ {
		if pcm[i] != 0 {
			t.Fatalf("expected silence at sample %d, got %d", i, pcm[i])
		}
	}
}

func TestGenerate_ToneHasEnergyAndBoundedAmplitude(t *testing.T) {
	pcm := Generate(8000, Ringtone())
	var peak int16
	for _, s := range pcm[:8000] {
		if s > peak {
			peak = s
		}
	}
	if peak == 0 {
		t.Fatalf("expected audible tone in on-segment")
	}
	// Dual tone at 0.35 amplitude must never clip.
	if peak > 24000 {
		t.Fatalf("tone too hot: %d", peak)
	}
}

func TestWAV_HeaderShape(t *testing.T) {
	b := WAV(8000, Cadence{On: 100 * time.Millisecond, Off: 0})
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Fatalf("not a RIFF/WAVE container")
	}
	if len(b) != 44+800*2 {
		t.Fatalf("unexpected wav size %d", len(b))
	}
}
