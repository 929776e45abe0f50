// Package ringtone synthesizes the audible ring cues played while a call
// attempt is pending. It is a pure signal generator with no coordination
// concerns; callers loop the generated cadence until the session leaves the
// ringing state.
package ringtone

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

const (
	// DefaultSampleRate keeps generated cues small while staying pleasant.
	DefaultSampleRate = 8000

	// Classic ringback is a 440+480 Hz dual tone, 2 s on / 4 s off.
	toneLowHz  = 440.0
	toneHighHz = 480.0

	amplitude = 0.35
)

// Cadence describes one on/off cycle of a ring cue.
type Cadence struct {
	On  time.Duration
	Off time.Duration
}

// Ringback is the cadence heard by the caller while the callee rings.
func Ringback() Cadence { return Cadence{On: 2 * time.Second, Off: 4 * time.Second} }

// Ringtone is the shorter cadence played on the callee side.
func Ringtone() Cadence { return Cadence{On: time.Second, Off: 2 * time.Second} }

// Generate renders one full cadence cycle as 16-bit mono PCM.
func Generate(sampleRate int, c Cadence) []int16 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	onSamples := int(float64(sampleRate) * c.On.Seconds())
	offSamples := int(float64(sampleRate) * c.Off.Seconds())

	out := make([]int16, onSamples+offSamples)
	for i := 0; i < onSamples; i++ {
		t := float64(i) / float64(sampleRate)
		v := amplitude * (math.Sin(2*math.Pi*toneLowHz*t) + math.Sin(2*math.Pi*toneHighHz*t)) / 2
		out[i] = int16(v * math.MaxInt16)
	}
	// Remaining samples are silence.
	return out
}

// WAV wraps one cadence cycle in a RIFF/WAVE container so browsers can loop
// it directly from an <audio> element.
func WAV(sampleRate int, c Cadence) []byte {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	pcm := Generate(sampleRate, c)

	var data bytes.Buffer
	dataLen := len(pcm) * 2
	byteRate := sampleRate * 2

	data.WriteString("RIFF")
	binary.Write(&data, binary.LittleEndian, uint32(36+dataLen))
	data.WriteString("WAVE")
	data.WriteString("fmt ")
	binary.Write(&data, binary.LittleEndian, uint32(16))
	binary.Write(&data, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&data, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&data, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&data, binary.LittleEndian, uint32(byteRate))
	binary.Write(&data, binary.LittleEndian, uint16(2))  // block align
	binary.Write(&data, binary.LittleEndian, uint16(16)) // bits per sample
	data.WriteString("data")
	binary.Write(&data, binary.LittleEndian, uint32(dataLen))
	for _, s := range pcm {
		binary.Write(&data, binary.LittleEndian, s)
	}
	return data.Bytes()
}
