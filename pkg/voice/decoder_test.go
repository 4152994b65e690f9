package voice

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func encodeTestWav(t *testing.T, samples []int, sampleRate int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "utterance.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestWavDecoderRoundTrip(t *testing.T) {
	const sampleRate = 16000
	ints := make([]int, sampleRate/10)
	for i := range ints {
		ints[i] = int(10000 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}

	data := encodeTestWav(t, ints, sampleRate)

	samples, gotRate, err := NewWavDecoder().Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if gotRate != sampleRate {
		t.Errorf("sample rate = %d, want %d", gotRate, sampleRate)
	}
	if len(samples) != len(ints) {
		t.Errorf("sample count = %d, want %d", len(samples), len(ints))
	}
	for _, s := range samples {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("sample %v outside [-1, 1]", s)
		}
	}
}

func TestWavDecoderRejectsGarbage(t *testing.T) {
	if _, _, err := NewWavDecoder().Decode([]byte("definitely not a wav file")); err == nil {
		t.Error("expected error for non-wav input")
	}
	if _, _, err := NewWavDecoder().Decode(nil); err == nil {
		t.Error("expected error for empty input")
	}
}
