package voice

import (
	"context"
	"errors"
	"testing"

	"clinivoice-be/internal/entity"
)

type stubTranscriber struct {
	text       string
	confidence float64
}

func (s stubTranscriber) Transcribe(ctx context.Context, audio []byte) (string, float64) {
	return s.text, s.confidence
}

type stubDecoder struct {
	samples    []float64
	sampleRate int
	err        error
}

func (s stubDecoder) Decode(data []byte) ([]float64, int, error) {
	return s.samples, s.sampleRate, s.err
}

func newTestProcessor(tr Transcriber, dec Decoder) *Processor {
	return NewProcessor(tr, dec, NewExtractor(), NewRuleBasedClassifier(), nopLogger{})
}

func TestProcessorCombinesConfidences(t *testing.T) {
	p := newTestProcessor(
		stubTranscriber{text: "it hurts when I breathe", confidence: 0.9},
		stubDecoder{samples: sineWave(200, 16000, 16000, 0.5), sampleRate: 16000},
	)

	u := p.Process(context.Background(), []byte("audio"))

	if u.NoSpeech {
		t.Fatal("unexpected no-speech result")
	}
	if u.Text != "it hurts when I breathe" {
		t.Errorf("text = %q", u.Text)
	}
	if u.Speaker != entity.SpeakerDoctor && u.Speaker != entity.SpeakerPatient {
		t.Errorf("speaker = %q", u.Speaker)
	}
	// Combined confidence is the average of the two legs; the speaker leg
	// is capped at 0.8, so the combination stays within (0, 0.875].
	if u.Confidence <= 0 || u.Confidence > (0.9+0.8)/2 {
		t.Errorf("confidence = %v out of range", u.Confidence)
	}
}

func TestProcessorNoSpeech(t *testing.T) {
	p := newTestProcessor(
		stubTranscriber{text: "", confidence: 0},
		stubDecoder{samples: sineWave(200, 16000, 16000, 0.5), sampleRate: 16000},
	)

	u := p.Process(context.Background(), []byte("audio"))

	if !u.NoSpeech {
		t.Fatal("expected no-speech result")
	}
	if u.Text != "" {
		t.Errorf("text = %q, want empty", u.Text)
	}
}

func TestProcessorDecodeFailureStillClassifies(t *testing.T) {
	p := newTestProcessor(
		stubTranscriber{text: "short answer", confidence: 0.7},
		stubDecoder{err: errors.New("corrupt upload")},
	)

	u := p.Process(context.Background(), []byte("audio"))

	if u.NoSpeech {
		t.Fatal("unexpected no-speech result")
	}
	// Zero feature vector -> rule table lands on Patient with 0.6.
	if u.Speaker != entity.SpeakerPatient {
		t.Errorf("speaker = %q, want Patient", u.Speaker)
	}
	want := (0.7 + 0.6) / 2
	if u.Confidence != want {
		t.Errorf("confidence = %v, want %v", u.Confidence, want)
	}
}
