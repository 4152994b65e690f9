package voice

import (
	"testing"

	"clinivoice-be/internal/entity"
)

func TestRuleBasedClassifier(t *testing.T) {
	classifier := NewRuleBasedClassifier()

	tests := []struct {
		name           string
		features       FeatureVector
		wantSpeaker    entity.Speaker
		wantConfidence float64
	}{
		{
			name:           "high energy and bright spectrum favors doctor",
			features:       FeatureVector{Energy: 0.05, SpectralCentroid: 2500},
			wantSpeaker:    entity.SpeakerDoctor,
			wantConfidence: 0.5,
		},
		{
			name:           "low energy and dull spectrum favors patient",
			features:       FeatureVector{Energy: 0.01, SpectralCentroid: 1500},
			wantSpeaker:    entity.SpeakerPatient,
			wantConfidence: 0.6,
		},
		{
			name:           "split evidence ties and resolves to patient",
			features:       FeatureVector{Energy: 0.05, SpectralCentroid: 1500},
			wantSpeaker:    entity.SpeakerPatient,
			wantConfidence: 0.3,
		},
		{
			name:           "zero vector from failed extraction still classifies",
			features:       FeatureVector{},
			wantSpeaker:    entity.SpeakerPatient,
			wantConfidence: 0.6,
		},
		{
			name:           "boundary energy counts as low",
			features:       FeatureVector{Energy: 0.02, SpectralCentroid: 2500},
			wantSpeaker:    entity.SpeakerPatient,
			wantConfidence: 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speaker, confidence := classifier.Classify(tt.features)

			if speaker != tt.wantSpeaker {
				t.Errorf("speaker = %v, want %v", speaker, tt.wantSpeaker)
			}
			if confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", confidence, tt.wantConfidence)
			}
		})
	}
}

func TestRuleBasedClassifierConfidenceCap(t *testing.T) {
	classifier := NewRuleBasedClassifier()

	// Sweep a grid of inputs; no combination may exceed the 0.8 cap.
	for _, energy := range []float64{0, 0.01, 0.02, 0.05, 1, 100} {
		for _, centroid := range []float64{0, 1000, 2000, 2500, 10000} {
			_, confidence := classifier.Classify(FeatureVector{Energy: energy, SpectralCentroid: centroid})
			if confidence > 0.8 {
				t.Errorf("confidence %v exceeds cap for energy=%v centroid=%v", confidence, energy, centroid)
			}
		}
	}
}
