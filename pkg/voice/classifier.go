package voice

import (
	"clinivoice-be/internal/entity"
)

// SpeakerClassifier maps a feature vector to a speaker label with
// confidence. The two-value contract is the stable part: a trained model
// can replace the rule table without touching any caller.
type SpeakerClassifier interface {
	Classify(features FeatureVector) (entity.Speaker, float64)
}

// RuleBasedClassifier is a deterministic placeholder heuristic. It carries
// no learned state and caps confidence at 0.8.
type RuleBasedClassifier struct{}

func NewRuleBasedClassifier() *RuleBasedClassifier {
	return &RuleBasedClassifier{}
}

const maxSpeakerConfidence = 0.8

func (c *RuleBasedClassifier) Classify(features FeatureVector) (entity.Speaker, float64) {
	var doctorScore, patientScore float64

	if features.Energy > 0.02 {
		doctorScore += 0.3
	} else {
		patientScore += 0.3
	}

	if features.SpectralCentroid > 2000 {
		doctorScore += 0.2
	} else {
		patientScore += 0.2
	}

	// Fixed prior toward the patient, who usually talks more. Ties
	// therefore always resolve to Patient.
	patientScore += 0.1

	if doctorScore > patientScore {
		return entity.SpeakerDoctor, min(maxSpeakerConfidence, doctorScore)
	}
	return entity.SpeakerPatient, min(maxSpeakerConfidence, patientScore)
}
