package voice

import (
	"context"

	"clinivoice-be/internal/entity"
	"clinivoice-be/internal/pkg/logger"
)

// Utterance is the combined result for one audio submission.
type Utterance struct {
	Text       string
	Speaker    entity.Speaker
	Confidence float64
	// NoSpeech is set when the recognizer produced no usable text; the
	// caller must not append a message in that case.
	NoSpeech bool
}

// Processor orchestrates transcription and speaker attribution for one
// utterance. Both legs run on every submission; their confidences are
// averaged into the combined score.
type Processor struct {
	transcriber Transcriber
	decoder     Decoder
	extractor   *Extractor
	classifier  SpeakerClassifier
	logger      logger.ILogger
}

func NewProcessor(
	transcriber Transcriber,
	decoder Decoder,
	extractor *Extractor,
	classifier SpeakerClassifier,
	log logger.ILogger,
) *Processor {
	return &Processor{
		transcriber: transcriber,
		decoder:     decoder,
		extractor:   extractor,
		classifier:  classifier,
		logger:      log,
	}
}

func (p *Processor) Process(ctx context.Context, audio []byte) Utterance {
	text, transcriptionConf := p.transcriber.Transcribe(ctx, audio)

	features := p.extractFeatures(audio)
	speaker, speakerConf := p.classifier.Classify(features)

	if text == "" {
		return Utterance{Speaker: speaker, NoSpeech: true}
	}

	return Utterance{
		Text:       text,
		Speaker:    speaker,
		Confidence: (transcriptionConf + speakerConf) / 2,
	}
}

// extractFeatures absorbs decode failures into the zero vector so the
// classifier always has something to score.
func (p *Processor) extractFeatures(audio []byte) FeatureVector {
	samples, sampleRate, err := p.decoder.Decode(audio)
	if err != nil {
		p.logger.Warn("Processor", "Audio decode failed, using zero feature vector", map[string]interface{}{
			"error": err.Error(),
		})
		return FeatureVector{}
	}
	return p.extractor.Extract(samples, sampleRate)
}
