package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"clinivoice-be/internal/pkg/logger"
)

// Transcriber converts one audio segment into recognized text plus a
// confidence score. Recognition failures are absorbed: no speech and an
// unreachable recognizer both come back as ("", 0).
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, float64)
}

// RemoteTranscriber talks to a speech recognition service over HTTP by
// posting the segment as a multipart wav upload.
type RemoteTranscriber struct {
	baseURL string
	client  *http.Client
	logger  logger.ILogger
}

func NewRemoteTranscriber(baseURL string, timeout time.Duration, log logger.ILogger) *RemoteTranscriber {
	return &RemoteTranscriber{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

type transcribeResponse struct {
	Text string `json:"text"`
}

func (t *RemoteTranscriber) Transcribe(ctx context.Context, audio []byte) (string, float64) {
	text, err := t.recognize(ctx, audio)
	if err != nil {
		t.logger.Warn("Transcriber", "Recognition failed, treating as no speech", map[string]interface{}{
			"error": err.Error(),
		})
		return "", 0.0
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0.0
	}
	return text, transcriptionConfidence(text)
}

func (t *RemoteTranscriber) recognize(ctx context.Context, audio []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile("file", "utterance.wav")
	if err != nil {
		return "", err
	}
	if _, err = fw.Write(audio); err != nil {
		return "", err
	}
	if err = w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/transcribe", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("recognizer %s: %s", resp.Status, string(msg))
	}

	var out transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("recognizer decode: %w", err)
	}
	return out.Text, nil
}

const maxTranscriptionConfidence = 0.95

// transcriptionConfidence is a saturating function of utterance length,
// not a true acoustic confidence. The exact formula is load-bearing for
// downstream expectations.
func transcriptionConfidence(text string) float64 {
	words := len(strings.Fields(text))
	return min(maxTranscriptionConfidence, float64(words)/10.0+0.5)
}
