package voice

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"
)

// Decoder turns raw uploaded bytes into a mono waveform plus sample rate.
type Decoder interface {
	Decode(data []byte) ([]float64, int, error)
}

// WavDecoder decodes RIFF/WAV uploads. Multi-channel input is mixed down
// to mono by averaging channels.
type WavDecoder struct{}

func NewWavDecoder() *WavDecoder {
	return &WavDecoder{}
}

func (d *WavDecoder) Decode(data []byte) ([]float64, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("read pcm: %w", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("empty pcm buffer")
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	scale := float64(int(1) << (dec.BitDepth - 1))
	if scale <= 0 {
		scale = 1 << 15
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return samples, buf.Format.SampleRate, nil
}
