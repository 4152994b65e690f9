package voice

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FeatureVector is the fixed acoustic profile of one utterance. An
// all-zero vector means "extraction failed" and is still valid classifier
// input, not an error.
type FeatureVector struct {
	PitchMean        float64
	SpectralCentroid float64
	Energy           float64
	Tempo            float64
	Duration         float64
}

func (f FeatureVector) IsZero() bool {
	return f.PitchMean == 0 && f.SpectralCentroid == 0 && f.Energy == 0 && f.Tempo == 0 && f.Duration == 0
}

const (
	frameSize = 2048
	hopSize   = 512

	// Pitch search band, roughly the human voice range.
	pitchMinHz = 50.0
	pitchMaxHz = 500.0
)

// Extractor derives a FeatureVector from a decoded waveform.
type Extractor struct {
	fft *fourier.FFT
}

func NewExtractor() *Extractor {
	return &Extractor{fft: fourier.NewFFT(frameSize)}
}

// Extract never fails: degenerate input yields the zero vector.
func (e *Extractor) Extract(samples []float64, sampleRate int) FeatureVector {
	if len(samples) == 0 || sampleRate <= 0 {
		return FeatureVector{}
	}

	frames := frameCount(len(samples))
	if frames == 0 {
		return FeatureVector{}
	}

	var (
		energySum   float64
		centroidSum float64
		pitchSum    float64
		pitchFrames int
		energies    = make([]float64, 0, frames)
	)

	frame := make([]float64, frameSize)
	for i := 0; i < frames; i++ {
		start := i * hopSize
		n := copy(frame, samples[start:min(start+frameSize, len(samples))])
		for j := n; j < frameSize; j++ {
			frame[j] = 0
		}

		rms := rootMeanSquare(frame[:n])
		energySum += rms
		energies = append(energies, rms)

		centroidSum += e.spectralCentroid(frame, sampleRate)

		if pitch := trackPitch(frame[:n], sampleRate); pitch > 0 {
			pitchSum += pitch
			pitchFrames++
		}
	}

	duration := float64(len(samples)) / float64(sampleRate)

	fv := FeatureVector{
		SpectralCentroid: centroidSum / float64(frames),
		Energy:           energySum / float64(frames),
		Tempo:            estimateTempo(energies, duration),
		Duration:         duration,
	}
	if pitchFrames > 0 {
		fv.PitchMean = pitchSum / float64(pitchFrames)
	}
	return fv
}

func frameCount(sampleLen int) int {
	if sampleLen < hopSize {
		if sampleLen > 0 {
			return 1
		}
		return 0
	}
	return 1 + (sampleLen-hopSize)/hopSize
}

func rootMeanSquare(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// spectralCentroid is the magnitude-weighted mean frequency of one frame.
func (e *Extractor) spectralCentroid(frame []float64, sampleRate int) float64 {
	coeffs := e.fft.Coefficients(nil, frame)

	var weighted, total float64
	for i, c := range coeffs {
		mag := math.Hypot(real(c), imag(c))
		freq := e.fft.Freq(i) * float64(sampleRate)
		weighted += freq * mag
		total += mag
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// trackPitch runs a normalized autocorrelation over the voice band and
// returns 0 for frames without a confident periodic peak.
func trackPitch(frame []float64, sampleRate int) float64 {
	minLag := int(float64(sampleRate) / pitchMaxHz)
	maxLag := int(float64(sampleRate) / pitchMinHz)
	if minLag < 1 || maxLag >= len(frame) {
		return 0
	}

	var zeroLag float64
	for _, s := range frame {
		zeroLag += s * s
	}
	if zeroLag == 0 {
		return 0
	}

	bestLag, bestCorr := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for i := 0; i+lag < len(frame); i++ {
			corr += frame[i] * frame[i+lag]
		}
		corr /= zeroLag
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	// Unvoiced frames correlate weakly at every lag.
	if bestLag == 0 || bestCorr < 0.3 {
		return 0
	}
	return float64(sampleRate) / float64(bestLag)
}

// estimateTempo counts energy peaks above an adaptive threshold and scales
// them to beats per minute.
func estimateTempo(energies []float64, duration float64) float64 {
	if len(energies) < 3 || duration <= 0 {
		return 0
	}

	var mean float64
	for _, e := range energies {
		mean += e
	}
	mean /= float64(len(energies))
	if mean == 0 {
		return 0
	}
	threshold := mean * 1.5

	peaks := 0
	for i := 1; i < len(energies)-1; i++ {
		if energies[i] > threshold && energies[i] >= energies[i-1] && energies[i] > energies[i+1] {
			peaks++
		}
	}

	return float64(peaks) / duration * 60.0
}
