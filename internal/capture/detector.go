// Package capture supplies detected fundamental frequencies to the session
// engine. The real detector listens on a portaudio input stream and runs an
// FFT-based autocorrelation; the scripted source replays a fixed sequence.
package capture

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/andrepxx/go-dsp-guitar/circular"
	"github.com/andrepxx/go-dsp-guitar/fft"
	"github.com/gordonklaus/portaudio"
)

const (
	// captureWindow is the number of samples kept for analysis.
	captureWindow = 16384

	// Guitar band: below low E (82.41 Hz) up to well above high E (329.63 Hz).
	minDetectableFreq = 50.0
	maxDetectableFreq = 400.0

	// analyzeEvery is how often the background analysis recomputes.
	analyzeEvery = 100 * time.Millisecond
)

// Detector detects the fundamental frequency of a live microphone signal.
// DetectedFrequency never blocks: it returns the most recent analysis, or 0
// when the signal is below the amplitude gate.
type Detector struct {
	deviceName   string
	minAmplitude float64

	stream *portaudio.Stream
	cancel context.CancelFunc

	mu         sync.Mutex
	buffer     circular.Buffer
	sampleRate float64

	analyzeMu      sync.Mutex
	transform      fft.FourierTransform
	bufCorrelation []float64
	bufFFT         []complex128

	resultMu sync.RWMutex
	latestHz float64
}

// NewDetector creates a detector. deviceName selects an input device by
// substring; empty picks the default input. minAmplitude gates out noise.
func NewDetector(deviceName string, minAmplitude float64) *Detector {
	return &Detector{
		deviceName:   deviceName,
		minAmplitude: minAmplitude,
		buffer:       circular.CreateBuffer(captureWindow),
		transform:    fft.CreateFourierTransform(),
	}
}

// Start opens the input stream and launches the background analysis.
// The caller must have called portaudio.Initialize.
func (d *Detector) Start() error {
	input, err := d.findInputDevice()
	if err != nil {
		return err
	}

	params := portaudio.HighLatencyParameters(input, nil)
	params.Input.Channels = 1
	d.sampleRate = params.SampleRate

	stream, err := portaudio.OpenStream(params, d.processAudio)
	if err != nil {
		return fmt.Errorf("failed to open input stream: %w", err)
	}
	d.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start input stream: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	go d.run(ctx)
	return nil
}

// Close stops the analysis goroutine and releases the stream.
func (d *Detector) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	if d.stream == nil {
		return nil
	}
	d.stream.Stop()
	return d.stream.Close()
}

// DetectedFrequency returns the latest detected fundamental in Hz, 0 when
// there is no usable signal.
func (d *Detector) DetectedFrequency() float64 {
	d.resultMu.RLock()
	defer d.resultMu.RUnlock()
	return d.latestHz
}

func (d *Detector) findInputDevice() (*portaudio.DeviceInfo, error) {
	if d.deviceName == "" {
		input, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("no default input device: %w", err)
		}
		return input, nil
	}

	host, err := portaudio.DefaultHostApi()
	if err != nil {
		return nil, fmt.Errorf("failed to query host api: %w", err)
	}
	for _, device := range host.Devices {
		if device.MaxInputChannels > 0 && strings.Contains(device.Name, d.deviceName) {
			return device, nil
		}
	}
	return nil, fmt.Errorf("no input device matching %q", d.deviceName)
}

// processAudio is the portaudio callback; it only buffers samples.
func (d *Detector) processAudio(in []float32) {
	d.mu.Lock()
	for _, s := range in {
		d.buffer.Enqueue(float64(s))
	}
	d.mu.Unlock()
}

func (d *Detector) run(ctx context.Context) {
	ticker := time.NewTicker(analyzeEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			freq := d.analyze()
			d.resultMu.Lock()
			d.latestHz = freq
			d.resultMu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// analyze estimates the fundamental by locating the autocorrelation peak
// inside the guitar band, with parabolic sub-sample interpolation.
func (d *Detector) analyze() float64 {
	d.analyzeMu.Lock()
	defer d.analyzeMu.Unlock()

	n := d.buffer.Length()
	fftSize, _ := fft.NextPowerOfTwo(uint64(2 * n))

	if uint64(len(d.bufCorrelation)) != fftSize {
		d.bufCorrelation = make([]float64, fftSize)
	}
	if uint64(len(d.bufFFT)) != fftSize {
		d.bufFFT = make([]complex128, fftSize)
	}

	signal := d.bufCorrelation[0:n]
	d.mu.Lock()
	sampleRate := d.sampleRate
	err := d.buffer.Retrieve(signal)
	d.mu.Unlock()
	if err != nil || sampleRate <= 0 {
		return 0
	}

	// Amplitude gate: ignore silence and room noise.
	peak := 0.0
	for _, s := range signal {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak < d.minAmplitude {
		return 0
	}

	fft.ZeroFloat(d.bufCorrelation[n:fftSize])
	if err := d.transform.RealFourier(d.bufCorrelation, d.bufFFT, fft.SCALING_DEFAULT); err != nil {
		return 0
	}
	for i, elem := range d.bufFFT {
		d.bufFFT[i] = complex(real(elem)*real(elem)+imag(elem)*imag(elem), 0)
	}
	if err := d.transform.RealInverseFourier(d.bufFFT, d.bufCorrelation, fft.SCALING_DEFAULT); err != nil {
		return 0
	}

	// Search lags corresponding to the guitar band.
	lowIdx := int(sampleRate/maxDetectableFreq + 0.5)
	highIdx := int(sampleRate/minDetectableFreq + 0.5)
	if lowIdx < 1 {
		lowIdx = 1
	}
	if highIdx >= n {
		highIdx = n - 1
	}
	if lowIdx >= highIdx {
		return 0
	}

	maxVal := math.Inf(-1)
	maxIdx := lowIdx
	for i := lowIdx; i <= highIdx; i++ {
		if d.bufCorrelation[i] > maxVal {
			maxVal = d.bufCorrelation[i]
			maxIdx = i
		}
	}

	left := d.bufCorrelation[maxIdx-1]
	right := d.bufCorrelation[maxIdx+1]
	shift := 0.5 * (right - left) / (2*maxVal - (right + left))
	if shift < -0.5 {
		shift = -0.5
	} else if shift > 0.5 {
		shift = 0.5
	}

	freq := sampleRate / (float64(maxIdx) + shift)
	if math.IsNaN(freq) || math.IsInf(freq, 0) || freq <= 0 {
		return 0
	}
	return freq
}
