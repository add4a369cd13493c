package rep

import "gonum.org/v1/gonum/stat"

// SmoothingWindow is the number of recent angle samples averaged to
// suppress single-frame detector jitter.
const SmoothingWindow = 5

// Smoother maintains a bounded rolling window over raw angle samples and
// emits their moving average. The first sample passes through unchanged,
// so there is no artificial delay before a value is produced, and output
// never lags the raw signal by more than the window length.
type Smoother struct {
	window []float64
	size   int
}

// NewSmoother creates a Smoother with the given window size.
// Sizes less than 1 fall back to SmoothingWindow.
func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = SmoothingWindow
	}
	return &Smoother{
		window: make([]float64, 0, size),
		size:   size,
	}
}

// Add appends a sample, evicting the oldest once the window is full, and
// returns the arithmetic mean of the current window contents.
func (s *Smoother) Add(sample float64) float64 {
	if len(s.window) >= s.size {
		// Shift window left by 1, removing the oldest sample
		copy(s.window, s.window[1:])
		s.window = s.window[:s.size-1]
	}
	s.window = append(s.window, sample)

	return stat.Mean(s.window, nil)
}

// Len returns the number of buffered samples.
func (s *Smoother) Len() int {
	return len(s.window)
}

// Reset clears the window.
func (s *Smoother) Reset() {
	s.window = s.window[:0]
}
