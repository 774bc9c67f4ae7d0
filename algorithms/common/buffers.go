package common

// FrameCount returns how many full windows of windowSize fit into length
// samples when consecutive windows start hopSize apart. A zero hop yields 0.
func FrameCount(length, windowSize, hopSize int) int {
	if hopSize <= 0 || windowSize <= 0 || length < windowSize {
		return 0
	}
	return (length-windowSize)/hopSize + 1
}

// SlidingWindow hands out read-only views of fixed-size frames over a
// sample buffer. Frames are sub-slices; nothing is copied.
type SlidingWindow struct {
	windowSize int
	hopSize    int
}

// NewSlidingWindow creates a new sliding window
func NewSlidingWindow(windowSize, hopSize int) *SlidingWindow {
	return &SlidingWindow{
		windowSize: windowSize,
		hopSize:    hopSize,
	}
}

// Count returns the number of frames available in samples
func (sw *SlidingWindow) Count(samples []float32) int {
	return FrameCount(len(samples), sw.windowSize, sw.hopSize)
}

// Offset returns the sample index at which frame i starts
func (sw *SlidingWindow) Offset(i int) int {
	return i * sw.hopSize
}

// Frame returns frame i of samples. The caller must keep i < Count(samples).
func (sw *SlidingWindow) Frame(samples []float32, i int) []float32 {
	off := sw.Offset(i)
	return samples[off : off+sw.windowSize : off+sw.windowSize]
}

// GetWindowSize returns the window size
func (sw *SlidingWindow) GetWindowSize() int {
	return sw.windowSize
}

// GetHopSize returns the hop size
func (sw *SlidingWindow) GetHopSize() int {
	return sw.hopSize
}
