package celtfft

import (
	"math"
	"sync"
)

// Vorbis window for the TDAC overlap blend:
//
//	w[i] = sin(0.5*pi * sin(0.5*pi*(i+0.5)/overlap)^2)
//
// defined over the overlap region. Power-complementary
// (w[i]^2 + w[overlap-1-i]^2 = 1), which preserves energy across the fold.
// Matches libopus celt/modes.c.

var (
	windowMu    sync.Mutex
	windowCache = map[int][]float32{}
)

// VorbisWindow computes the window value at position i for the given
// overlap length.
func VorbisWindow(i, overlap int) float64 {
	if overlap <= 0 {
		return 0
	}
	x := float64(i) + 0.5
	s := math.Sin(0.5 * math.Pi * x / float64(overlap))
	return math.Sin(0.5 * math.Pi * s * s)
}

// WindowTable returns the cached float32 window for the given overlap,
// shared read-only like the trig tables.
func WindowTable(overlap int) []float32 {
	windowMu.Lock()
	defer windowMu.Unlock()

	if w, ok := windowCache[overlap]; ok {
		return w
	}
	w := make([]float32, overlap)
	for i := 0; i < overlap; i++ {
		w[i] = float32(VorbisWindow(i, overlap))
	}
	windowCache[overlap] = w
	return w
}
