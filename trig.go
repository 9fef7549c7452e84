package celtfft

import (
	"math"
	"sync"
)

var (
	trigMu    sync.Mutex
	trigCache = map[int][]float32{}
)

// TrigTable returns the rotation table for MDCT size n (the full transform
// length, twice the spectral length n2). Entries are
//
//	trig[i] = cos(2*pi*(i+0.125)/n)   for i in [0, n/2)
//
// matching the libopus float build. The table is built once per size and
// shared read-only across frames; callers must not mutate it.
func TrigTable(n int) []float32 {
	trigMu.Lock()
	defer trigMu.Unlock()

	if trig, ok := trigCache[n]; ok {
		return trig
	}

	n2 := n / 2
	trig := make([]float32, n2)
	for i := 0; i < n2; i++ {
		angle := 2.0 * math.Pi * (float64(i) + 0.125) / float64(n)
		trig[i] = float32(math.Cos(angle))
	}

	trigCache[n] = trig
	return trig
}
