package kiss

import (
	"math"
	"sync"
)

// Plan holds the precomputed tables for one FFT size: the radix
// factorization, the digit-reversal permutation, the twiddle table and the
// per-stage strides. A Plan is immutable after construction and safe for
// concurrent use.
type Plan struct {
	nfft    int
	factors []int
	bitrev  []int
	w       []Cpx
	fstride []int
}

var (
	planCache   = map[int]*Plan{}
	planCacheMu sync.Mutex
)

// PlanFor returns the cached plan for nfft, building it on first use.
// For sizes with a prime factor above 5 the plan carries no tables and the
// transform falls back to a direct DFT.
func PlanFor(nfft int) *Plan {
	planCacheMu.Lock()
	defer planCacheMu.Unlock()
	if p, ok := planCache[nfft]; ok {
		return p
	}
	p := newPlan(nfft)
	planCache[nfft] = p
	return p
}

func newPlan(nfft int) *Plan {
	factors, ok := factor(nfft)
	if !ok {
		return &Plan{nfft: nfft}
	}
	bitrev := make([]int, nfft)
	computeBitrevTable(0, bitrev, 0, 1, 1, factors)
	w := computeTwiddles(nfft)

	// Pre-computed fstride per stage keeps the stage driver allocation-free.
	maxFactors := len(factors) / 2
	fstride := make([]int, maxFactors+1)
	fstride[0] = 1
	for i := 0; i < maxFactors; i++ {
		fstride[i+1] = fstride[i] * factors[2*i]
	}

	return &Plan{nfft: nfft, factors: factors, bitrev: bitrev, w: w, fstride: fstride}
}

// Size returns the transform length the plan was built for.
func (p *Plan) Size() int { return p.nfft }

// Mixed reports whether the plan has a mixed-radix decomposition; when
// false, Transform uses the direct DFT.
func (p *Plan) Mixed() bool { return len(p.bitrev) == p.nfft && p.nfft > 0 }

func computeTwiddles(nfft int) []Cpx {
	w := make([]Cpx, nfft)
	const pi = 3.14159265358979323846264338327
	for i := 0; i < nfft; i++ {
		phase := (-2.0 * pi / float64(nfft)) * float64(i)
		w[i].r = float32(math.Cos(phase))
		w[i].i = float32(math.Sin(phase))
	}
	return w
}
