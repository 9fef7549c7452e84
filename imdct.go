package celtfft

import "github.com/thesyncim/celtfft/kiss"

// Scratch holds the working buffers for one inverse transform so the
// steady-state decode path allocates nothing. A Scratch must not be shared
// between concurrent calls; use one per channel or frame worker.
type Scratch struct {
	fftIn  []complex64
	fftTmp []kiss.Cpx
}

func ensureComplex64Slice(buf *[]complex64, n int) []complex64 {
	if n < 0 {
		n = 0
	}
	if cap(*buf) < n {
		*buf = make([]complex64, n)
	} else {
		*buf = (*buf)[:n]
	}
	return *buf
}

func ensureCpxSlice(buf *[]kiss.Cpx, n int) []kiss.Cpx {
	if n < 0 {
		n = 0
	}
	if cap(*buf) < n {
		*buf = make([]kiss.Cpx, n)
	} else {
		*buf = (*buf)[:n]
	}
	return *buf
}

// Inverse computes the inverse MDCT of spectrum into dst[:n2], where
// n2 = len(spectrum). dst receives the raw windowing-ready samples; no
// overlap-add is applied. The pipeline is prerotation, half-size FFT,
// postrotation, all in single precision past the prerotation boundary.
//
// scratch may be nil, at the cost of per-call allocation.
func Inverse(dst []float32, spectrum []float64, scratch *Scratch) {
	n2 := len(spectrum)
	if n2 == 0 {
		return
	}
	n := n2 * 2
	n4 := n2 / 2
	_ = dst[n2-1] // fail fast on a caller contract violation

	trig := TrigTable(n)

	var fftIn []complex64
	var fftTmp []kiss.Cpx
	if scratch == nil {
		fftIn = make([]complex64, n4)
		fftTmp = make([]kiss.Cpx, n4)
	} else {
		fftIn = ensureComplex64Slice(&scratch.fftIn, n4)
		fftTmp = ensureCpxSlice(&scratch.fftTmp, n4)
	}

	PreRotate(fftIn, spectrum, trig, n2, n4)

	p := kiss.PlanFor(n4)
	p.TransformInterleaved(dst[:n2], fftIn, fftTmp)

	PostRotate(dst, trig, n2, n4)
}

// InverseWindowed runs Inverse and applies the TDAC overlap blend against
// the previous frame's overlap region. dst must hold n2+overlap samples:
// prevOverlap is copied to dst[:overlap], the IMDCT output lands at
// dst[overlap/2:overlap/2+n2], and the mirror blend rewrites dst[:overlap].
// The tail dst[n2:n2+overlap] becomes the overlap input for the next frame.
func InverseWindowed(dst []float32, spectrum []float64, prevOverlap []float32, overlap int, scratch *Scratch) {
	n2 := len(spectrum)
	if n2 == 0 {
		return
	}
	if overlap < 0 {
		overlap = 0
	}
	_ = dst[n2+overlap-1] // fail fast on a caller contract violation

	if overlap > 0 {
		copyLen := min(len(prevOverlap), overlap)
		copy(dst[:copyLen], prevOverlap[:copyLen])
		if copyLen < overlap {
			clear(dst[copyLen:overlap])
		}
	}

	start := overlap / 2
	Inverse(dst[start:start+n2], spectrum, scratch)

	if overlap > 0 {
		window := WindowTable(overlap)
		xp1 := overlap - 1
		yp1 := 0
		wp1 := 0
		wp2 := overlap - 1
		for i := 0; i < overlap/2; i++ {
			x1 := dst[xp1]
			x2 := dst[yp1]
			dst[yp1] = x2*window[wp2] - x1*window[wp1]
			dst[xp1] = x2*window[wp1] + x1*window[wp2]
			yp1++
			xp1--
			wp1++
			wp2--
		}
	}
}
