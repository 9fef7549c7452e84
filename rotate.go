package celtfft

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// preRotateImpl is selected at init: the wide variant processes index pairs
// per iteration and wants a vector unit behind the interleaved stores; the
// scalar variant is the portable fallback. Both produce identical bits.
var preRotateImpl = preRotateScalar

func init() {
	if cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD {
		preRotateImpl = preRotateWide
	}
}

// PreRotate performs the IMDCT prerotation: it folds the n2 spectral
// coefficients into n4 complex pairs ready for the half-size FFT, writing
// fftIn[i] = (yi, yr) with the imaginary part in the real lane. The swap is
// load-bearing: the downstream FFT runs in the forward direction, and the
// lane exchange is what turns it into the inverse transform.
//
// spectrum is read at the mirrored positions 2*i and n2-1-2*i and narrowed
// to float32 here; everything downstream is single precision. trig must
// cover [0, 2*n4). n4 == 0 is a no-op. Short buffers panic up front before
// any output is written.
func PreRotate(fftIn []complex64, spectrum []float64, trig []float32, n2, n4 int) {
	if n4 <= 0 {
		return
	}
	_ = spectrum[n2-1] // fail fast on a caller contract violation
	_ = trig[n4+n4-1]
	_ = fftIn[n4-1]
	preRotateImpl(fftIn, spectrum, trig, n2, n4)
}

// preRotateWide writes directly into fftIn backing storage as interleaved
// float32 (re, im), two spectral positions per iteration with a scalar
// remainder for odd n4.
func preRotateWide(fftIn []complex64, spectrum []float64, trig []float32, n2, n4 int) {
	out := unsafe.Slice((*float32)(unsafe.Pointer(&fftIn[0])), n4*2)
	_ = out[n4*2-1]

	i := 0
	for ; i+1 < n4; i += 2 {
		x10 := float32(spectrum[2*i])
		x20 := float32(spectrum[n2-1-2*i])
		t00 := trig[i]
		t10 := trig[n4+i]
		b0 := 2 * i
		out[b0] = x10*t00 - x20*t10
		out[b0+1] = x20*t00 + x10*t10

		i1 := i + 1
		x11 := float32(spectrum[2*i1])
		x21 := float32(spectrum[n2-1-2*i1])
		t01 := trig[i1]
		t11 := trig[n4+i1]
		b1 := 2 * i1
		out[b1] = x11*t01 - x21*t11
		out[b1+1] = x21*t01 + x11*t11
	}

	if i < n4 {
		x1 := float32(spectrum[2*i])
		x2 := float32(spectrum[n2-1-2*i])
		t0 := trig[i]
		t1 := trig[n4+i]
		b := 2 * i
		out[b] = x1*t0 - x2*t1
		out[b+1] = x2*t0 + x1*t1
	}
}

func preRotateScalar(fftIn []complex64, spectrum []float64, trig []float32, n2, n4 int) {
	for i := 0; i < n4; i++ {
		x1 := float32(spectrum[2*i])
		x2 := float32(spectrum[n2-1-2*i])
		t0 := trig[i]
		t1 := trig[n4+i]
		yr := x2*t0 + x1*t1
		yi := x1*t0 - x2*t1
		fftIn[i] = complex(yi, yr)
	}
}

// PostRotate performs the IMDCT postrotation in place over buf, which holds
// the FFT output as n2 interleaved float32 values. Two cursors advance
// toward each other for ceil(n4/2) iterations; each iteration rotates one
// sample from each half and cross-writes the results between the low and
// high slots (the low rotation lands its imaginary part in the high slot
// and vice versa). After the loop buf holds the final real-valued,
// windowing-ready layout.
//
// buf is read with the FFT's swapped lane order, (im, re) in the low half
// and reversed in the high half. trig must cover [0, n2). n4 == 0 must not
// touch the buffer.
func PostRotate(buf []float32, trig []float32, n2, n4 int) {
	limit := (n4 + 1) >> 1
	if limit <= 0 {
		return
	}
	_ = buf[n2-1] // fail fast on a caller contract violation
	_ = trig[n2-1]

	yp0 := 0
	yp1 := n2 - 2
	for i := 0; i < limit; i++ {
		re := buf[yp0+1]
		im := buf[yp0]
		t0 := trig[i]
		t1 := trig[n4+i]
		yr := re*t0 + im*t1
		yi := re*t1 - im*t0

		re2 := buf[yp1+1]
		im2 := buf[yp1]
		buf[yp0] = yr
		buf[yp1+1] = yi

		t0 = trig[n4-i-1]
		t1 = trig[n2-i-1]
		yr = re2*t0 + im2*t1
		yi = re2*t1 - im2*t0
		buf[yp1] = yr
		buf[yp0+1] = yi

		yp0 += 2
		yp1 -= 2
	}
}
