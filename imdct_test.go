package celtfft

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

// refInverse runs the whole inverse pipeline in float64: prerotation,
// direct half-size DFT, postrotation. It is the precision oracle for the
// single-precision implementation.
func refInverse(spectrum []float64) []float64 {
	n2 := len(spectrum)
	n4 := n2 / 2
	n := 2 * n2

	trig := make([]float64, n2)
	for i := range trig {
		trig[i] = math.Cos(2 * math.Pi * (float64(i) + 0.125) / float64(n))
	}

	f := make([]complex128, n4)
	for i := 0; i < n4; i++ {
		x1 := spectrum[2*i]
		x2 := spectrum[n2-1-2*i]
		t0, t1 := trig[i], trig[n4+i]
		f[i] = complex(x1*t0-x2*t1, x2*t0+x1*t1)
	}

	buf := make([]float64, n2)
	for k := 0; k < n4; k++ {
		var sum complex128
		for j := 0; j < n4; j++ {
			sum += f[j] * cmplx.Exp(complex(0, -2*math.Pi*float64(k*j)/float64(n4)))
		}
		buf[2*k] = real(sum)
		buf[2*k+1] = imag(sum)
	}

	out := make([]float64, n2)
	copy(out, buf)
	limit := (n4 + 1) >> 1
	yp0, yp1 := 0, n2-2
	for i := 0; i < limit; i++ {
		re, im := buf[yp0+1], buf[yp0]
		t0, t1 := trig[i], trig[n4+i]
		out[yp0] = re*t0 + im*t1
		out[yp1+1] = re*t1 - im*t0

		re2, im2 := buf[yp1+1], buf[yp1]
		t0, t1 = trig[n4-i-1], trig[n2-i-1]
		out[yp1] = re2*t0 + im2*t1
		out[yp0+1] = re2*t1 - im2*t0

		yp0 += 2
		yp1 -= 2
	}
	return out
}

func snrDB(ref []float64, got []float32) float64 {
	var sig, noise float64
	for i := range ref {
		d := ref[i] - float64(got[i])
		sig += ref[i] * ref[i]
		noise += d * d
	}
	if noise == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(sig/noise)
}

func TestInverseMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(101))
	var scratch Scratch
	for _, n2 := range []int{8, 16, 30, 120, 240, 480, 960} {
		t.Run("", func(t *testing.T) {
			spectrum := make([]float64, n2)
			for i := range spectrum {
				spectrum[i] = rng.Float64()*2 - 1
			}
			want := refInverse(spectrum)

			dst := make([]float32, n2)
			Inverse(dst, spectrum, &scratch)

			snr := snrDB(want, dst)
			t.Logf("n2=%d: SNR %.1f dB vs float64 reference", n2, snr)
			if snr < 80 {
				t.Errorf("n2=%d: SNR %.1f dB below 80 dB", n2, snr)
			}
		})
	}
}

// solveLinear solves m*x = y by Gaussian elimination with partial pivoting.
// m is clobbered.
func solveLinear(m [][]float64, y []float64) []float64 {
	n := len(y)
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		m[col], m[pivot] = m[pivot], m[col]
		y[col], y[pivot] = y[pivot], y[col]
		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c < n; c++ {
				m[r][c] -= f * m[col][c]
			}
			y[r] -= f * y[col]
		}
	}
	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := y[r]
		for c := r + 1; c < n; c++ {
			sum -= m[r][c] * x[c]
		}
		x[r] = sum / m[r][r]
	}
	return x
}

// TestInverseRoundTrip recovers the spectrum from the transform output.
// The inverse MDCT is linear, so its matrix is assembled column by column
// from basis impulses; solving against it undoes the transform.
func TestInverseRoundTrip(t *testing.T) {
	const n2 = 32
	m := make([][]float64, n2)
	for r := range m {
		m[r] = make([]float64, n2)
	}
	basis := make([]float64, n2)
	for c := 0; c < n2; c++ {
		basis[c] = 1
		col := refInverse(basis)
		basis[c] = 0
		for r := 0; r < n2; r++ {
			m[r][c] = col[r]
		}
	}

	rng := rand.New(rand.NewSource(202))
	spectrum := make([]float64, n2)
	for i := range spectrum {
		spectrum[i] = rng.Float64()*2 - 1
	}

	dst := make([]float32, n2)
	Inverse(dst, spectrum, nil)

	y := make([]float64, n2)
	for i := range dst {
		y[i] = float64(dst[i])
	}
	recovered := solveLinear(m, y)

	var sig, noise float64
	for i := range spectrum {
		d := spectrum[i] - recovered[i]
		sig += spectrum[i] * spectrum[i]
		noise += d * d
	}
	snr := 10 * math.Log10(sig/noise)
	t.Logf("round-trip SNR %.1f dB", snr)
	if snr < 80 {
		t.Errorf("round-trip SNR %.1f dB below 80 dB", snr)
	}
}

func TestInverseZeroSpectrum(t *testing.T) {
	spectrum := make([]float64, 240)
	dst := make([]float32, 240)
	for i := range dst {
		dst[i] = 42
	}
	Inverse(dst, spectrum, nil)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("dst[%d] = %v, want 0", i, v)
		}
	}
}

func TestInverseEmptySpectrum(t *testing.T) {
	dst := []float32{7}
	Inverse(dst, nil, nil)
	if dst[0] != 7 {
		t.Errorf("buffer touched on empty spectrum: %v", dst[0])
	}
}

func TestInverseNilScratch(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	spectrum := make([]float64, 120)
	for i := range spectrum {
		spectrum[i] = rng.Float64()*2 - 1
	}
	a := make([]float32, 120)
	b := make([]float32, 120)
	Inverse(a, spectrum, nil)
	Inverse(b, spectrum, &Scratch{})
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("nil-scratch output diverges at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestInverseScratchReuse(t *testing.T) {
	spectrum := make([]float64, 480)
	for i := range spectrum {
		spectrum[i] = math.Sin(float64(i) * 0.1)
	}
	dst := make([]float32, 480)
	scratch := &Scratch{}
	Inverse(dst, spectrum, scratch) // warm plan, trig and scratch caches

	allocs := testing.AllocsPerRun(10, func() {
		Inverse(dst, spectrum, scratch)
	})
	if allocs != 0 {
		t.Errorf("steady-state Inverse allocates %.0f times per call", allocs)
	}
}

func TestWindowPowerComplementary(t *testing.T) {
	for _, overlap := range []int{8, 120, 240} {
		w := WindowTable(overlap)
		for i := 0; i < overlap/2; i++ {
			sum := float64(w[i])*float64(w[i]) + float64(w[overlap-1-i])*float64(w[overlap-1-i])
			if math.Abs(sum-1) > 1e-6 {
				t.Errorf("overlap=%d: w[%d]^2 + w[%d]^2 = %v, want 1", overlap, i, overlap-1-i, sum)
			}
		}
	}
}

// TestInverseWindowedZeroSpectrum checks the blend geometry directly: a
// silent frame against a unit previous overlap leaves the mirrored window
// in the overlap region and a silent tail.
func TestInverseWindowedZeroSpectrum(t *testing.T) {
	const n2, overlap = 120, 120
	spectrum := make([]float64, n2)
	prev := make([]float32, overlap)
	for i := range prev {
		prev[i] = 1
	}
	dst := make([]float32, n2+overlap)
	InverseWindowed(dst, spectrum, prev, overlap, nil)

	w := WindowTable(overlap)
	for i := 0; i < overlap; i++ {
		if math.Abs(float64(dst[i]-w[overlap-1-i])) > 1e-6 {
			t.Errorf("dst[%d] = %v, want mirrored window %v", i, dst[i], w[overlap-1-i])
		}
	}
	// Only up to overlap/2 past n2 is written; the rest of the tail is the
	// next frame's fold region and stays untouched.
	for i := n2; i < n2+overlap/2; i++ {
		if dst[i] != 0 {
			t.Errorf("tail dst[%d] = %v, want 0", i, dst[i])
		}
	}
}

func TestInverseWindowedShortPrevOverlap(t *testing.T) {
	const n2, overlap = 120, 120
	spectrum := make([]float64, n2)
	dst := make([]float32, n2+overlap)
	for i := range dst {
		dst[i] = 9
	}
	InverseWindowed(dst, spectrum, nil, overlap, nil)
	for i := 0; i < n2+overlap/2; i++ {
		if dst[i] != 0 {
			t.Fatalf("dst[%d] = %v, want 0 with silent frame and no carried overlap", i, dst[i])
		}
	}
}

func BenchmarkInverse480(b *testing.B) {
	spectrum := make([]float64, 480)
	for i := range spectrum {
		spectrum[i] = math.Sin(float64(i) * 0.03)
	}
	dst := make([]float32, 480)
	scratch := &Scratch{}
	Inverse(dst, spectrum, scratch)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Inverse(dst, spectrum, scratch)
	}
}
