package kiss

import "math"

// execute runs the butterfly stages innermost-first over fout, which must
// already hold the digit-reversed input. No scaling is applied; the IMDCT
// caller owns scaling, as in libopus opus_fft_impl.
func (p *Plan) execute(fout []Cpx) {
	if p == nil || p.nfft == 0 {
		return
	}
	fstride := p.fstride
	if len(fstride) == 0 {
		return
	}

	// Number of stages: walk factors until m reaches 1.
	L := 0
	for {
		if 2*L+1 >= len(p.factors) {
			break
		}
		m := p.factors[2*L+1]
		L++
		if m == 1 {
			break
		}
	}
	if L == 0 {
		return
	}

	m := p.factors[2*L-1]
	for i := L - 1; i >= 0; i-- {
		m2 := 1
		if i != 0 {
			m2 = p.factors[2*i-1]
		}
		switch p.factors[2*i] {
		case 2:
			bfly2(fout, m, fstride[i])
		case 4:
			bfly4(fout, p.w, fstride[i], m, fstride[i], m2)
		case 3:
			bfly3(fout, p.w, fstride[i], m, fstride[i], m2)
		case 5:
			bfly5(fout, p.w, fstride[i], m, fstride[i], m2)
		}
		m = m2
	}
}

// Transform computes the forward FFT of x into out. scratch must be at
// least len(x) long to avoid an allocation. Sizes without a supported
// factorization go through the direct DFT.
func (p *Plan) Transform(out []complex64, x []complex64, scratch []Cpx) {
	n := len(x)
	if n == 0 || len(out) < n {
		return
	}
	if !p.Mixed() || p.nfft != n {
		dftTo(out, x)
		return
	}
	if len(scratch) < n {
		scratch = make([]Cpx, n)
	}

	for i := 0; i < n; i++ {
		v := x[i]
		idx := p.bitrev[i]
		scratch[idx].r = real(v)
		scratch[idx].i = imag(v)
	}

	p.execute(scratch[:n])

	for i := 0; i < n; i++ {
		out[i] = complex(scratch[i].r, scratch[i].i)
	}
}

// TransformInterleaved computes the FFT of x and writes the output as
// interleaved real/imag float32 pairs into outRI: [re0, im0, re1, im1, ...].
// outRI must have length at least 2*len(x).
func (p *Plan) TransformInterleaved(outRI []float32, x []complex64, scratch []Cpx) {
	n := len(x)
	if n == 0 || len(outRI) < 2*n {
		return
	}
	if !p.Mixed() || p.nfft != n {
		tmp := make([]complex64, n)
		dftTo(tmp, x)
		j := 0
		for i := 0; i < n; i++ {
			v := tmp[i]
			outRI[j] = real(v)
			outRI[j+1] = imag(v)
			j += 2
		}
		return
	}
	if len(scratch) < n {
		scratch = make([]Cpx, n)
	}

	for i := 0; i < n; i++ {
		v := x[i]
		idx := p.bitrev[i]
		scratch[idx].r = real(v)
		scratch[idx].i = imag(v)
	}

	p.execute(scratch[:n])

	j := 0
	for i := 0; i < n; i++ {
		v := scratch[i]
		outRI[j] = v.r
		outRI[j+1] = v.i
		j += 2
	}
}

// DFT is the direct O(n^2) transform. It serves as the fallback for sizes
// with prime factors above 5 and as the accuracy oracle in tests.
func DFT(out []complex64, x []complex64) {
	dftTo(out, x)
}

func dftTo(out []complex64, x []complex64) {
	n := len(x)
	if n == 0 || len(out) < n {
		return
	}
	if n == 1 {
		out[0] = x[0]
		return
	}
	twoPi := float32(-2.0*math.Pi) / float32(n)
	for k := 0; k < n; k++ {
		angle := twoPi * float32(k)
		wStep := complex(float32(math.Cos(float64(angle))), float32(math.Sin(float64(angle))))
		w := complex(float32(1.0), float32(0.0))
		var sum complex64
		for t := 0; t < n; t++ {
			sum += x[t] * w
			w *= wStep
		}
		out[k] = sum
	}
}
