// Package kiss implements the mixed-radix complex FFT used by the CELT
// inverse MDCT. Sizes factor into radices 2, 3, 4 and 5; anything with a
// larger prime factor falls back to a direct DFT. The butterfly structure
// mirrors libopus kiss_fft.c so that results stay bit-compatible with the
// reference decoder.
package kiss

// Cpx mirrors kiss_fft_cpx: an interleaved (real, imaginary) float32 pair.
type Cpx struct {
	r float32
	i float32
}

// Complex builds a Cpx from its components. Tests and callers that seed
// buffers directly go through this instead of poking at the fields.
func Complex(r, i float32) Cpx {
	return Cpx{r: r, i: i}
}

// Real returns the real lane.
func (c Cpx) Real() float32 { return c.r }

// Imag returns the imaginary lane.
func (c Cpx) Imag() float32 { return c.i }

func cAdd(a, b Cpx) Cpx {
	return Cpx{r: a.r + b.r, i: a.i + b.i}
}

func cSub(a, b Cpx) Cpx {
	return Cpx{r: a.r - b.r, i: a.i - b.i}
}

func cMul(a, b Cpx) Cpx {
	return Cpx{r: a.r*b.r - a.i*b.i, i: a.r*b.i + a.i*b.r}
}
