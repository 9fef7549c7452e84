package kiss

// Unit-multiplicity butterflies. With m == 1 the twiddle walk degenerates:
// radix 2 and 4 need no twiddles at all, radix 3 and 5 only the fixed
// constants at fstride and 2*fstride. Groups are mm complex samples apart.

// bfly2M1 handles the radix-2 m==1 hot path with index arithmetic.
func bfly2M1(fout []Cpx, n int) {
	if n <= 0 {
		return
	}
	total := n << 1
	_ = fout[total-1] // BCE hint for i and i+1 accesses.
	for i := 0; i < total; i += 2 {
		ar := fout[i].r
		ai := fout[i].i
		br := fout[i+1].r
		bi := fout[i+1].i
		fout[i].r = ar + br
		fout[i].i = ai + bi
		fout[i+1].r = ar - br
		fout[i+1].i = ai - bi
	}
}

// bfly4M1 handles the radix-4 m==1 hot path over contiguous groups of 4.
// The last two outputs apply a +/-90 degree rotation to the odd-difference
// term by swapping its lanes and negating one of them.
func bfly4M1(fout []Cpx, n int) {
	if n <= 0 {
		return
	}
	total := n << 2
	_ = fout[total-1] // BCE hint for base+0..3 accesses.
	for i := 0; i < total; i += 4 {
		a0r, a0i := fout[i].r, fout[i].i
		a1r, a1i := fout[i+1].r, fout[i+1].i
		a2r, a2i := fout[i+2].r, fout[i+2].i
		a3r, a3i := fout[i+3].r, fout[i+3].i

		s0r := a0r - a2r
		s0i := a0i - a2i
		f0r := a0r + a2r
		f0i := a0i + a2i

		s1r := a1r + a3r
		s1i := a1i + a3i
		f2r := f0r - s1r
		f2i := f0i - s1i
		f0r += s1r
		f0i += s1i

		s1r = a1r - a3r
		s1i = a1i - a3i
		f1r := s0r + s1i
		f1i := s0i - s1r
		f3r := s0r - s1i
		f3i := s0i + s1r

		fout[i].r, fout[i].i = f0r, f0i
		fout[i+1].r, fout[i+1].i = f1r, f1i
		fout[i+2].r, fout[i+2].i = f2r, f2i
		fout[i+3].r, fout[i+3].i = f3r, f3i
	}
}

// bfly3M1 handles the radix-3 m==1 path. epi3i is the imaginary part of the
// twiddle at fstride; the difference term is rotated by it and the two
// non-DC outputs are the +/- pair around the mid term.
func bfly3M1(fout []Cpx, tw []Cpx, fstride, n, mm int) {
	if n <= 0 || mm <= 0 {
		return
	}
	epi3i := tw[fstride].i
	half := float32(0.5)
	_ = fout[(n-1)*mm+2] // BCE hint for base+0..2 accesses.
	for i := 0; i < n; i++ {
		base := i * mm
		a0r, a0i := fout[base].r, fout[base].i
		a1r, a1i := fout[base+1].r, fout[base+1].i
		a2r, a2i := fout[base+2].r, fout[base+2].i

		s3r := a1r + a2r
		s3i := a1i + a2i
		s0r := a1r - a2r
		s0i := a1i - a2i

		f1r := a0r - half*s3r
		f1i := a0i - half*s3i
		f0r := a0r + s3r
		f0i := a0i + s3i

		s0r *= epi3i
		s0i *= epi3i

		f2r := f1r + s0i
		f2i := f1i - s0r
		f1r -= s0i
		f1i += s0r

		fout[base].r, fout[base].i = f0r, f0i
		fout[base+1].r, fout[base+1].i = f1r, f1i
		fout[base+2].r, fout[base+2].i = f2r, f2i
	}
}

// bfly5M1 handles the radix-5 m==1 path. ya pairs with the near sum (f1+f4)
// and yb with the far sum (f2+f3) for the f1/f4 outputs, and vice versa for
// f2/f3.
func bfly5M1(fout []Cpx, tw []Cpx, fstride, n, mm int) {
	if n <= 0 || mm <= 0 {
		return
	}
	ya := tw[fstride]
	yb := tw[2*fstride]
	yar, yai := ya.r, ya.i
	ybr, ybi := yb.r, yb.i
	_ = fout[(n-1)*mm+4] // BCE hint for base+0..4 accesses.
	for i := 0; i < n; i++ {
		base := i * mm
		a0r, a0i := fout[base].r, fout[base].i
		a1r, a1i := fout[base+1].r, fout[base+1].i
		a2r, a2i := fout[base+2].r, fout[base+2].i
		a3r, a3i := fout[base+3].r, fout[base+3].i
		a4r, a4i := fout[base+4].r, fout[base+4].i

		s7r, s7i := a1r+a4r, a1i+a4i
		s10r, s10i := a1r-a4r, a1i-a4i
		s8r, s8i := a2r+a3r, a2i+a3i
		s9r, s9i := a2r-a3r, a2i-a3i

		f0r := a0r + s7r + s8r
		f0i := a0i + s7i + s8i

		s5r := a0r + (s7r*yar + s8r*ybr)
		s5i := a0i + (s7i*yar + s8i*ybr)
		s6r := s10i*yai + s9i*ybi
		s6i := -(s10r*yai + s9r*ybi)

		f1r, f1i := s5r-s6r, s5i-s6i
		f4r, f4i := s5r+s6r, s5i+s6i

		s11r := a0r + (s7r*ybr + s8r*yar)
		s11i := a0i + (s7i*ybr + s8i*yar)
		s12r := s9i*yai - s10i*ybi
		s12i := s10r*ybi - s9r*yai

		f2r, f2i := s11r+s12r, s11i+s12i
		f3r, f3i := s11r-s12r, s11i-s12i

		fout[base].r, fout[base].i = f0r, f0i
		fout[base+1].r, fout[base+1].i = f1r, f1i
		fout[base+2].r, fout[base+2].i = f2r, f2i
		fout[base+3].r, fout[base+3].i = f3r, f3i
		fout[base+4].r, fout[base+4].i = f4r, f4i
	}
}
