package kiss

// General-multiplicity butterflies. Each of the n groups holds radix
// sub-arrays of m complex samples spaced m apart; groups are mm samples
// apart. Twiddles are read at strides fstride, 2*fstride, ... per radix.
// The arithmetic mirrors libopus kiss_fft.c term for term; reordering any
// of it changes the low bits of the decode output.

// bfly2 handles the radix-2 stages the factorizer emits: m==1, and the
// degenerate m==4 stage that follows a radix-4 stage, where the twiddles
// collapse to 1, (1-i)/sqrt2, -i and -(1+i)/sqrt2.
func bfly2(fout []Cpx, m, n int) {
	if m == 1 {
		bfly2M1(fout, n)
		return
	}
	tw := float32(0.7071067812)
	for i := 0; i < n; i++ {
		fout2 := fout[4:]
		t := fout2[0]
		fout2[0].r = fout[0].r - t.r
		fout2[0].i = fout[0].i - t.i
		fout[0].r += t.r
		fout[0].i += t.i

		t.r = (fout2[1].r + fout2[1].i) * tw
		t.i = (fout2[1].i - fout2[1].r) * tw
		fout2[1].r = fout[1].r - t.r
		fout2[1].i = fout[1].i - t.i
		fout[1].r += t.r
		fout[1].i += t.i

		t.r = fout2[2].i
		t.i = -fout2[2].r
		fout2[2].r = fout[2].r - t.r
		fout2[2].i = fout[2].i - t.i
		fout[2].r += t.r
		fout[2].i += t.i

		t.r = (fout2[3].i - fout2[3].r) * tw
		t.i = -(fout2[3].i + fout2[3].r) * tw
		fout2[3].r = fout[3].r - t.r
		fout2[3].i = fout[3].i - t.i
		fout[3].r += t.r
		fout[3].i += t.i

		fout = fout[8:]
	}
}

func bfly3(fout []Cpx, w []Cpx, fstride, m, n, mm int) {
	if m == 1 {
		bfly3M1(fout, w, fstride, n, mm)
		return
	}
	if n <= 0 || mm <= 0 {
		return
	}
	m2 := 2 * m
	epi3i := w[fstride*m].i
	const half = float32(0.5)
	_ = fout[n*mm-1] // BCE for idx+{0,m,m2}
	for i := 0; i < n; i++ {
		base := i * mm
		tw1, tw2 := 0, 0
		for j := 0; j < m; j++ {
			idx := base + j

			a0r, a0i := fout[idx].r, fout[idx].i
			b1 := fout[idx+m]
			b2 := fout[idx+m2]
			w1 := w[tw1]
			w2 := w[tw2]

			s1r := b1.r*w1.r - b1.i*w1.i
			s1i := b1.r*w1.i + b1.i*w1.r
			s2r := b2.r*w2.r - b2.i*w2.i
			s2i := b2.r*w2.i + b2.i*w2.r

			s3r := s1r + s2r
			s3i := s1i + s2i
			s0r := (s1r - s2r) * epi3i
			s0i := (s1i - s2i) * epi3i

			f1r := a0r - half*s3r
			f1i := a0i - half*s3i
			fout[idx].r = a0r + s3r
			fout[idx].i = a0i + s3i
			fout[idx+m2].r = f1r + s0i
			fout[idx+m2].i = f1i - s0r
			fout[idx+m].r = f1r - s0i
			fout[idx+m].i = f1i + s0r

			tw1 += fstride
			tw2 += fstride * 2
		}
	}
}

func bfly4(fout []Cpx, w []Cpx, fstride, m, n, mm int) {
	if m == 1 {
		bfly4M1(fout, n)
		return
	}
	if n <= 0 || mm <= 0 {
		return
	}
	if fstride == 1 {
		bfly4Fast(fout, w, m, n, mm)
		return
	}
	bfly4Generic(fout, w, fstride, m, n, mm)
}

// bfly4Fast is the fstride==1 specialization: twiddle indices are the
// contiguous j, 2j, 3j, so positions are processed in unrolled pairs with a
// scalar tail for odd m. Per-position arithmetic is identical to
// bfly4Generic so the two paths agree bit for bit.
func bfly4Fast(fout []Cpx, w []Cpx, m, n, mm int) {
	m2 := 2 * m
	m3 := 3 * m
	_ = fout[n*mm-1]  // BCE for idx+{0,m,m2,m3}
	_ = w[3*(m-1)]    // highest twiddle index touched
	for i := 0; i < n; i++ {
		base := i * mm
		j := 0
		for ; j+1 < m; j += 2 {
			idx := base + j

			a0r, a0i := fout[idx].r, fout[idx].i
			b1 := fout[idx+m]
			b2 := fout[idx+m2]
			b3 := fout[idx+m3]
			w1 := w[j]
			w2 := w[2*j]
			w3 := w[3*j]

			s0r := b1.r*w1.r - b1.i*w1.i
			s0i := b1.r*w1.i + b1.i*w1.r
			s1r := b2.r*w2.r - b2.i*w2.i
			s1i := b2.r*w2.i + b2.i*w2.r
			s2r := b3.r*w3.r - b3.i*w3.i
			s2i := b3.r*w3.i + b3.i*w3.r

			s5r := a0r - s1r
			s5i := a0i - s1i
			a0r += s1r
			a0i += s1i

			s3r := s0r + s2r
			s3i := s0i + s2i
			s4r := s0r - s2r
			s4i := s0i - s2i

			fout[idx+m2].r = a0r - s3r
			fout[idx+m2].i = a0i - s3i
			a0r += s3r
			a0i += s3i
			fout[idx].r = a0r
			fout[idx].i = a0i

			fout[idx+m].r = s5r + s4i
			fout[idx+m].i = s5i - s4r
			fout[idx+m3].r = s5r - s4i
			fout[idx+m3].i = s5i + s4r

			idx++
			j1 := j + 1

			a0r, a0i = fout[idx].r, fout[idx].i
			b1 = fout[idx+m]
			b2 = fout[idx+m2]
			b3 = fout[idx+m3]
			w1 = w[j1]
			w2 = w[2*j1]
			w3 = w[3*j1]

			s0r = b1.r*w1.r - b1.i*w1.i
			s0i = b1.r*w1.i + b1.i*w1.r
			s1r = b2.r*w2.r - b2.i*w2.i
			s1i = b2.r*w2.i + b2.i*w2.r
			s2r = b3.r*w3.r - b3.i*w3.i
			s2i = b3.r*w3.i + b3.i*w3.r

			s5r = a0r - s1r
			s5i = a0i - s1i
			a0r += s1r
			a0i += s1i

			s3r = s0r + s2r
			s3i = s0i + s2i
			s4r = s0r - s2r
			s4i = s0i - s2i

			fout[idx+m2].r = a0r - s3r
			fout[idx+m2].i = a0i - s3i
			a0r += s3r
			a0i += s3i
			fout[idx].r = a0r
			fout[idx].i = a0i

			fout[idx+m].r = s5r + s4i
			fout[idx+m].i = s5i - s4r
			fout[idx+m3].r = s5r - s4i
			fout[idx+m3].i = s5i + s4r
		}
		for ; j < m; j++ {
			idx := base + j

			a0r, a0i := fout[idx].r, fout[idx].i
			b1 := fout[idx+m]
			b2 := fout[idx+m2]
			b3 := fout[idx+m3]
			w1 := w[j]
			w2 := w[2*j]
			w3 := w[3*j]

			s0r := b1.r*w1.r - b1.i*w1.i
			s0i := b1.r*w1.i + b1.i*w1.r
			s1r := b2.r*w2.r - b2.i*w2.i
			s1i := b2.r*w2.i + b2.i*w2.r
			s2r := b3.r*w3.r - b3.i*w3.i
			s2i := b3.r*w3.i + b3.i*w3.r

			s5r := a0r - s1r
			s5i := a0i - s1i
			a0r += s1r
			a0i += s1i

			s3r := s0r + s2r
			s3i := s0i + s2i
			s4r := s0r - s2r
			s4i := s0i - s2i

			fout[idx+m2].r = a0r - s3r
			fout[idx+m2].i = a0i - s3i
			a0r += s3r
			a0i += s3i
			fout[idx].r = a0r
			fout[idx].i = a0i

			fout[idx+m].r = s5r + s4i
			fout[idx+m].i = s5i - s4r
			fout[idx+m3].r = s5r - s4i
			fout[idx+m3].i = s5i + s4r
		}
	}
}

// bfly4Generic walks one position at a time with arbitrary twiddle stride.
func bfly4Generic(fout []Cpx, w []Cpx, fstride, m, n, mm int) {
	m2 := 2 * m
	m3 := 3 * m
	_ = fout[n*mm-1] // BCE for idx+{0,m,m2,m3}
	for i := 0; i < n; i++ {
		base := i * mm
		tw1, tw2, tw3 := 0, 0, 0
		for j := 0; j < m; j++ {
			idx := base + j

			a0r, a0i := fout[idx].r, fout[idx].i
			b1 := fout[idx+m]
			b2 := fout[idx+m2]
			b3 := fout[idx+m3]
			w1 := w[tw1]
			w2 := w[tw2]
			w3 := w[tw3]

			s0r := b1.r*w1.r - b1.i*w1.i
			s0i := b1.r*w1.i + b1.i*w1.r
			s1r := b2.r*w2.r - b2.i*w2.i
			s1i := b2.r*w2.i + b2.i*w2.r
			s2r := b3.r*w3.r - b3.i*w3.i
			s2i := b3.r*w3.i + b3.i*w3.r

			s5r := a0r - s1r
			s5i := a0i - s1i
			a0r += s1r
			a0i += s1i

			s3r := s0r + s2r
			s3i := s0i + s2i
			s4r := s0r - s2r
			s4i := s0i - s2i

			fout[idx+m2].r = a0r - s3r
			fout[idx+m2].i = a0i - s3i
			a0r += s3r
			a0i += s3i
			fout[idx].r = a0r
			fout[idx].i = a0i

			fout[idx+m].r = s5r + s4i
			fout[idx+m].i = s5i - s4r
			fout[idx+m3].r = s5r - s4i
			fout[idx+m3].i = s5i + s4r

			tw1 += fstride
			tw2 += fstride * 2
			tw3 += fstride * 3
		}
	}
}

func bfly5(fout []Cpx, w []Cpx, fstride, m, n, mm int) {
	if m == 1 {
		bfly5M1(fout, w, fstride, n, mm)
		return
	}
	if n <= 0 || mm <= 0 {
		return
	}
	ya := w[fstride*m]
	yb := w[fstride*2*m]
	yar, yai := ya.r, ya.i
	ybr, ybi := yb.r, yb.i
	_ = fout[n*mm-1] // BCE for idx+{0..4m}
	for i := 0; i < n; i++ {
		base := i * mm
		idx0, idx1, idx2, idx3, idx4 := base, base+m, base+2*m, base+3*m, base+4*m
		tw1, tw2, tw3, tw4 := 0, 0, 0, 0
		for u := 0; u < m; u++ {
			a0 := fout[idx0]
			b1 := fout[idx1]
			b2 := fout[idx2]
			b3 := fout[idx3]
			b4 := fout[idx4]
			w1 := w[tw1]
			w2 := w[tw2]
			w3 := w[tw3]
			w4 := w[tw4]

			s1r := b1.r*w1.r - b1.i*w1.i
			s1i := b1.r*w1.i + b1.i*w1.r
			s2r := b2.r*w2.r - b2.i*w2.i
			s2i := b2.r*w2.i + b2.i*w2.r
			s3r := b3.r*w3.r - b3.i*w3.i
			s3i := b3.r*w3.i + b3.i*w3.r
			s4r := b4.r*w4.r - b4.i*w4.i
			s4i := b4.r*w4.i + b4.i*w4.r

			s7r, s7i := s1r+s4r, s1i+s4i
			s10r, s10i := s1r-s4r, s1i-s4i
			s8r, s8i := s2r+s3r, s2i+s3i
			s9r, s9i := s2r-s3r, s2i-s3i

			fout[idx0].r = a0.r + (s7r + s8r)
			fout[idx0].i = a0.i + (s7i + s8i)

			s5r := a0.r + (s7r*yar + s8r*ybr)
			s5i := a0.i + (s7i*yar + s8i*ybr)
			s6r := s10i*yai + s9i*ybi
			s6i := -(s10r*yai + s9r*ybi)
			fout[idx1].r, fout[idx1].i = s5r-s6r, s5i-s6i
			fout[idx4].r, fout[idx4].i = s5r+s6r, s5i+s6i

			s11r := a0.r + (s7r*ybr + s8r*yar)
			s11i := a0.i + (s7i*ybr + s8i*yar)
			s12r := s9i*yai - s10i*ybi
			s12i := s10r*ybi - s9r*yai
			fout[idx2].r, fout[idx2].i = s11r+s12r, s11i+s12i
			fout[idx3].r, fout[idx3].i = s11r-s12r, s11i-s12i

			idx0++
			idx1++
			idx2++
			idx3++
			idx4++
			tw1 += fstride
			tw2 += fstride * 2
			tw3 += fstride * 3
			tw4 += fstride * 4
		}
	}
}
