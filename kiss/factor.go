package kiss

// factor computes the radix decomposition of n as (p, m) pairs where each
// stage's p*m equals the previous stage's m. Radix 4 is preferred, then 2,
// 3, 5. Returns false when n has a prime factor larger than 5.
func factor(n int) ([]int, bool) {
	p := 4
	stages := 0
	nbak := n
	facbuf := make([]int, 32)
	for n > 1 {
		for n%p != 0 {
			switch p {
			case 4:
				p = 2
			case 2:
				p = 3
			default:
				p += 2
			}
			if p > 32000 || p*p > n {
				p = n
			}
		}
		n /= p
		if p > 5 { // unsupported radix
			return nil, false
		}
		facbuf[2*stages] = p
		if p == 2 && stages > 1 {
			// Keep a single radix-2 stage early and promote the late one
			// to radix 4, matching the libopus factor order.
			facbuf[2*stages] = 4
			facbuf[2] = 2
		}
		stages++
	}
	for i := 0; i < stages/2; i++ {
		tmp := facbuf[2*i]
		facbuf[2*i] = facbuf[2*(stages-i-1)]
		facbuf[2*(stages-i-1)] = tmp
	}
	n = nbak
	for i := 0; i < stages; i++ {
		n /= facbuf[2*i]
		facbuf[2*i+1] = n
	}
	return facbuf[:2*stages], true
}

// computeBitrevTable fills the mixed-radix digit-reversal permutation by
// recursing over the factor list, mirroring kiss_fft.c:compute_bitrev_table.
//
// fout is the output index to write, fIdx the write position in bitrev, and
// entries at each level are spaced fstride*inStride apart. At a leaf
// (m == 1) the p values land consecutively in fout order; otherwise the
// recursion fans out p times with the stride multiplied by p.
func computeBitrevTable(fout int, bitrev []int, fIdx int, fstride int, inStride int, factors []int) {
	p := factors[0]
	m := factors[1]
	factors = factors[2:]
	step := fstride * inStride
	if m == 1 {
		for j := 0; j < p; j++ {
			if fIdx >= 0 && fIdx < len(bitrev) {
				bitrev[fIdx] = fout + j
			}
			fIdx += step
		}
		return
	}
	for j := 0; j < p; j++ {
		computeBitrevTable(fout, bitrev, fIdx, fstride*p, inStride, factors)
		fIdx += step
		fout += m
	}
}
