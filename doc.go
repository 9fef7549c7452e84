// Package celtfft implements the inverse-transform core of a CELT-family
// audio decoder: the IMDCT pre- and post-rotation stages and the frame
// driver that composes them with the mixed-radix FFT in package kiss.
//
// The IMDCT converts frequency-domain MDCT coefficients back to
// time-domain audio. It is computed as a half-size complex FFT wrapped in
// two rotation stages: the prerotation folds the mirrored spectral reads
// into n4 complex pairs, the postrotation rewrites the FFT output in place
// into the final windowing-ready layout. Everything runs once per decoded
// frame with no allocation when a Scratch is reused.
//
// Reference: RFC 6716 Section 4.3.5, libopus celt/mdct.c.
package celtfft
