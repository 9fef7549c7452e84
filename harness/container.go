// Package harness implements the stream framing used by the reference
// decode helpers that generate golden output for differential testing. The
// helpers themselves pipe packets through an external decoder; this package
// owns only the container: the GOSI/GOSO single-stream protocol and the
// GMSI/GMSO multistream/projection protocol, little-endian throughout.
package harness

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	singleInMagic   = "GOSI"
	singleOutMagic  = "GOSO"
	multiInMagic    = "GMSI"
	multiOutMagic   = "GMSO"
	protocolVersion = 1

	// maxBlobLen bounds every length field read from the stream so a
	// corrupt header can't drive an allocation by gigabytes.
	maxBlobLen = 1 << 30
)

// SingleRequest is the input side of the single-stream protocol: a decoder
// configuration and the packets to decode, in order.
type SingleRequest struct {
	Channels  uint32 // 1 or 2
	FrameSize uint32 // samples per channel per packet
	Packets   [][]byte
}

// MultistreamRequest is the input side of the multistream protocol.
// Family 3 selects the demixing-matrix decode path and requires
// DemixingMatrix; other families use the channel Mapping.
type MultistreamRequest struct {
	Family         uint32
	Channels       uint32
	Streams        uint32
	Coupled        uint32
	FrameSize      uint32
	Mapping        []byte
	DemixingMatrix []byte
	Packets        [][]byte
}

// Response is the output side of both protocols: decoded samples,
// interleaved by channel, concatenated in packet order.
type Response struct {
	Samples []float32
}

func writeU32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readMagic(r io.Reader, want string) error {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if string(b[:]) != want {
		return fmt.Errorf("invalid magic %q, want %q", b[:], want)
	}
	return nil
}

func readBlob(r io.Reader, n uint32, what string) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if n > maxBlobLen {
		return nil, fmt.Errorf("%s length %d overflows limit", what, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("read %s: %w", what, err)
	}
	return b, nil
}

func writePackets(w io.Writer, packets [][]byte) error {
	for i, packet := range packets {
		if err := writeU32(w, uint32(len(packet))); err != nil {
			return fmt.Errorf("encode packet %d length: %w", i, err)
		}
		if _, err := w.Write(packet); err != nil {
			return fmt.Errorf("encode packet %d bytes: %w", i, err)
		}
	}
	return nil
}

func readPackets(r io.Reader, count uint32) ([][]byte, error) {
	if count > maxBlobLen/4 {
		return nil, fmt.Errorf("packet count %d overflows limit", count)
	}
	packets := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		n, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("read packet %d length: %w", i, err)
		}
		packet, err := readBlob(r, n, "packet")
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		packets = append(packets, packet)
	}
	return packets, nil
}

// WriteSingleRequest encodes req in the GOSI framing.
func WriteSingleRequest(w io.Writer, req *SingleRequest) error {
	if _, err := io.WriteString(w, singleInMagic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	for _, v := range []uint32{
		protocolVersion,
		req.Channels,
		req.FrameSize,
		uint32(len(req.Packets)),
	} {
		if err := writeU32(w, v); err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
	}
	return writePackets(w, req.Packets)
}

// ReadSingleRequest decodes a GOSI stream.
func ReadSingleRequest(r io.Reader) (*SingleRequest, error) {
	if err := readMagic(r, singleInMagic); err != nil {
		return nil, err
	}
	var fields [4]uint32
	for i := range fields {
		v, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		fields[i] = v
	}
	if fields[0] != protocolVersion {
		return nil, fmt.Errorf("unsupported version %d", fields[0])
	}
	req := &SingleRequest{
		Channels:  fields[1],
		FrameSize: fields[2],
	}
	if req.Channels != 1 && req.Channels != 2 {
		return nil, fmt.Errorf("invalid channel count %d", req.Channels)
	}
	packets, err := readPackets(r, fields[3])
	if err != nil {
		return nil, err
	}
	req.Packets = packets
	return req, nil
}

// WriteMultistreamRequest encodes req in the GMSI framing.
func WriteMultistreamRequest(w io.Writer, req *MultistreamRequest) error {
	if req.Family < 1 || req.Family > 3 {
		return fmt.Errorf("unsupported mapping family: %d", req.Family)
	}
	if _, err := io.WriteString(w, multiInMagic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	for _, v := range []uint32{
		protocolVersion,
		req.Family,
		req.Channels,
		req.Streams,
		req.Coupled,
		req.FrameSize,
		uint32(len(req.Packets)),
		uint32(len(req.Mapping)),
		uint32(len(req.DemixingMatrix)),
	} {
		if err := writeU32(w, v); err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
	}
	if _, err := w.Write(req.Mapping); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if _, err := w.Write(req.DemixingMatrix); err != nil {
		return fmt.Errorf("encode demixing matrix: %w", err)
	}
	return writePackets(w, req.Packets)
}

// ReadMultistreamRequest decodes a GMSI stream.
func ReadMultistreamRequest(r io.Reader) (*MultistreamRequest, error) {
	if err := readMagic(r, multiInMagic); err != nil {
		return nil, err
	}
	var fields [9]uint32
	for i := range fields {
		v, err := readU32(r)
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		fields[i] = v
	}
	if fields[0] != protocolVersion {
		return nil, fmt.Errorf("unsupported version %d", fields[0])
	}
	req := &MultistreamRequest{
		Family:    fields[1],
		Channels:  fields[2],
		Streams:   fields[3],
		Coupled:   fields[4],
		FrameSize: fields[5],
	}
	if req.Channels == 0 || req.Streams == 0 || req.FrameSize == 0 {
		return nil, fmt.Errorf("invalid decoder dimensions")
	}
	var err error
	if req.Mapping, err = readBlob(r, fields[7], "mapping"); err != nil {
		return nil, err
	}
	if req.DemixingMatrix, err = readBlob(r, fields[8], "demixing matrix"); err != nil {
		return nil, err
	}
	if req.Family == 3 && len(req.DemixingMatrix) == 0 {
		return nil, fmt.Errorf("family 3 requires a demixing matrix")
	}
	if req.Packets, err = readPackets(r, fields[6]); err != nil {
		return nil, err
	}
	return req, nil
}

func writeResponse(w io.Writer, magic string, resp *Response) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := writeU32(w, uint32(len(resp.Samples))); err != nil {
		return fmt.Errorf("encode sample count: %w", err)
	}
	var b [4]byte
	for _, s := range resp.Samples {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(s))
		if _, err := w.Write(b[:]); err != nil {
			return fmt.Errorf("encode samples: %w", err)
		}
	}
	return nil
}

func readResponse(r io.Reader, magic string) (*Response, error) {
	if err := readMagic(r, magic); err != nil {
		return nil, err
	}
	n, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("read sample count: %w", err)
	}
	if n > maxBlobLen/4 {
		return nil, fmt.Errorf("sample count %d overflows limit", n)
	}
	raw := make([]byte, 4*int(n))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
	}
	return &Response{Samples: samples}, nil
}

// WriteSingleResponse encodes resp in the GOSO framing.
func WriteSingleResponse(w io.Writer, resp *Response) error {
	return writeResponse(w, singleOutMagic, resp)
}

// ReadSingleResponse decodes a GOSO stream.
func ReadSingleResponse(r io.Reader) (*Response, error) {
	return readResponse(r, singleOutMagic)
}

// WriteMultistreamResponse encodes resp in the GMSO framing.
func WriteMultistreamResponse(w io.Writer, resp *Response) error {
	return writeResponse(w, multiOutMagic, resp)
}

// ReadMultistreamResponse decodes a GMSO stream.
func ReadMultistreamResponse(r io.Reader) (*Response, error) {
	return readResponse(r, multiOutMagic)
}
