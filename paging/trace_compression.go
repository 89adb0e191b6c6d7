package paging

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// CompressionType represents the compression algorithm used for a trace
type CompressionType uint8

const (
	CompressionNone   CompressionType = 0
	CompressionLZ4    CompressionType = 1
	CompressionSnappy CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompressionType resolves "none", "lz4" or "snappy"
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return CompressionNone, fmt.Errorf("unsupported trace compression %q (must be none, lz4 or snappy)", name)
	}
}

// Trace is a complete record of a run: its configuration and every step
type Trace struct {
	Algorithm Algorithm
	Frames    int
	Pages     int
	Sequence  []PageID
	Steps     []StepRecord
}

// Summary recomputes the run summary from the recorded steps
func (t *Trace) Summary() RunSummary {
	summary := RunSummary{
		Algorithm: t.Algorithm,
		Frames:    t.Frames,
		Accesses:  len(t.Steps),
	}
	for _, step := range t.Steps {
		if step.Hit {
			summary.Hits++
		} else {
			summary.Faults++
		}
		if step.HasEviction() {
			summary.Evictions++
		}
	}
	if summary.Accesses > 0 {
		summary.HitRatio = float64(summary.Hits) / float64(summary.Accesses)
	}
	return summary
}

// Encoded trace layout:
// [0-1]: Magic number (0x7A6E)
// [2]: Compression type (0=none, 1=LZ4, 2=Snappy)
// [3]: Format version
// [4-7]: Uncompressed body size
// [8-11]: Compressed body size
// [12-15]: Body checksum (CRC32)
// [16+]: Body
//
// The body is a sequence of varints: algorithm name length and bytes,
// frames, pages, sequence length and ids, step count, then per step the
// hit flag, index, page, frame, evicted page and every frame slot.

const (
	TraceMagic              = 0x7A6E
	TraceVersion            = 1
	TraceHeaderSize         = 16
	MinCompressionThreshold = 64       // Minimum bytes saved to use compression
	MaxTraceBodySize        = 64 << 20 // Largest body DecodeTrace will allocate
	lz4MaxExpansion         = 255      // LZ4 block output bytes per input byte, at most
)

// EncodeTrace serializes and compresses a trace. Compression falls back to
// none when it saves less than MinCompressionThreshold bytes.
func EncodeTrace(t *Trace, compressionType CompressionType) ([]byte, error) {
	body := encodeTraceBody(t)

	var compressed []byte
	switch compressionType {
	case CompressionNone:
		compressed = body

	case CompressionLZ4:
		compressed = make([]byte, lz4.CompressBlockBound(len(body)))
		n, err := lz4.CompressBlock(body, compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		// n == 0 means the body is incompressible
		if n == 0 {
			compressionType = CompressionNone
			compressed = body
		} else {
			compressed = compressed[:n]
		}

	case CompressionSnappy:
		compressed = snappy.Encode(nil, body)

	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compressionType)
	}

	if compressionType != CompressionNone && len(body)-len(compressed) < MinCompressionThreshold {
		compressionType = CompressionNone
		compressed = body
	}

	buf := make([]byte, TraceHeaderSize+len(compressed))
	binary.LittleEndian.PutUint16(buf[0:2], TraceMagic)
	buf[2] = uint8(compressionType)
	buf[3] = TraceVersion
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(body)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(buf[12:16], crc32.ChecksumIEEE(body))
	copy(buf[TraceHeaderSize:], compressed)

	return buf, nil
}

// DecodeTrace reverses EncodeTrace, verifying the checksum
func DecodeTrace(data []byte) (*Trace, error) {
	const op = "DecodeTrace"

	if len(data) < TraceHeaderSize {
		return nil, ErrTraceCorrupt(op, fmt.Sprintf("data too short for trace header: %d bytes", len(data)), nil)
	}
	if magic := binary.LittleEndian.Uint16(data[0:2]); magic != TraceMagic {
		return nil, ErrTraceCorrupt(op, fmt.Sprintf("invalid magic number: got %04x, expected %04x", magic, TraceMagic), nil)
	}
	if version := data[3]; version != TraceVersion {
		return nil, ErrTraceCorrupt(op, fmt.Sprintf("unsupported trace version %d", version), nil)
	}

	compressionType := CompressionType(data[2])
	bodySize := binary.LittleEndian.Uint32(data[4:8])
	compressedSize := binary.LittleEndian.Uint32(data[8:12])
	checksum := binary.LittleEndian.Uint32(data[12:16])

	if uint64(TraceHeaderSize)+uint64(compressedSize) > uint64(len(data)) {
		return nil, ErrTraceCorrupt(op, fmt.Sprintf("insufficient data: need %d bytes, have %d",
			TraceHeaderSize+int(compressedSize), len(data)), nil)
	}
	payload := data[TraceHeaderSize : TraceHeaderSize+int(compressedSize)]

	// sizes come from the file; bound them before allocating
	if bodySize > MaxTraceBodySize {
		return nil, ErrTraceCorrupt(op, fmt.Sprintf("body size %d exceeds limit %d", bodySize, MaxTraceBodySize), nil)
	}

	var body []byte
	switch compressionType {
	case CompressionNone:
		body = payload

	case CompressionLZ4:
		if uint64(bodySize) > uint64(compressedSize)*lz4MaxExpansion+16 {
			return nil, ErrTraceCorrupt(op, fmt.Sprintf("body size %d impossible for %d LZ4 bytes", bodySize, compressedSize), nil)
		}
		body = make([]byte, bodySize)
		n, err := lz4.UncompressBlock(payload, body)
		if err != nil {
			return nil, ErrTraceCorrupt(op, "LZ4 decompression failed", err)
		}
		if n != int(bodySize) {
			return nil, ErrTraceCorrupt(op, fmt.Sprintf("LZ4 decompression size mismatch: got %d, expected %d", n, bodySize), nil)
		}

	case CompressionSnappy:
		decodedLen, err := snappy.DecodedLen(payload)
		if err != nil {
			return nil, ErrTraceCorrupt(op, "snappy decompression failed", err)
		}
		if decodedLen != int(bodySize) {
			return nil, ErrTraceCorrupt(op, fmt.Sprintf("snappy body size mismatch: got %d, expected %d", decodedLen, bodySize), nil)
		}
		body, err = snappy.Decode(nil, payload)
		if err != nil {
			return nil, ErrTraceCorrupt(op, "snappy decompression failed", err)
		}

	default:
		return nil, ErrTraceCorrupt(op, fmt.Sprintf("unsupported compression type: %d", compressionType), nil)
	}

	if len(body) != int(bodySize) {
		return nil, ErrTraceCorrupt(op, fmt.Sprintf("body size mismatch: got %d, expected %d", len(body), bodySize), nil)
	}
	if sum := crc32.ChecksumIEEE(body); sum != checksum {
		return nil, ErrTraceCorrupt(op, fmt.Sprintf("checksum mismatch: got %08x, expected %08x", sum, checksum), nil)
	}

	return decodeTraceBody(body)
}

func encodeTraceBody(t *Trace) []byte {
	buf := make([]byte, 0, 64+len(t.Sequence)*2+len(t.Steps)*(4+t.Frames))

	buf = binary.AppendUvarint(buf, uint64(len(t.Algorithm)))
	buf = append(buf, t.Algorithm...)
	buf = binary.AppendVarint(buf, int64(t.Frames))
	buf = binary.AppendVarint(buf, int64(t.Pages))

	buf = binary.AppendUvarint(buf, uint64(len(t.Sequence)))
	for _, id := range t.Sequence {
		buf = binary.AppendVarint(buf, int64(id))
	}

	buf = binary.AppendUvarint(buf, uint64(len(t.Steps)))
	for _, step := range t.Steps {
		hit := int64(0)
		if step.Hit {
			hit = 1
		}
		buf = binary.AppendVarint(buf, hit)
		buf = binary.AppendVarint(buf, int64(step.Index))
		buf = binary.AppendVarint(buf, int64(step.Page))
		buf = binary.AppendVarint(buf, int64(step.Frame))
		buf = binary.AppendVarint(buf, int64(step.Evicted))
		buf = binary.AppendUvarint(buf, uint64(len(step.Frames)))
		for _, slot := range step.Frames {
			buf = binary.AppendVarint(buf, int64(slot))
		}
	}

	return buf
}

// traceReader walks a varint body, remembering the first error
type traceReader struct {
	buf []byte
	err error
}

func (r *traceReader) varint() int64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Varint(r.buf)
	if n <= 0 {
		r.err = ErrTraceCorrupt("DecodeTrace", "truncated varint in trace body", nil)
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

func (r *traceReader) count() int {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf)
	if n <= 0 || v > uint64(len(r.buf)) {
		// every counted element takes at least one byte
		r.err = ErrTraceCorrupt("DecodeTrace", "invalid length in trace body", nil)
		return 0
	}
	r.buf = r.buf[n:]
	return int(v)
}

func (r *traceReader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > len(r.buf) {
		r.err = ErrTraceCorrupt("DecodeTrace", "truncated trace body", nil)
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

func decodeTraceBody(body []byte) (*Trace, error) {
	r := &traceReader{buf: body}

	t := &Trace{}
	t.Algorithm = Algorithm(r.bytes(r.count()))
	t.Frames = int(r.varint())
	t.Pages = int(r.varint())

	t.Sequence = make([]PageID, r.count())
	for i := range t.Sequence {
		t.Sequence[i] = PageID(r.varint())
	}

	t.Steps = make([]StepRecord, r.count())
	for i := range t.Steps {
		step := &t.Steps[i]
		step.Hit = r.varint() == 1
		step.Index = int(r.varint())
		step.Page = PageID(r.varint())
		step.Frame = int(r.varint())
		step.Evicted = PageID(r.varint())
		step.Frames = make([]PageID, r.count())
		for j := range step.Frames {
			step.Frames[j] = PageID(r.varint())
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	if len(r.buf) != 0 {
		return nil, ErrTraceCorrupt("DecodeTrace", fmt.Sprintf("%d trailing bytes in trace body", len(r.buf)), nil)
	}
	return t, nil
}
