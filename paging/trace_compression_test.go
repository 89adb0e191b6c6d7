package paging

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"runtime"
	"testing"

	"github.com/golang/snappy"
)

// rawTrace builds an encoded trace with a hand-written header
func rawTrace(typ CompressionType, bodySize uint32, payload []byte) []byte {
	buf := make([]byte, TraceHeaderSize+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], TraceMagic)
	buf[2] = uint8(typ)
	buf[3] = TraceVersion
	binary.LittleEndian.PutUint32(buf[4:8], bodySize)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(payload)))
	copy(buf[TraceHeaderSize:], payload)
	return buf
}

// cyclicTrace runs a long repetitive sequence so that compression pays off
func cyclicTrace(t *testing.T, alg Algorithm) *Trace {
	t.Helper()
	sequence := make([]PageID, 400)
	for i := range sequence {
		sequence[i] = PageID(i % 7)
	}
	sim := newTestSimulator(t, alg, 4, sequence)
	if _, err := sim.RunToCompletion(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return sim.Trace()
}

func TestTraceRoundTrip(t *testing.T) {
	algorithms := []struct {
		name string
		typ  CompressionType
	}{
		{"None", CompressionNone},
		{"LZ4", CompressionLZ4},
		{"Snappy", CompressionSnappy},
	}

	trace := cyclicTrace(t, LRU)

	for _, alg := range algorithms {
		t.Run(alg.name, func(t *testing.T) {
			data, err := EncodeTrace(trace, alg.typ)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			if CompressionType(data[2]) != alg.typ {
				t.Errorf("Expected %s in header, got %s", alg.typ, CompressionType(data[2]))
			}

			decoded, err := DecodeTrace(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if !reflect.DeepEqual(decoded, trace) {
				t.Error("Decoded trace differs from original")
			}
			if decoded.Summary() != trace.Summary() {
				t.Errorf("Summary mismatch: %+v vs %+v", decoded.Summary(), trace.Summary())
			}

			t.Logf("%s trace: %d bytes for %d steps", alg.typ, len(data), len(trace.Steps))
		})
	}
}

func TestTraceCompressionShrinksRepetitiveRuns(t *testing.T) {
	trace := cyclicTrace(t, FIFO)

	plain, err := EncodeTrace(trace, CompressionNone)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for _, typ := range []CompressionType{CompressionLZ4, CompressionSnappy} {
		packed, err := EncodeTrace(trace, typ)
		if err != nil {
			t.Fatalf("Encode with %s failed: %v", typ, err)
		}
		if len(packed) >= len(plain) {
			t.Errorf("%s: expected %d < %d bytes", typ, len(packed), len(plain))
		}
	}
}

func TestTraceSmallBodyFallsBackToNone(t *testing.T) {
	sim := newTestSimulator(t, OPT, 2, refs(1, 2, 3))
	sim.RunToCompletion()
	trace := sim.Trace()

	for _, typ := range []CompressionType{CompressionLZ4, CompressionSnappy} {
		data, err := EncodeTrace(trace, typ)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if CompressionType(data[2]) != CompressionNone {
			t.Errorf("%s: expected fallback to none for a tiny body, got %s", typ, CompressionType(data[2]))
		}

		decoded, err := DecodeTrace(data)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !reflect.DeepEqual(decoded, trace) {
			t.Error("Decoded trace differs from original")
		}
	}
}

func TestTraceHeader(t *testing.T) {
	trace := cyclicTrace(t, MRU)
	data, err := EncodeTrace(trace, CompressionSnappy)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if magic := binary.LittleEndian.Uint16(data[0:2]); magic != TraceMagic {
		t.Errorf("Expected magic %04x, got %04x", TraceMagic, magic)
	}
	if data[3] != TraceVersion {
		t.Errorf("Expected version %d, got %d", TraceVersion, data[3])
	}
	compressedSize := binary.LittleEndian.Uint32(data[8:12])
	if int(compressedSize) != len(data)-TraceHeaderSize {
		t.Errorf("Compressed size %d does not match payload %d", compressedSize, len(data)-TraceHeaderSize)
	}
}

func TestDecodeTraceRejectsCorruption(t *testing.T) {
	trace := cyclicTrace(t, OPT)
	valid, err := EncodeTrace(trace, CompressionNone)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	corrupt := func(mutate func(b []byte) []byte) []byte {
		return mutate(bytes.Clone(valid))
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", valid[:TraceHeaderSize-1]},
		{"bad magic", corrupt(func(b []byte) []byte { b[0] ^= 0xFF; return b })},
		{"bad version", corrupt(func(b []byte) []byte { b[3] = 9; return b })},
		{"bad compression", corrupt(func(b []byte) []byte { b[2] = 7; return b })},
		{"truncated payload", valid[:len(valid)-1]},
		{"flipped body byte", corrupt(func(b []byte) []byte { b[TraceHeaderSize+5] ^= 0x01; return b })},
		{"bad checksum", corrupt(func(b []byte) []byte { b[12] ^= 0x01; return b })},
		{"huge lz4 body size", rawTrace(CompressionLZ4, 0xFFFFFFF0, []byte{1, 2, 3, 4})},
		{"lz4 body beyond expansion", rawTrace(CompressionLZ4, 10000, []byte{1, 2, 3, 4})},
		{"huge snappy body size", rawTrace(CompressionSnappy, 0xFFFFFFF0, snappy.Encode(nil, []byte("abc")))},
		{"snappy length disagrees with header", rawTrace(CompressionSnappy, 1000, snappy.Encode(nil, []byte("abc")))},
		{"huge plain body size", rawTrace(CompressionNone, MaxTraceBodySize+1, []byte{1, 2, 3, 4})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTrace(tt.data)
			if !IsErrorCode(err, ErrCodeTraceCorrupted) {
				t.Errorf("Expected trace corrupted error, got %v", err)
			}
		})
	}
}

// TestDecodeTraceBoundsAllocation checks that header sizes are not trusted
func TestDecodeTraceBoundsAllocation(t *testing.T) {
	data := rawTrace(CompressionLZ4, 0xFFFFFFF0, []byte{1, 2, 3, 4})

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := DecodeTrace(data)
	runtime.ReadMemStats(&after)

	if !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Fatalf("Expected trace corrupted error, got %v", err)
	}
	if delta := after.TotalAlloc - before.TotalAlloc; delta > 1<<20 {
		t.Errorf("Expected a small allocation for a 20 byte trace, got %d bytes", delta)
	}
}

func TestDecodeTraceRejectsCorruptSnappyPayload(t *testing.T) {
	trace := cyclicTrace(t, LRU)
	data, err := EncodeTrace(trace, CompressionSnappy)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// zero the payload; the snappy preamble no longer matches the body size
	for i := TraceHeaderSize; i < len(data); i++ {
		data[i] = 0
	}
	if _, err := DecodeTrace(data); !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected trace corrupted error, got %v", err)
	}
}

func TestDecodeTraceBodyRejectsTrailingBytes(t *testing.T) {
	sim := newTestSimulator(t, FIFO, 2, refs(0, 1))
	sim.RunToCompletion()

	body := append(encodeTraceBody(sim.Trace()), 0x00)
	if _, err := decodeTraceBody(body); !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected trace corrupted error, got %v", err)
	}
	if _, err := decodeTraceBody(body[:len(body)-3]); !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected trace corrupted error for truncated body, got %v", err)
	}
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		input    string
		expected CompressionType
		wantErr  bool
	}{
		{"", CompressionNone, false},
		{"none", CompressionNone, false},
		{"LZ4", CompressionLZ4, false},
		{" snappy ", CompressionSnappy, false},
		{"zstd", CompressionNone, true},
	}

	for _, tt := range tests {
		got, err := ParseCompressionType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCompressionType(%q): unexpected error state %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseCompressionType(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}
