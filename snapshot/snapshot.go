package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/observation"
)

// magic identifies a curvefit snapshot, version 1.
var magic = [4]byte{'C', 'F', 'S', '1'}

// payload kinds.
const (
	kindObservations byte = 1
	kindResult       byte = 2
)

// headerSize is magic + kind + compression + payload length + checksum.
const headerSize = 4 + 1 + 1 + 4 + 8

// ResultRecord is the persisted form of a fit outcome. It carries the
// values a consumer needs to reuse or display a fit without holding the
// engine that produced it; the model is referenced by family name.
type ResultRecord struct {
	Model    string
	Popt     []float64
	Psigma   []float64
	Pcov     [][]float64
	ChisqDOF float64
	DOF      int
	NObs     int
}

// EncodeObservations serializes an observation set.
func EncodeObservations(obs observation.Set, comp Compression) ([]byte, error) {
	n := obs.Len()
	payload := binary.LittleEndian.AppendUint32(nil, uint32(n))
	payload = appendFloats(payload, obs.X())
	payload = appendFloats(payload, obs.Y())
	payload = appendFloats(payload, obs.Weights())

	return seal(kindObservations, comp, payload)
}

// DecodeObservations deserializes an observation set.
func DecodeObservations(data []byte) (observation.Set, error) {
	payload, err := open(data, kindObservations)
	if err != nil {
		return observation.Set{}, err
	}

	r := reader{buf: payload}
	n := int(r.uint32())
	x := r.floats(n)
	y := r.floats(n)
	w := r.floats(n)
	if r.failed || r.rest() != 0 {
		return observation.Set{}, fmt.Errorf("%w: malformed observation payload", ErrCorruptSnapshot)
	}

	return observation.NewSet(x, y, w)
}

// EncodeResult serializes a fit result through its read-only surface.
func EncodeResult(res *fit.Result, comp Compression) ([]byte, error) {
	name := res.Model().Name()
	arity := len(res.Popt)

	payload := binary.LittleEndian.AppendUint16(nil, uint16(len(name)))
	payload = append(payload, name...)
	payload = binary.LittleEndian.AppendUint32(payload, uint32(arity))
	payload = appendFloats(payload, res.Popt)
	payload = appendFloats(payload, res.Psigma)
	for i := 0; i < arity; i++ {
		payload = appendFloats(payload, res.Pcov[i])
	}
	payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(res.ChisqDOF))
	payload = binary.LittleEndian.AppendUint32(payload, uint32(res.DOF))
	payload = binary.LittleEndian.AppendUint32(payload, uint32(res.NObs))

	return seal(kindResult, comp, payload)
}

// DecodeResult deserializes a fit result record.
func DecodeResult(data []byte) (ResultRecord, error) {
	payload, err := open(data, kindResult)
	if err != nil {
		return ResultRecord{}, err
	}

	r := reader{buf: payload}
	nameLen := int(r.uint16())
	name := r.bytes(nameLen)
	arity := int(r.uint32())
	rec := ResultRecord{
		Model:  string(name),
		Popt:   r.floats(arity),
		Psigma: r.floats(arity),
	}
	rec.Pcov = make([][]float64, arity)
	for i := 0; i < arity; i++ {
		rec.Pcov[i] = r.floats(arity)
	}
	rec.ChisqDOF = math.Float64frombits(r.uint64())
	rec.DOF = int(r.uint32())
	rec.NObs = int(r.uint32())
	if r.failed || r.rest() != 0 {
		return ResultRecord{}, fmt.Errorf("%w: malformed result payload", ErrCorruptSnapshot)
	}

	return rec, nil
}

// seal compresses the payload and wraps it in the snapshot envelope.
func seal(kind byte, comp Compression, payload []byte) ([]byte, error) {
	codec, err := newCodec(comp)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+len(compressed))
	out = append(out, magic[:]...)
	out = append(out, kind, byte(comp))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(compressed)))
	out = binary.LittleEndian.AppendUint64(out, xxhash.Sum64(compressed))
	out = append(out, compressed...)

	return out, nil
}

// open validates the envelope and returns the decompressed payload.
func open(data []byte, wantKind byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: truncated envelope (%d bytes)", ErrCorruptSnapshot, len(data))
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptSnapshot)
	}
	kind := data[4]
	comp := Compression(data[5])
	size := int(binary.LittleEndian.Uint32(data[6:10]))
	sum := binary.LittleEndian.Uint64(data[10:18])

	if kind != wantKind {
		return nil, fmt.Errorf("%w: payload kind %d, want %d", ErrCorruptSnapshot, kind, wantKind)
	}
	if len(data)-headerSize != size {
		return nil, fmt.Errorf("%w: payload size %d, envelope says %d", ErrCorruptSnapshot, len(data)-headerSize, size)
	}
	compressed := data[headerSize:]
	if xxhash.Sum64(compressed) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSnapshot)
	}

	codec, err := newCodec(comp)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return payload, nil
}

func appendFloats(buf []byte, vals []float64) []byte {
	for _, v := range vals {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

// reader consumes a payload with sticky bounds checking; failed flips on
// the first short read and stays set.
type reader struct {
	buf    []byte
	off    int
	failed bool
}

func (r *reader) take(n int) []byte {
	if r.failed || r.off+n > len(r.buf) {
		r.failed = true
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n

	return b
}

func (r *reader) bytes(n int) []byte { return r.take(n) }

func (r *reader) uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}

	return binary.LittleEndian.Uint16(b)
}

func (r *reader) uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}

	return binary.LittleEndian.Uint32(b)
}

func (r *reader) uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}

	return binary.LittleEndian.Uint64(b)
}

func (r *reader) floats(n int) []float64 {
	if n < 0 {
		r.failed = true
		return nil
	}
	b := r.take(n * 8)
	if b == nil {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}

	return out
}

func (r *reader) rest() int {
	if r.failed {
		return -1
	}

	return len(r.buf) - r.off
}
