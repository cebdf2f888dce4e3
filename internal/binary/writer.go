package binary

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer provides buffered writing of NBT primitives. All multi-byte values
// are big-endian.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteI8 writes a signed 8-bit integer.
func (w *Writer) WriteI8(v int8) {
	w.buf.WriteByte(byte(v))
}

// WriteU16 writes an unsigned big-endian 16-bit integer.
func (w *Writer) WriteU16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteI16 writes a signed big-endian 16-bit integer.
func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v))
}

// WriteI32 writes a signed big-endian 32-bit integer.
func (w *Writer) WriteI32(v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	w.buf.Write(buf[:])
}

// WriteI64 writes a signed big-endian 64-bit integer.
func (w *Writer) WriteI64(v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	w.buf.Write(buf[:])
}

// WriteF32 writes a big-endian IEEE-754 32-bit float.
func (w *Writer) WriteF32(v float32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	w.buf.Write(buf[:])
}

// WriteF64 writes a big-endian IEEE-754 64-bit float.
func (w *Writer) WriteF64(v float64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	w.buf.Write(buf[:])
}

// WriteString writes a uint16 length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteU16(uint16(len(s)))
	w.buf.WriteString(s)
}
