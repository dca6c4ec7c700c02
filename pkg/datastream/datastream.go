// Package datastream reads and writes the binary layout of action data:
// fixed width little endian integers and LEB128 length prefixes.
package datastream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogo/protobuf/proto"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
)

const maxVarUint32Len = 5

var (
	ErrOutOfRange = errors.New("read past end of datastream")
	ErrOverflow   = errors.New("varuint32 overflow")
)

// Stream is a read cursor over action data handed to a contract.
// A failed read leaves the cursor where it was.
type Stream struct {
	buf []byte
	pos int
}

func NewStream(b []byte) *Stream {
	return &Stream{buf: b}
}

func (s *Stream) Pos() int { return s.pos }

func (s *Stream) Remaining() int { return len(s.buf) - s.pos }

// Bytes returns the unread tail without consuming it.
func (s *Stream) Bytes() []byte { return s.buf[s.pos:] }

func (s *Stream) Read(n int) ([]byte, error) {
	if n < 0 || n > s.Remaining() {
		return nil, fmt.Errorf("%w: want %d bytes at %d, have %d", ErrOutOfRange, n, s.pos, s.Remaining())
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

func (s *Stream) ReadUint8() (uint8, error) {
	b, err := s.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *Stream) ReadUint16() (uint16, error) {
	b, err := s.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (s *Stream) ReadUint32() (uint32, error) {
	b, err := s.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (s *Stream) ReadUint64() (uint64, error) {
	b, err := s.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadVarUint32 reads an unsigned LEB128 value, the same wire form as
// a protobuf varint, of at most five bytes.
func (s *Stream) ReadVarUint32() (uint32, error) {
	head := s.Bytes()
	if len(head) > maxVarUint32Len {
		head = head[:maxVarUint32Len]
	}
	v, n := proto.DecodeVarint(head)
	if n == 0 {
		if len(head) == maxVarUint32Len {
			return 0, fmt.Errorf("%w: varuint32 longer than %d bytes at %d", ErrOverflow, maxVarUint32Len, s.pos)
		}
		return 0, fmt.Errorf("%w: truncated varuint32 at %d", ErrOutOfRange, s.pos)
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d at %d", ErrOverflow, v, s.pos)
	}
	s.pos += n
	return uint32(v), nil
}

// ReadBytes reads a varuint32 length prefix followed by that many bytes.
func (s *Stream) ReadBytes() ([]byte, error) {
	start := s.pos
	l, err := s.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	b, err := s.Read(int(l))
	if err != nil {
		s.pos = start
		return nil, err
	}
	return b, nil
}

func (s *Stream) ReadString() (string, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Stream) ReadName() (chain.Name, error) {
	v, err := s.ReadUint64()
	return chain.Name(v), err
}

// Encoder builds action data in the layout Stream reads.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) WriteUint8(v uint8) *Encoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *Encoder) WriteUint16(v uint16) *Encoder {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
	return e
}

func (e *Encoder) WriteUint32(v uint32) *Encoder {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
	return e
}

func (e *Encoder) WriteUint64(v uint64) *Encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

func (e *Encoder) WriteVarUint32(v uint32) *Encoder {
	e.buf = append(e.buf, proto.EncodeVarint(uint64(v))...)
	return e
}

func (e *Encoder) WriteBytes(b []byte) *Encoder {
	e.WriteVarUint32(uint32(len(b)))
	e.buf = append(e.buf, b...)
	return e
}

func (e *Encoder) WriteString(s string) *Encoder {
	return e.WriteBytes([]byte(s))
}

func (e *Encoder) WriteName(n chain.Name) *Encoder {
	return e.WriteUint64(uint64(n))
}
