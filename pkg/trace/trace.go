// Package trace records invocations as protobuf ActionTrace messages,
// written length delimited so a file can hold many of them.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/gogo/protobuf/proto"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/runtime"
)

// maxTraceSize bounds a single record so a corrupt prefix cannot force
// a huge allocation.
const maxTraceSize = 16 << 20

var ErrCorrupt = errors.New("corrupt trace stream")

// ActionTrace is the outcome of one invocation.
type ActionTrace struct {
	Receiver uint64 `protobuf:"varint,1,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Code     uint64 `protobuf:"varint,2,opt,name=code,proto3" json:"code,omitempty"`
	Action   uint64 `protobuf:"varint,3,opt,name=action,proto3" json:"action,omitempty"`
	Console  string `protobuf:"bytes,4,opt,name=console,proto3" json:"console,omitempty"`
	Error    string `protobuf:"bytes,5,opt,name=error,proto3" json:"error,omitempty"`
}

func (m *ActionTrace) Reset()         { *m = ActionTrace{} }
func (m *ActionTrace) String() string { return proto.CompactTextString(m) }
func (*ActionTrace) ProtoMessage()    {}

// FromResult builds the trace of inv given what the Invoker returned.
func FromResult(inv runtime.Invocation, res runtime.Result, err error) *ActionTrace {
	t := &ActionTrace{
		Receiver: uint64(inv.Receiver),
		Code:     uint64(inv.Code),
		Action:   uint64(inv.Action),
		Console:  res.Console,
	}
	if err != nil {
		t.Error = err.Error()
	}
	return t
}

// Summary is a one line human readable form.
func (m *ActionTrace) Summary() string {
	s := fmt.Sprintf("%s <= %s::%s %q", chain.Name(m.Receiver), chain.Name(m.Code), chain.Name(m.Action), m.Console)
	if m.Error != "" {
		s += " error: " + m.Error
	}
	return s
}

type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(t *ActionTrace) error {
	b, err := proto.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	buf := append(proto.EncodeVarint(uint64(len(b))), b...)
	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns io.EOF once the stream ends on a record boundary.
func (r *Reader) Next() (*ActionTrace, error) {
	size, err := readVarint(r.r)
	if err != nil {
		return nil, err
	}
	if size > maxTraceSize {
		return nil, fmt.Errorf("%w: record of %d bytes", ErrCorrupt, size)
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	t := &ActionTrace{}
	if err := proto.Unmarshal(b, t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return t, nil
}

// ReadAll drains r.
func ReadAll(r io.Reader) ([]*ActionTrace, error) {
	tr := NewReader(r)
	var out []*ActionTrace
	for {
		t, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
}

func readVarint(r io.ByteReader) (uint64, error) {
	var buf []byte
	for i := 0; i < 10; i++ {
		c, err := r.ReadByte()
		if err != nil {
			if i == 0 && errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("%w: truncated length prefix", ErrCorrupt)
		}
		buf = append(buf, c)
		if c < 0x80 {
			v, n := proto.DecodeVarint(buf)
			if n == 0 {
				break
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: bad length prefix", ErrCorrupt)
}
