package contract

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/datastream"
)

func TestNew_Identities(t *testing.T) {
	t.Parallel()

	self := chain.MustParseName("mycontract")
	first := chain.MustParseName("eosio.token")
	ds := datastream.NewStream([]byte{1, 2, 3})

	c := New(self, first, ds)
	assert.Equal(t, self, c.Self())
	assert.Equal(t, first, c.FirstReceiver())
	assert.Same(t, ds, c.DataStream())
	assert.Same(t, &c, c.Base())
}

func TestNew_NilStream(t *testing.T) {
	t.Parallel()

	c := New(0, 0, nil)
	require.NotNil(t, c.DataStream())
	assert.Equal(t, 0, c.DataStream().Remaining())
}

func TestPrint_DiscardedUntilBound(t *testing.T) {
	t.Parallel()

	c := New(0, 0, nil)
	c.Print("lost")

	var buf bytes.Buffer
	c.SetConsole(&buf)
	c.Print("Hello", ", ")
	c.Printf("%s!\n", "world")
	assert.Equal(t, "Hello, world!\n", buf.String())

	c.SetConsole(nil)
	c.Print("lost again")
	assert.Equal(t, "Hello, world!\n", buf.String())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, Check(true, "unused"))
	require.NoError(t, CheckCode(true, 1))

	err := Check(false, "quantity must be positive")
	var ce *CheckError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "assertion failure with message: quantity must be positive", err.Error())

	err = CheckCode(false, 42)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, uint64(42), ce.Code)
	assert.Equal(t, "assertion failure with error code: 42", err.Error())
}

func TestParseCheckError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   *CheckError
	}{
		{
			name:   "message",
			output: "Error 3050003: eosio_assert_message assertion failure\nassertion failure with message: bad input\npending console output:",
			want:   &CheckError{Message: "bad input"},
		},
		{
			name:   "code",
			output: "assertion failure with error code: 7",
			want:   &CheckError{Code: 7},
		},
		{
			name:   "code wins",
			output: "assertion failure with message: x\nassertion failure with error code: 9\n",
			want:   &CheckError{Code: 9},
		},
		{
			name:   "round trip",
			output: fmt.Sprintf("trap: %v", Check(false, "nope")),
			want:   &CheckError{Message: "nope"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseCheckError(tt.output)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ParseCheckError("connection refused")
	assert.False(t, ok)
}
