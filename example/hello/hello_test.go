package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/datastream"
	"github.com/provenance-io/contract-kit-go/pkg/runtime"
)

var (
	self       = chain.MustParseName("mycontract")
	helloworld = chain.MustParseName("helloworld")
)

func TestNew_AcceptsAnything(t *testing.T) {
	t.Parallel()

	for _, ds := range []*datastream.Stream{nil, datastream.NewStream(nil), datastream.NewStream([]byte{0xff, 0x00, 0x42})} {
		h := New(chain.MustParseName("alice"), chain.Name(0), ds)
		require.NotNil(t, h)
		assert.Equal(t, chain.MustParseName("alice"), h.Self())
		assert.True(t, h.FirstReceiver().IsEmpty())
	}
}

func TestHelloWorld_PrintsOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := New(self, self, nil)
	h.SetConsole(&buf)

	require.NoError(t, h.HelloWorld())
	assert.Equal(t, "Hello, world!\n", buf.String())
}

func TestHelloWorld_IgnoresActionData(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := New(self, self, datastream.NewStream([]byte("unused payload")))
	h.SetConsole(&buf)

	require.NoError(t, h.HelloWorld())
	assert.Equal(t, "Hello, world!\n", buf.String())
	assert.Equal(t, len("unused payload"), h.DataStream().Remaining())
}

func TestDispatcher_RepeatedCallsInOrder(t *testing.T) {
	t.Parallel()

	d, err := dispatcher()
	require.NoError(t, err)
	assert.Equal(t, []string{"helloworld"}, d.Actions())

	const n = 10
	var lines []string
	for i := 0; i < n; i++ {
		res, err := d.Invoke(context.Background(), runtime.Invocation{Receiver: self, Code: self, Action: helloworld})
		require.NoError(t, err)
		lines = append(lines, res.Console)
	}
	assert.Equal(t, strings.Repeat("Hello, world!\n", n), strings.Join(lines, ""))
}

func TestStartWith(t *testing.T) {
	t.Parallel()

	d, err := dispatcher()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runtime.StartWith(context.Background(), d, []string{"helloworld"}, &out))
	assert.Equal(t, "Hello, world!\n", out.String())
}
