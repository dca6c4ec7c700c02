package wasm

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasmerio/wasmer-go/wasmer"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/contract"
	"github.com/provenance-io/contract-kit-go/pkg/logger"
	"github.com/provenance-io/contract-kit-go/pkg/runtime"
)

var self = chain.MustParseName("mycontract")

func newTestHost(t *testing.T) *Host {
	t.Helper()
	code, err := os.ReadFile("testdata/hello.wat")
	require.NoError(t, err)
	h, err := NewHost(code, WithLogger(logger.Test(t)))
	require.NoError(t, err)
	return h
}

func invoke(t *testing.T, h *Host, action string, data []byte) (runtime.Result, error) {
	t.Helper()
	return h.Invoke(context.Background(), runtime.Invocation{
		Receiver: self,
		Code:     self,
		Action:   chain.MustParseName(action),
		Data:     data,
	})
}

func TestHost_HelloWorld(t *testing.T) {
	h := newTestHost(t)

	res, err := invoke(t, h, "helloworld", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", res.Console)

	res, err = invoke(t, h, "hellocstr", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", res.Console)
}

func TestHost_RepeatedInvocationsAreIdentical(t *testing.T) {
	h := newTestHost(t)

	var lines []string
	for i := 0; i < 5; i++ {
		res, err := invoke(t, h, "helloworld", nil)
		require.NoError(t, err)
		lines = append(lines, res.Console)
	}
	assert.Equal(t, strings.Repeat("Hello, world!\n", 5), strings.Join(lines, ""))
}

func TestHost_BinaryModule(t *testing.T) {
	text, err := os.ReadFile("testdata/hello.wat")
	require.NoError(t, err)
	bin, err := wasmer.Wat2Wasm(string(text))
	require.NoError(t, err)

	h, err := NewHost(bin)
	require.NoError(t, err)
	assert.Contains(t, h.Exports(), "apply")
	assert.Contains(t, h.Exports(), "memory")

	res, err := invoke(t, h, "helloworld", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", res.Console)
}

func TestHost_ActionData(t *testing.T) {
	h := newTestHost(t)

	res, err := invoke(t, h, "echo", []byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, "ping", res.Console)

	res, err = invoke(t, h, "echo", nil)
	require.NoError(t, err)
	assert.Empty(t, res.Console)
}

func TestHost_ReadActionDataPartial(t *testing.T) {
	h := newTestHost(t)

	// copies only the two bytes asked for, then len 0 reports the full size
	res, err := invoke(t, h, "peek", []byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, "pi4", res.Console)

	res, err = invoke(t, h, "peek", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "a1", res.Console)
}

func TestHost_Printers(t *testing.T) {
	h := newTestHost(t)

	res, err := invoke(t, h, "whoami", nil)
	require.NoError(t, err)
	assert.Equal(t, "mycontract 18446744073709551615 -1", res.Console)
}

func TestHost_Checks(t *testing.T) {
	h := newTestHost(t)

	tests := []struct {
		action  string
		want    *contract.CheckError
		console string
	}{
		{action: "failmsg", want: &contract.CheckError{Message: "bad input"}, console: "Hello, world!\n"},
		{action: "failcode", want: &contract.CheckError{Code: 7}},
		{action: "failstr", want: &contract.CheckError{Message: "c string"}},
		{action: "transfer", want: &contract.CheckError{Message: "unknown action"}},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			res, err := invoke(t, h, tt.action, nil)
			var ce *contract.CheckError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.want, ce)
			assert.Equal(t, tt.console, res.Console)
		})
	}
}

func TestHost_MemoryAccess(t *testing.T) {
	h := newTestHost(t)

	_, err := invoke(t, h, "oob", nil)
	require.ErrorIs(t, err, ErrMemoryAccess)

	// a failed invocation does not poison the next one
	res, err := invoke(t, h, "helloworld", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", res.Console)
}

func TestHost_Notification(t *testing.T) {
	h := newTestHost(t)

	res, err := h.Invoke(context.Background(), runtime.Invocation{
		Receiver: self,
		Code:     chain.MustParseName("eosio.token"),
		Action:   chain.MustParseName("helloworld"),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Console)
}

func TestHost_ConcurrentInvocations(t *testing.T) {
	h := newTestHost(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := invoke(t, h, "helloworld", nil)
			if err == nil && res.Console != "Hello, world!\n" {
				err = errors.New("unexpected console " + res.Console)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestHost_CancelledContext(t *testing.T) {
	h := newTestHost(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Invoke(ctx, runtime.Invocation{Receiver: self, Code: self})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewHost_Errors(t *testing.T) {
	code, err := os.ReadFile("testdata/noapply.wat")
	require.NoError(t, err)
	_, err = NewHost(code)
	require.ErrorIs(t, err, ErrMissingApply)

	_, err = NewHost([]byte("(module (func"))
	require.Error(t, err)

	_, err = NewHost([]byte{0x00, 0x61, 0x73, 0x6d, 0xff})
	require.Error(t, err)
}
