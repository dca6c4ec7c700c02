// Package wasm runs contracts compiled to WebAssembly. The host compiles
// a module once and instantiates it per invocation, supplying the print,
// assert and action data imports a contract expects and calling its
// apply(receiver, code, action) export.
package wasm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wasmerio/wasmer-go/wasmer"

	"github.com/provenance-io/contract-kit-go/pkg/logger"
	"github.com/provenance-io/contract-kit-go/pkg/runtime"
)

const (
	applyExport  = "apply"
	memoryExport = "memory"
)

var (
	ErrMissingApply = errors.New("module does not export apply")
	ErrMemoryAccess = errors.New("memory access out of bounds")
)

type Option func(*Host)

func WithLogger(lggr logger.Logger) Option {
	return func(h *Host) { h.lggr = lggr }
}

// Host is a runtime.Invoker for one compiled module.
type Host struct {
	mu     sync.Mutex
	lggr   logger.Logger
	store  *wasmer.Store
	module *wasmer.Module
}

var _ runtime.Invoker = (*Host)(nil)

// NewHost compiles code, which is either a binary module or its text
// format.
func NewHost(code []byte, opts ...Option) (*Host, error) {
	h := &Host{lggr: logger.Nop()}
	for _, opt := range opts {
		opt(h)
	}

	if isText(code) {
		bin, err := wasmer.Wat2Wasm(string(code))
		if err != nil {
			return nil, fmt.Errorf("wat2wasm: %w", err)
		}
		code = bin
	}

	h.store = wasmer.NewStore(wasmer.NewEngine())
	module, err := wasmer.NewModule(h.store, code)
	if err != nil {
		return nil, fmt.Errorf("compile module: %w", err)
	}
	h.module = module

	hasApply := false
	for _, exp := range module.Exports() {
		if exp.Name() == applyExport {
			hasApply = true
		}
	}
	if !hasApply {
		return nil, ErrMissingApply
	}
	for _, imp := range module.Imports() {
		h.lggr.Debugw("module import", "module", imp.Module(), "name", imp.Name())
	}
	return h, nil
}

// Exports lists the names the module exports.
func (h *Host) Exports() []string {
	exports := h.module.Exports()
	names := make([]string, 0, len(exports))
	for _, exp := range exports {
		names = append(names, exp.Name())
	}
	return names
}

// Invoke instantiates the module and calls apply. Console output written
// before a failure is returned along with the error.
func (h *Host) Invoke(ctx context.Context, inv runtime.Invocation) (runtime.Result, error) {
	if err := ctx.Err(); err != nil {
		return runtime.Result{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	st := &invocation{inv: inv}
	instance, err := wasmer.NewInstance(h.module, h.imports(st))
	if err != nil {
		return runtime.Result{}, fmt.Errorf("instantiate: %w", err)
	}
	st.memory, err = instance.Exports.GetMemory(memoryExport)
	if err != nil {
		return runtime.Result{}, fmt.Errorf("memory export: %w", err)
	}
	apply, err := instance.Exports.GetFunction(applyExport)
	if err != nil {
		return runtime.Result{}, fmt.Errorf("%w: %v", ErrMissingApply, err)
	}

	h.lggr.Debugw("apply", "receiver", inv.Receiver, "code", inv.Code, "action", inv.Action, "data_len", len(inv.Data))
	_, err = apply(int64(inv.Receiver), int64(inv.Code), int64(inv.Action))
	res := runtime.Result{Console: st.console.String()}
	if err != nil {
		// the trap only carries text; return the import's own error
		if st.abort != nil {
			err = st.abort
		}
		h.lggr.Debugw("apply failed", "action", inv.Action, "err", err)
		return res, err
	}
	return res, nil
}

// invocation is the state the imports of one instance share.
type invocation struct {
	inv     runtime.Invocation
	memory  *wasmer.Memory
	console bytes.Buffer
	abort   error
}

func (st *invocation) fail(err error) ([]wasmer.Value, error) {
	st.abort = err
	return nil, err
}

func (st *invocation) slice(ptr, length int32) ([]byte, error) {
	if st.memory == nil {
		return nil, fmt.Errorf("%w: memory not yet exported", ErrMemoryAccess)
	}
	data := st.memory.Data()
	start, end := int64(uint32(ptr)), int64(uint32(ptr))+int64(uint32(length))
	if end > int64(len(data)) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrMemoryAccess, start, end, len(data))
	}
	return data[start:end], nil
}

// cstring reads a NUL terminated string starting at ptr.
func (st *invocation) cstring(ptr int32) (string, error) {
	if st.memory == nil {
		return "", fmt.Errorf("%w: memory not yet exported", ErrMemoryAccess)
	}
	data := st.memory.Data()
	start := int64(uint32(ptr))
	if start >= int64(len(data)) {
		return "", fmt.Errorf("%w: string at %d of %d", ErrMemoryAccess, start, len(data))
	}
	end := bytes.IndexByte(data[start:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string at %d", ErrMemoryAccess, start)
	}
	return string(data[start : start+int64(end)]), nil
}

func isText(code []byte) bool {
	trimmed := bytes.TrimLeft(code, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '(' || bytes.HasPrefix(trimmed, []byte(";;")))
}
