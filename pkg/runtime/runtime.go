// Package runtime routes host invocations to contract actions written in
// Go and offers the entry point for running such a contract natively.
package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/contract"
	"github.com/provenance-io/contract-kit-go/pkg/datastream"
)

var ErrUnknownAction = errors.New("unknown action")

// Invocation is one action delivered by the host to a receiver.
type Invocation struct {
	Receiver chain.Name
	Code     chain.Name
	Action   chain.Name
	Data     []byte
}

// IsNotification reports whether the action was originally sent to
// another account's code and is only being observed by Receiver.
func (inv Invocation) IsNotification() bool {
	return inv.Code != inv.Receiver
}

type Result struct {
	Console string
}

// Invoker runs one invocation to completion. Implementations: the
// native Dispatcher and the wasm Host.
type Invoker interface {
	Invoke(ctx context.Context, inv Invocation) (Result, error)
}

// Contract is satisfied by any type embedding contract.Contract.
type Contract interface {
	Base() *contract.Contract
}

// Factory constructs a contract for one invocation.
type Factory[C Contract] func(receiver, code chain.Name, ds *datastream.Stream) C

// Action is an action handler on contract type C.
type Action[C Contract] func(c C) error

type handler func(inv Invocation, console *bytes.Buffer) error

// Dispatcher is the Invoker for contracts compiled into the process.
// Each invocation gets a fresh contract; invocations are serialized.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[chain.Name]handler
}

// NewDispatcher registers actions by name.
func NewDispatcher[C Contract](factory Factory[C], actions map[string]Action[C]) (*Dispatcher, error) {
	if factory == nil {
		return nil, errors.New("nil contract factory")
	}
	d := &Dispatcher{handlers: make(map[chain.Name]handler, len(actions))}
	for name, action := range actions {
		n, err := chain.ParseName(name)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", name, err)
		}
		if action == nil {
			return nil, fmt.Errorf("action %q: nil handler", name)
		}
		action := action
		d.handlers[n] = func(inv Invocation, console *bytes.Buffer) error {
			c := factory(inv.Receiver, inv.Code, datastream.NewStream(inv.Data))
			c.Base().SetConsole(console)
			return action(c)
		}
	}
	return d, nil
}

// Actions returns the registered action names, sorted.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.handlers))
	for n := range d.handlers {
		names = append(names, n.String())
	}
	sort.Strings(names)
	return names
}

// Invoke ignores notifications, matching a contract that only handles
// actions addressed to its own code.
func (d *Dispatcher) Invoke(ctx context.Context, inv Invocation) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if inv.IsNotification() {
		return Result{}, nil
	}
	h, ok := d.handlers[inv.Action]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAction, inv.Action)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var console bytes.Buffer
	err := h(inv, &console)
	return Result{Console: console.String()}, err
}
