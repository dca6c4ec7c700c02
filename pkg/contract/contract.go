// Package contract is the base every contract type embeds. It carries
// the identities the host supplies at invocation time, the action data
// stream, and the print channel.
package contract

import (
	"fmt"
	"io"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/datastream"
)

type Contract struct {
	self    chain.Name
	first   chain.Name
	ds      *datastream.Stream
	console io.Writer
}

// New never fails; a nil ds is replaced with an empty stream.
func New(receiver, code chain.Name, ds *datastream.Stream) Contract {
	if ds == nil {
		ds = datastream.NewStream(nil)
	}
	return Contract{
		self:    receiver,
		first:   code,
		ds:      ds,
		console: io.Discard,
	}
}

// Self is the account the contract is deployed on.
func (c *Contract) Self() chain.Name { return c.self }

// FirstReceiver is the account whose code the action was originally
// sent to. It differs from Self for notifications.
func (c *Contract) FirstReceiver() chain.Name { return c.first }

func (c *Contract) DataStream() *datastream.Stream { return c.ds }

// Base lets the runtime reach the embedded Contract of any contract type.
func (c *Contract) Base() *Contract { return c }

// SetConsole binds the host print channel. Until it is called output is
// discarded.
func (c *Contract) SetConsole(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	c.console = w
}

// Print writes to the host print channel. A console write error is
// the host's concern and is not reported back to the action.
func (c *Contract) Print(args ...any) {
	_, _ = fmt.Fprint(c.console, args...)
}

func (c *Contract) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.console, format, args...)
}
