package runtime

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
)

// DefaultAccount receives actions when no --receiver is given.
const DefaultAccount = "mycontract"

// Start runs one action of a natively compiled contract, taken from the
// process arguments, and exits non-zero if it fails.
func Start(d *Dispatcher) {
	if err := StartWith(context.Background(), d, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// StartWith parses [--receiver name] [--code name] [--data hex] <action>
// and writes the contract's console output to stdout.
func StartWith(ctx context.Context, d *Dispatcher, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("contract", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	receiver := fs.String("receiver", DefaultAccount, "account receiving the action")
	code := fs.String("code", "", "account whose code the action was sent to (default receiver)")
	data := fs.String("data", "", "hex encoded action data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one action, one of %v", d.Actions())
	}
	if *code == "" {
		*code = *receiver
	}

	var inv Invocation
	var err error
	if inv.Receiver, err = chain.ParseName(*receiver); err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	if inv.Code, err = chain.ParseName(*code); err != nil {
		return fmt.Errorf("code: %w", err)
	}
	if inv.Action, err = chain.ParseName(fs.Arg(0)); err != nil {
		return fmt.Errorf("action: %w", err)
	}
	if inv.Data, err = hex.DecodeString(*data); err != nil {
		return fmt.Errorf("data: %w", err)
	}

	res, err := d.Invoke(ctx, inv)
	if _, werr := io.WriteString(stdout, res.Console); werr != nil {
		return errors.Join(err, werr)
	}
	return err
}
