package command

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
	"github.com/provenance-io/contract-kit-go/pkg/runtime"
	"github.com/provenance-io/contract-kit-go/pkg/trace"
)

const defaultAction = "helloworld"

func RunCmd() *cobra.Command {
	var (
		data        string
		listExports bool
	)
	cmd := &cobra.Command{
		Use:   "run <module.wasm|module.wat> [action]",
		Short: "Invoke one action of a contract module and print its console output",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.lggr.Sync() }()

			host, err := e.loadHost(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if listExports {
				for _, name := range host.Exports() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			action := defaultAction
			if len(args) == 2 {
				action = args[1]
			}
			inv := runtime.Invocation{Receiver: e.cfg.Receiver, Code: e.cfg.Code}
			if inv.Action, err = chain.ParseName(action); err != nil {
				return fmt.Errorf("action: %w", err)
			}
			if inv.Data, err = hex.DecodeString(data); err != nil {
				return fmt.Errorf("data: %w", err)
			}

			tw, closeTrace, err := e.openTrace()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeTrace()) }()

			e.lggr.Debugw("invoking", "receiver", inv.Receiver, "code", inv.Code, "action", inv.Action)
			res, ierr := host.Invoke(cmd.Context(), inv)
			if _, werr := io.WriteString(out, res.Console); werr != nil {
				return werr
			}
			if tw != nil {
				if terr := tw.Write(trace.FromResult(inv, res, ierr)); terr != nil {
					return errors.Join(ierr, terr)
				}
			}
			return ierr
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "hex encoded action data")
	cmd.Flags().BoolVar(&listExports, "exports", false, "list the module's exports instead of invoking")
	return cmd
}
