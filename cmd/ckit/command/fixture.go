package command

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/provenance-io/contract-kit-go/pkg/fixture"
)

func FixtureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixture <module.wasm|module.wat> <suite.yaml>",
		Short: "Run a suite of fixture cases against a contract module",
		Args:  cobra.ExactArgs(2),
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
			suite, err := fixture.LoadFile(args[1])
			if err != nil {
				return err
			}
			tw, closeTrace, err := e.openTrace()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeTrace()) }()

			r := &fixture.Runner{Invoker: host, Logger: e.lggr, Trace: tw}
			sum := r.Run(cmd.Context(), suite)
			if err := sum.Print(cmd.OutOrStdout()); err != nil {
				return err
			}
			return sum.Err()
		},
	}
}
