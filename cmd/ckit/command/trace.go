package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provenance-io/contract-kit-go/pkg/trace"
)

func TraceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace <file>",
		Short: "Print the action traces recorded in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			traces, err := trace.ReadAll(f)
			for _, t := range traces {
				fmt.Fprintln(cmd.OutOrStdout(), t.Summary())
			}
			return err
		},
	}
}
