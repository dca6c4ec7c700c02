package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
)

func NameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Convert account names to and from their uint64 form",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:  "encode <name>...",
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, arg := range args {
					n, err := chain.ParseName(arg)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", n, uint64(n))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:  "decode <uint64>...",
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, arg := range args {
					v, err := strconv.ParseUint(arg, 0, 64)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", v, chain.Name(v))
				}
				return nil
			},
		},
	)
	return cmd
}

func SymbolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbol",
		Short: "Convert token symbol codes to and from their uint64 form",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:  "encode <SYMBOL>...",
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, arg := range args {
					s, err := chain.ParseSymbolCode(arg)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", s, uint64(s))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:  "decode <uint64>...",
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, arg := range args {
					v, err := strconv.ParseUint(arg, 0, 64)
					if err != nil {
						return err
					}
					s, err := chain.SymbolCodeFromUint64(v)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", v, s)
				}
				return nil
			},
		},
	)
	return cmd
}
