package main

import (
	"os"
	"strings"

	"github.com/provenance-io/contract-kit-go/cmd/ckit/command"
)

var rootCmd = command.RootCmd()

func init() {
	rootCmd.AddCommand(
		command.RunCmd(),
		command.FixtureCmd(),
		command.TraceCmd(),
		command.NameCmd(),
		command.SymbolCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		msg := strings.Join(strings.Fields(err.Error()), " ")
		_, _ = os.Stderr.WriteString(msg + "\n")
		os.Exit(1)
	}
}
