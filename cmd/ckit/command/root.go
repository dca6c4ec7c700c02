package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provenance-io/contract-kit-go/internal/config"
	"github.com/provenance-io/contract-kit-go/pkg/logger"
	"github.com/provenance-io/contract-kit-go/pkg/trace"
	"github.com/provenance-io/contract-kit-go/pkg/wasm"
)

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ckit",
		Short: "Run and test contracts compiled to WebAssembly",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.BindFlags(cmd.PersistentFlags())
	return cmd
}

// env is what a command needs after flags are parsed.
type env struct {
	cfg  *config.Config
	lggr logger.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	lggr, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, lggr: lggr.Named(cmd.Name())}, nil
}

func (e *env) loadHost(path string) (*wasm.Host, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	host, err := wasm.NewHost(code, wasm.WithLogger(e.lggr.Named("wasm")))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return host, nil
}

// openTrace returns a nil writer when tracing is off. The returned close
// func is always safe to call.
func (e *env) openTrace() (*trace.Writer, func() error, error) {
	if e.cfg.Trace == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.OpenFile(e.cfg.Trace, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return trace.NewWriter(f), f.Close, nil
}
