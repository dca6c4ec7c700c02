package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/provenance-io/contract-kit-go/pkg/contract"
	"github.com/provenance-io/contract-kit-go/pkg/logger"
	"github.com/provenance-io/contract-kit-go/pkg/runtime"
	"github.com/provenance-io/contract-kit-go/pkg/trace"
)

type Runner struct {
	Invoker runtime.Invoker
	Logger  logger.Logger
	// Trace, when set, receives every invocation.
	Trace *trace.Writer
}

type CaseResult struct {
	Name   string
	Passed bool
	Reason string
}

func (r CaseResult) String() string {
	if r.Passed {
		return "PASSED"
	}
	return "FAILED: " + r.Reason
}

type Summary struct {
	Results []CaseResult
	Passed  int
	Failed  int
}

// Err is nil when every case passed.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d fixture cases failed", s.Failed, len(s.Results))
}

func (s Summary) Print(w io.Writer) error {
	for _, r := range s.Results {
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.Name, r); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d passed, %d failed\n", s.Passed, s.Failed)
	return err
}

// Run executes every case in order. A failing case does not stop the
// suite; once ctx is done the remaining cases fail.
func (r *Runner) Run(ctx context.Context, s *Suite) Summary {
	lggr := r.Logger
	if lggr == nil {
		lggr = logger.Nop()
	}

	var sum Summary
	for i := range s.Cases {
		c := &s.Cases[i]
		reason := ""
		if err := ctx.Err(); err != nil {
			reason = err.Error()
		} else {
			reason = r.runCase(ctx, c)
		}

		res := CaseResult{Name: c.Name, Passed: reason == "", Reason: reason}
		sum.Results = append(sum.Results, res)
		if res.Passed {
			sum.Passed++
			lggr.Infow("fixture passed", "case", c.Name)
		} else {
			sum.Failed++
			lggr.Errorw("fixture failed", "case", c.Name, "reason", reason)
		}
	}
	return sum
}

// runCase returns the failure reason, or "" on success.
func (r *Runner) runCase(ctx context.Context, c *Case) string {
	inv := runtime.Invocation{
		Receiver: c.Receiver,
		Code:     c.Code,
		Action:   c.Action,
		Data:     c.data,
	}

	var console strings.Builder
	var lastErr error
	for i := 0; i < c.Repeat; i++ {
		res, err := r.Invoker.Invoke(ctx, inv)
		console.WriteString(res.Console)
		if r.Trace != nil {
			if terr := r.Trace.Write(trace.FromResult(inv, res, err)); terr != nil {
				return terr.Error()
			}
		}
		lastErr = err
		if err != nil && c.ExpectError == "" {
			return fmt.Sprintf("invocation %d: %v", i+1, normalize(err))
		}
	}

	if c.ExpectError != "" {
		if lastErr == nil {
			return fmt.Sprintf("expected error containing %q, got success", c.ExpectError)
		}
		if msg := normalize(lastErr).Error(); !strings.Contains(msg, c.ExpectError) {
			return fmt.Sprintf("expected error containing %q, got %q", c.ExpectError, msg)
		}
	}

	want := strings.Repeat(c.ExpectOutput, c.Repeat)
	if got := console.String(); got != want {
		return fmt.Sprintf("output %q, want %q", got, want)
	}
	return ""
}

// normalize recovers a check failure that reached us only as text, for
// example through a trap raised by another host.
func normalize(err error) error {
	var ce *contract.CheckError
	if errors.As(err, &ce) {
		return ce
	}
	if parsed, ok := contract.ParseCheckError(err.Error()); ok {
		return parsed
	}
	return err
}
