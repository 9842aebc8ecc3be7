package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"glosaguard/internal/batch"
	"glosaguard/internal/domain"
	"glosaguard/internal/risk"
	"glosaguard/internal/validator"
	"glosaguard/internal/validator/tiss"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tisscheck",
		Short: "Validate TISS billing guides and estimate denial risk",
	}

	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var (
		workers       int
		asJSON        bool
		failOnInvalid bool
		threshold     int64
		maxBytes      int64
	)

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate guide XML files (plain or .gz)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			parser := tiss.NewParser(tiss.Options{HighValueThreshold: threshold})
			engine := validator.NewEngine(parser, validator.NewBuiltinRegistry(parser.Rules()), risk.DefaultPolicy(), nil, nil, nil, nil)
			pool := &batch.Pool{Workers: workers, MaxBytes: maxBytes, Checker: engine}

			start := time.Now()
			results := pool.Run(ctx, args)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				writeText(out, results)
				fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) checked in %s\n", len(results), time.Since(start).Round(time.Millisecond))
			}

			if failed := countFailed(results); failed > 0 && failOnInvalid {
				cmd.SilenceUsage = true
				return fmt.Errorf("%d of %d file(s) invalid or unreadable", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Number of files validated concurrently")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&failOnInvalid, "fail-on-invalid", false, "Exit non-zero if any file is invalid or unreadable")
	cmd.Flags().Int64Var(&threshold, "high-value-threshold", tiss.DefaultHighValueThreshold, "Procedure value (cents) above which prior authorization is flagged")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 10<<20, "Maximum decompressed document size")

	return cmd
}

func writeJSON(w io.Writer, results []batch.FileResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeText(w io.Writer, results []batch.FileResult) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s: ERROR %v\n", r.Path, r.Err)
			continue
		}
		verdict := "VALID"
		if !r.Result.Valid {
			verdict = "INVALID"
		}
		fmt.Fprintf(w, "%s: %s score=%d risk=%s status=%s\n",
			r.Path, verdict, r.Result.RiskScore, r.Result.RiskLevel, r.Result.Status)
		for _, f := range r.Result.Findings {
			if f.Status == domain.FindingApproved {
				continue
			}
			marker := ""
			if f.Critical {
				marker = " (critical)"
			}
			fmt.Fprintf(w, "  [%s%s] %s: %s", f.Status, marker, f.Field, f.Message)
			if f.Details != "" {
				fmt.Fprintf(w, " - %s", f.Details)
			}
			fmt.Fprintln(w)
		}
	}
}

func countFailed(results []batch.FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil || !r.Result.Valid {
			n++
		}
	}
	return n
}
