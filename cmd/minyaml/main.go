// Command minyaml converts indentation-based YAML documents to JSON or CSV.
//
//	minyaml convert --to csv schedule.yaml
//	minyaml convert --watch -o schedule.json schedule.yaml
//	minyaml check schedule.yaml
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type app struct {
	stdout   io.Writer
	stderr   io.Writer
	logLevel string
	logger   log.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{stdout: stdout, stderr: stderr}
	a.logger = newLogger(stderr, level.AllowInfo())
	return a
}

func newLogger(w io.Writer, allow level.Option) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, allow)
}

func parseLevel(s string) (level.Option, error) {
	switch s {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("unknown log level %q", s)
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minyaml",
		Short: "Convert indentation-based YAML to JSON or CSV",
		Long: `minyaml reads documents made of nested "key:" sections and "key: value"
pairs, and writes them as pretty-printed JSON or as a CSV table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			allow, err := parseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = newLogger(a.stderr, allow)
			return nil
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.PersistentFlags().StringVar(&a.logLevel, "log.level", "info", "Only log messages at or above this level: debug, info, warn, error")

	cmd.AddCommand(a.convertCmd(), a.checkCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp(os.Stdout, os.Stderr)
	err := a.rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		level.Error(a.logger).Log("msg", "command failed", "err", err)
		os.Exit(1)
	}
}
