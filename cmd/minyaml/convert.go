package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ConradIrwin/minyaml"
	"github.com/ConradIrwin/minyaml/yamllib"
)

func (a *app) convertCmd() *cobra.Command {
	flags := defaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "convert [flags] <file>",
		Short: "Convert a document to JSON or CSV",
		Long: `Convert a document to JSON or CSV.

CSV output expects exactly two levels: each top-level key is a row, and the
keys of the first row name the columns.

With --watch, the file is converted once and then again every time it is
written, until interrupted. Errors while watching are logged and do not stop
the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultConfig()
			if configPath != "" {
				if err := loadConfig(configPath, &cfg); err != nil {
					return err
				}
			}
			cfg.Merge(flags, cmd.Flags())
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Watch {
				return a.watch(cmd.Context(), cfg, args[0])
			}
			return a.convert(cfg, args[0])
		},
	}
	flags.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with default settings (format, parser, indent_width, output, watch)")
	return cmd
}

func parserFor(cfg Config) func(string) (*minyaml.Mapping, error) {
	if cfg.Parser == parserYAML {
		return yamllib.Parse
	}
	return minyaml.Parser{IndentWidth: cfg.IndentWidth}.Parse
}

func (a *app) convert(cfg Config, path string) error {
	format, err := minyaml.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	doc, err := parserFor(cfg)(string(data))
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	output, err := minyaml.Serialize(doc, format)
	if err != nil {
		return errors.Wrapf(err, "convert %s to %v", path, format)
	}

	if cfg.Output == "" {
		_, err := fmt.Fprintln(a.stdout, output)
		return err
	}
	if err := os.WriteFile(cfg.Output, []byte(output), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", cfg.Output)
	}
	level.Info(a.logger).Log("msg", "converted", "input", path, "output", cfg.Output, "format", format, "parser", cfg.Parser)
	return nil
}

func (a *app) watch(ctx context.Context, cfg Config, path string) error {
	if err := a.convert(cfg, path); err != nil {
		level.Error(a.logger).Log("msg", "conversion failed", "input", path, "err", err)
	}
	return watchFile(ctx, a.logger, path, func() {
		if err := a.convert(cfg, path); err != nil {
			level.Error(a.logger).Log("msg", "conversion failed", "input", path, "err", err)
		}
	})
}

// watchFile calls onChange each time path is written or re-created, until
// ctx is done. The parent directory is watched so that editors which replace
// the file on save are noticed.
func watchFile(ctx context.Context, logger log.Logger, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}
	level.Info(logger).Log("msg", "watching for changes", "file", path)

	for {
		select {
		case <-ctx.Done():
			level.Info(logger).Log("msg", "stopped watching", "file", path)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			level.Debug(logger).Log("msg", "file changed", "file", path, "op", event.Op)
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			level.Warn(logger).Log("msg", "watcher error", "err", err)
		}
	}
}
