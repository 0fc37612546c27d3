// CLASSIFICATION: COMMUNITY
// Filename: cli.go v0.3
// Date Modified: 2026-10-19
// Author: Lukas Bower
//
// ─────────────────────────────────────────────────────────────
// devserve · Cobra command tree
//
// The root command serves a directory over plain HTTP and adds
// "Access-Control-Allow-Origin: *" to every response. Settings
// resolve in this order, later wins:
//
// defaults, then the --config file, then DEVSERVE_* env (and --env-file),
// then flags. Example: devserve --dir src --port 8000
// ─────────────────────────────────────────────────────────────
package tooling

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"devserve/internal/config"
	"devserve/internal/watch"
	devhttp "devserve/server/http"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X".
var version = "dev"

type options struct {
	flags   config.Config
	cfgFile string
	envFile string
}

// NewRootCommand builds the command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	return newRootCommand(&options{flags: config.Default()}, stdout, stderr)
}

func newRootCommand(opts *options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devserve",
		Short: "Serve a directory over HTTP with permissive CORS",
		Long: `devserve serves static files (or directory listings) from a local
directory and adds "Access-Control-Allow-Origin: *" to every response,
so pages on another origin can load the assets.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&opts.flags.Bind, "bind", opts.flags.Bind, "bind address")
	f.IntVarP(&opts.flags.Port, "port", "p", opts.flags.Port, "listen port")
	f.StringVarP(&opts.flags.Dir, "dir", "d", opts.flags.Dir, "directory to serve")
	f.StringVar(&opts.flags.LogFile, "log-file", "", "append access log entries as JSON to this file")
	f.StringVar(&opts.flags.LogLevel, "log-level", opts.flags.LogLevel, "log level (debug, info, warn, error)")
	f.BoolVar(&opts.flags.Watch, "watch", false, "log changes below the serving root")
	f.DurationVar(&opts.flags.ShutdownTimeout, "shutdown-timeout", opts.flags.ShutdownTimeout, "time allowed for in-flight requests on shutdown")
	f.StringVar(&opts.cfgFile, "config", "", "TOML or YAML config file")
	f.StringVar(&opts.envFile, "env-file", ".env", "file of DEVSERVE_* variables, ignored when the default is absent")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print devserve version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devserve %s\n", version)
		},
	})
	return cmd
}

func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.cfgFile != "" {
		if err := cfg.Load(o.cfgFile); err != nil {
			return cfg, err
		}
	}
	if err := config.LoadEnvFile(o.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("bind") {
		cfg.Bind = o.flags.Bind
	}
	if changed("port") {
		cfg.Port = o.flags.Port
	}
	if changed("dir") {
		cfg.Dir = o.flags.Dir
	}
	if changed("log-file") {
		cfg.LogFile = o.flags.LogFile
	}
	if changed("log-level") {
		cfg.LogLevel = o.flags.LogLevel
	}
	if changed("watch") {
		cfg.Watch = o.flags.Watch
	}
	if changed("shutdown-timeout") {
		cfg.ShutdownTimeout = o.flags.ShutdownTimeout
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(cfg.Level())
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	srv, err := devhttp.New(devhttp.Config{
		Bind:            cfg.Bind,
		Port:            cfg.Port,
		StaticDir:       cfg.Dir,
		LogFile:         cfg.LogFile,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
		Stdout:          stdout,
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	if cfg.Watch {
		w, err := watch.New(cfg.Dir, logger.WithField("component", "watch"))
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.WithError(err).Warn("watcher stopped")
			}
		}()
	}

	err = srv.Start(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	cmd := NewRootCommand(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
