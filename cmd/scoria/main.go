package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pfassina/scoria/internal/app"
	"github.com/pfassina/scoria/internal/config"
	"github.com/pfassina/scoria/internal/logging"
	"github.com/pfassina/scoria/internal/session"
	"github.com/pfassina/scoria/internal/ssh"
	"github.com/pfassina/scoria/internal/theme"
	"github.com/pfassina/scoria/internal/vault"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	vault      string
	configPath string
	logLevel   string
	listen     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "scoria",
		Short:         "Browse and edit Markdown vaults in the terminal",
		Version:       version,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(o)
		},
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default "+config.ConfigPath()+")")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.Flags().StringVar(&o.vault, "vault", "", "vault to open, by path or (fuzzy) name")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the TUI over SSH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(o)
		},
	}
	serve.Flags().StringVar(&o.listen, "listen", "", "listen address (default from config, :2222)")

	vaults := &cobra.Command{
		Use:   "vaults",
		Short: "List the discovered vaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listVaults(cmd.OutOrStdout(), o)
		},
	}

	root.AddCommand(serve, vaults)
	return root
}

// env is everything the commands share after startup.
type env struct {
	cfg     config.Config
	existed bool
	logger  *log.Logger
	closer  io.Closer
	vaults  []vault.Vault
}

func (e *env) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

func load(o *options) (*env, error) {
	cfg := config.Default()
	path := o.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	existed, err := config.LoadFrom(config.ExpandHome(path), &cfg)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.listen != "" {
		cfg.Listen = o.listen
	}

	logger, closer, err := logging.New(filepath.Join(config.StateDir(), logging.FileName), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	vaults, err := discover(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	logger.Debug("discovered vaults", "count", len(vaults), "config", path)

	return &env{cfg: cfg, existed: existed, logger: logger, closer: closer, vaults: vaults}, nil
}

// discover merges the configured vaults with Obsidian's.
func discover(cfg config.Config) ([]vault.Vault, error) {
	configured := make([]vault.Vault, 0, len(cfg.Vaults))
	for _, v := range cfg.Vaults {
		path := config.ExpandHome(v.Path)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		configured = append(configured, vault.New(v.Name, path))
	}

	obsidian := vault.ObsidianConfigPath()
	if cfg.ObsidianConfig != "" {
		obsidian = config.ExpandHome(cfg.ObsidianConfig)
	}
	return vault.Discover(configured, obsidian)
}

func runLocal(o *options) error {
	e, err := load(o)
	if err != nil {
		return err
	}
	defer e.Close()

	var open *vault.Vault
	switch {
	case o.vault != "":
		v, err := vault.Find(e.vaults, config.ExpandHome(o.vault))
		if err != nil {
			return err
		}
		open = &v
	case len(e.vaults) == 0 && !e.existed:
		// First run: ask for a vault and remember it.
		res, err := config.RunSetup(theme.Get(e.cfg.Theme))
		if err != nil {
			return fmt.Errorf("setup: %w", err)
		}
		if res.Cancelled {
			return nil
		}
		v := vault.New(res.Vault.Name, res.Vault.Path)
		e.vaults = append(e.vaults, v)
		open = &v
	}

	a, err := app.New(app.Options{
		Config:  e.cfg,
		Vaults:  e.vaults,
		Logger:  e.logger,
		Store:   session.NewStore(config.StateDir()),
		Version: version,
		Vault:   open,
	})
	if err != nil {
		return err
	}

	e.logger.Info("start", "version", version)
	p := tea.NewProgram(a, tea.WithAltScreen())
	a.SetProgram(p)
	if _, err := p.Run(); err != nil {
		a.Close()
		return err
	}
	return nil
}

func runServe(o *options) error {
	e, err := load(o)
	if err != nil {
		return err
	}
	defer e.Close()

	s, err := ssh.New(ssh.Options{
		Config:   e.cfg,
		Vaults:   e.vaults,
		Logger:   e.logger,
		Version:  version,
		StateDir: config.StateDir(),
	})
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		if err := s.Close(); err != nil {
			e.logger.Error("close server", "err", err)
		}
	}()

	fmt.Fprintf(os.Stderr, "scoria: serving on %s\n", s.Addr())
	return s.ListenAndServe()
}

func listVaults(w io.Writer, o *options) error {
	e, err := load(o)
	if err != nil {
		return err
	}
	defer e.Close()

	if len(e.vaults) == 0 {
		fmt.Fprintln(w, "no vaults found")
		return nil
	}
	for _, v := range e.vaults {
		fmt.Fprintf(w, "%s\t%s\n", v.Name, v.Path)
	}
	return nil
}
