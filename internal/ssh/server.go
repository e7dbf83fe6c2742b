package ssh

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/pfassina/scoria/internal/config"
	"github.com/pfassina/scoria/internal/vault"
)

// HostKeyFile is the server key created inside the state directory.
const HostKeyFile = "ssh_host_key"

// Options configure the SSH server.
type Options struct {
	Config   config.Config
	Vaults   []vault.Vault
	Logger   *log.Logger
	Version  string
	StateDir string
}

// Server wraps a Wish SSH server.
type Server struct {
	server *ssh.Server
	logger *log.Logger
}

// New creates a new SSH server listening on the configured address.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	hostKeyPath := filepath.Join(opts.StateDir, HostKeyFile)

	s, err := wish.NewServer(
		wish.WithAddress(opts.Config.Listen),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bts.Middleware(NewHandler(opts)),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(opts.Logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, logger: opts.Logger}, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe serves until the server is closed.
func (s *Server) ListenAndServe() error {
	s.logger.Info("ssh listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops the SSH server.
func (s *Server) Close() error {
	return s.server.Close()
}
