package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/pfassina/scoria/internal/app"
)

// NewHandler returns a Bubble Tea handler for SSH sessions. Every session
// gets its own app and starts on the splash screen. Remote sessions never
// touch the local session file.
func NewHandler(opts Options) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		logger := opts.Logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

		a, err := app.New(app.Options{
			Config:  opts.Config,
			Vaults:  opts.Vaults,
			Logger:  logger,
			Version: opts.Version,
		})
		if err != nil {
			logger.Error("start session", "err", err)
			wishErr(sess, err)
			return nil, nil
		}

		popts := []tea.ProgramOption{tea.WithAltScreen()}
		popts = append(popts, bts.MakeOptions(sess)...)
		return a, popts
	}
}

func wishErr(sess ssh.Session, err error) {
	_, _ = sess.Stderr().Write([]byte("scoria: " + err.Error() + "\n"))
	_ = sess.Exit(1)
}
