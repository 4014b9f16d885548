package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"applydi-client/internal/bootstrap"
	"applydi-client/internal/config"
	"applydi-client/internal/pkg/clientutils"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// cli carries what every command shares. The container is built lazily so
// that --help never touches the storage file.
type cli struct {
	cfg    *config.Config
	in     *bufio.Reader
	stdin  io.Reader
	out    io.Writer
	errOut io.Writer
	opts   []bootstrap.Option
	app    *bootstrap.Container
}

func newCLI(cfg *config.Config, stdin io.Reader, out, errOut io.Writer, opts ...bootstrap.Option) *cli {
	return &cli{
		cfg:    cfg,
		in:     bufio.NewReader(stdin),
		stdin:  stdin,
		out:    out,
		errOut: errOut,
		opts:   opts,
	}
}

func (c *cli) container() (*bootstrap.Container, error) {
	if c.app != nil {
		return c.app, nil
	}
	opts := append([]bootstrap.Option{bootstrap.WithOutput(c.errOut)}, c.opts...)
	app, err := bootstrap.NewContainer(c.cfg, opts...)
	if err != nil {
		return nil, err
	}
	c.app = app
	return app, nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close(context.Background())
	c.app = nil
	return err
}

func (c *cli) readLine(prompt string) (string, error) {
	fmt.Fprint(c.errOut, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", clientutils.NewCancelledError("no input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword disables echo on a terminal and falls back to a plain line
// for piped input.
func (c *cli) readPassword(prompt string) (string, error) {
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.errOut, prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.errOut)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	return c.readLine(prompt)
}

type promptConfirmer struct {
	c *cli
}

func (p promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := p.c.readLine(prompt + " [o/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "o", "oui", "y", "yes":
		return true, nil
	}
	return false, nil
}

type assumeYes struct{}

func (assumeYes) Confirm(ctx context.Context, prompt string) (bool, error) {
	return true, nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "applydi",
		Short: "Ask questions about your documents through specialised agents",
		Long: `applydi is a client for the Applydi document assistant.

Create agents (sales, marketing, hr, purchase), attach documents to them and
ask questions answered from the selected documents. Answers that contain
tabular data can be exported as CSV or PDF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	root.PersistentFlags().StringVar(&c.cfg.API.BaseURL, "api-url", c.cfg.API.BaseURL, "backend base URL")
	root.PersistentFlags().BoolVar(&c.cfg.App.Debug, "debug", c.cfg.App.Debug, "mirror logs to stderr")

	root.AddCommand(
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newStatusCmd(c),
		newAgentsCmd(c),
		newDocsCmd(c),
		newAskCmd(c),
		newChatCmd(c),
		newPrefsCmd(c),
		newLogsCmd(c),
	)
	return root
}
