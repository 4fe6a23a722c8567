package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"learnboard/pkg/logging"
	"learnboard/services/dashboard/config"
	"learnboard/services/dashboard/internal/client"
	"learnboard/services/dashboard/internal/dashboard"
	"learnboard/services/dashboard/internal/session"
	"learnboard/services/dashboard/internal/terminal"

	"github.com/spf13/cobra"
)

const loginCommand = "learnboard login"

// app is everything a command needs, built once before the command runs.
type app struct {
	logger     *slog.Logger
	session    *session.Session
	gateway    *client.GatewayClient
	prompter   *terminal.Prompter
	guard      *session.Guard
	controller *dashboard.Controller
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, session.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "learnboard",
		Short:         "Terminal dashboard for learning plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("gateway", "", "API gateway base URL")
	root.PersistentFlags().String("token-file", "", "where the session token is kept")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newDashboardCmd(a),
		newCreateCmd(a),
		newCompleteCmd(a),
		newDeleteCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	tokenPath, err := session.DefaultTokenPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(".", cmd.Flags(), tokenPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a.logger = logging.New(cmd.ErrOrStderr(), cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(a.logger)

	a.session, err = session.Open(session.NewFileStore(cfg.TokenFile))
	if err != nil {
		return err
	}

	a.gateway, err = client.NewGatewayClient(cfg.GatewayURL, a.session, nil, a.logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a.prompter = terminal.NewPrompter(cmd.InOrStdin(), out)
	a.guard = session.NewGuard(a.session, a.gateway, terminal.NewNavigator(out, loginCommand), terminal.Placeholder(cmd.ErrOrStderr()), a.logger)
	a.controller = dashboard.NewController(a.gateway, a.prompter, a.logger)
	return nil
}
