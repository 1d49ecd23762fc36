// portalctl is the command-line client for the job portal: sign in, browse
// and save jobs, apply, and watch the realtime channel.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobportal-client/internal/api"
	"jobportal-client/internal/common/config"
	apperrors "jobportal-client/internal/common/errors"
	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/session"
	"jobportal-client/internal/toast"
)

// app holds the wired client stack shared by every command.
type app struct {
	cfg    *config.Config
	zapLog *zap.Logger
	log    logger.Logger
	store  *session.Store
	client *api.Client
	toasts *toast.Notifier
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	storage, err := session.OpenKeyring(cfg.Session.ServiceName, cfg.Session.FileDir)
	if err != nil {
		return nil, fmt.Errorf("opening credential storage: %w", err)
	}

	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Millisecond, storage, log)
	store := session.NewStore(storage, client.Auth(), log)
	client.SetUnauthorizedHook(store.HandleUnauthorized)

	return &app{
		cfg:    cfg,
		zapLog: zapLog,
		log:    log,
		store:  store,
		client: client,
		toasts: toast.New(cfg.Toast, log),
	}, nil
}

func (a *app) close() {
	a.toasts.Close()
	a.zapLog.Sync()
}

// friendly converts a normalized API error into its user-facing message so
// command output stays readable.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(apperrors.UserMessage(err))
}

func newRootCmd() *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:          "portalctl",
		Short:        "Command-line client for the job portal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
	}

	root.AddCommand(
		newLoginCmd(&a),
		newRegisterCmd(&a),
		newLogoutCmd(&a),
		newWhoamiCmd(&a),
		newJobsCmd(&a),
		newApplyCmd(&a),
		newApplicationsCmd(&a),
		newNotificationsCmd(&a),
		newWatchCmd(&a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
