package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Team-SMDRS/customer-dashboard/internal/buildinfo"
	"github.com/Team-SMDRS/customer-dashboard/internal/config"
	"github.com/Team-SMDRS/customer-dashboard/internal/dashboard"
	"github.com/Team-SMDRS/customer-dashboard/internal/domain"
	"github.com/Team-SMDRS/customer-dashboard/internal/infra/client"
	"github.com/Team-SMDRS/customer-dashboard/internal/infra/observability"
	"github.com/Team-SMDRS/customer-dashboard/internal/infra/resilience"
	"github.com/Team-SMDRS/customer-dashboard/internal/report"
	"github.com/Team-SMDRS/customer-dashboard/internal/session"
)

// app bundles the wired client stack for one command invocation.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Metrics
	session  *session.Store
	bank     *client.Bank
	shutdown func(context.Context) error
}

func newApp() (*app, error) {
	// .env is for local development; absence is fine.
	_ = config.LoadDotEnv(".env")

	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)

	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "customer-dashboard")
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	metrics := observability.NewMetrics()
	sess := session.NewStore(cfg.SessionFile, logger)
	bank := client.NewBank(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.APIBaseURL,
		sess,
		resilience.NewCircuitBreaker("bank-api"),
		metrics,
		logger,
	)

	logger.Debug("configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.String("session_file", cfg.SessionFile),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		session:  sess,
		bank:     bank,
		shutdown: shutdown,
	}, nil
}

func (a *app) close() {
	snap := a.metrics.GetSnapshot()
	a.logger.Debug("session stats",
		zap.Float64("requests", snap.Requests),
		zap.Float64("auth_failures", snap.AuthFailures),
		zap.Float64("downloads", snap.Downloads),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("tracer shutdown failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "BTrust Bank customer dashboard",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newLoginCmd(), newViewCmd(), newReportCmd(), newLogoutCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.bank.Login(cmd.Context(), username, password); err != nil {
				var authErr *domain.ErrAuth
				if errors.As(err, &authErr) {
					fmt.Fprintln(cmd.OutOrStdout(), authErr.Error())
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "An error occurred during login")
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newViewCmd() *cobra.Command {
	var tabName string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := dashboard.ParseTab(tabName)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctrl := dashboard.NewController(a.bank, a.session, a.metrics, a.logger)
			if err := ctrl.Mount(cmd.Context()); err != nil {
				switch ctrl.State() {
				case dashboard.StateUnauthenticated:
					fmt.Fprintln(cmd.OutOrStdout(), "Session expired. Please log in again.")
				case dashboard.StateDegraded:
					fmt.Fprintln(cmd.OutOrStdout(), "Could not reach the bank. Please try again shortly.")
				}
				return err
			}

			if tab != dashboard.TabOverview {
				if err := ctrl.SelectTab(tab); err != nil {
					return err
				}
			}
			return ctrl.Render(cmd.OutOrStdout(), time.Now())
		},
	}

	cmd.Flags().StringVarP(&tabName, "tab", "t", string(dashboard.TabOverview),
		"tab to show: overview, accounts, transactions, fixed-deposits")
	return cmd
}

func newReportCmd() *cobra.Command {
	var startDate, endDate, outDir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the PDF transaction report for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if outDir == "" {
				outDir = a.cfg.ReportDir
			}

			downloader := report.NewDownloader(a.bank, outDir, a.metrics, a.logger)
			path, err := downloader.Download(cmd.Context(), startDate, endDate)
			if err != nil {
				var valErr *domain.ErrValidation
				var missing *domain.ErrMissingCredential
				switch {
				case errors.As(err, &valErr):
					fmt.Fprintln(cmd.OutOrStdout(), "Please select both start and end dates:", valErr.Message)
				case errors.As(err, &missing):
					fmt.Fprintln(cmd.OutOrStdout(), "Please log in first.")
				default:
					fmt.Fprintln(cmd.OutOrStdout(), "Failed to download the report. Please try again.")
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Saved", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: report dir from config)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and discard the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctrl := dashboard.NewController(a.bank, a.session, a.metrics, a.logger)
			if err := ctrl.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
