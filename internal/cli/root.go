package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/auth"
	"github.com/salonbook/salon/internal/cli/client"
	"github.com/salonbook/salon/internal/cli/commands"
	"github.com/salonbook/salon/internal/cli/print"
	"github.com/salonbook/salon/internal/cli/prompt"
	"github.com/salonbook/salon/internal/config"
	"github.com/salonbook/salon/internal/logger"
)

var version = "dev" // Will be set during build

// options are the process-level dependencies of the root command
type options struct {
	store    auth.TokenStore
	prompter prompt.Prompter
	now      func() time.Time
}

// Option overrides a root command dependency
type Option func(*options)

// WithTokenStore replaces the OS keychain
func WithTokenStore(store auth.TokenStore) Option {
	return func(o *options) { o.store = store }
}

// WithPrompter replaces the terminal prompter
func WithPrompter(p prompt.Prompter) Option {
	return func(o *options) { o.prompter = p }
}

// WithClock replaces time.Now for credential expiry checks
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewRootCmd builds the salon command tree
func NewRootCmd(opts ...Option) *cobra.Command {
	o := options{
		store:    auth.Default,
		prompter: prompt.Terminal{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	rootCmd := &cobra.Command{
		Use:   "salon",
		Short: "Salon - book and manage salon appointments",
		Long: `Salon CLI - browse services, book appointments and manage the salon.

Customers book and cancel appointments, review services and keep favorites.
Administrators also confirm appointments, manage users and set working hours.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, o)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Salon API base URL (default http://localhost:5000, or set SALON_API_URL)")
	flags.StringP("output", "o", "", "Output format: table, json or yaml")
	flags.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: console or json")

	rootCmd.AddCommand(commands.Require(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "salon version %s\n", version)
		},
	}, access.Public))

	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewDashboardCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
	rootCmd.AddCommand(commands.NewServicesCmd())
	rootCmd.AddCommand(commands.NewAppointmentsCmd())
	rootCmd.AddCommand(commands.NewReviewsCmd())
	rootCmd.AddCommand(commands.NewFavoritesCmd())
	rootCmd.AddCommand(commands.NewUsersCmd())
	rootCmd.AddCommand(commands.NewHoursCmd())

	return rootCmd
}

// setup loads configuration and the session, applies the access gate and
// stores the command environment. Nothing here touches the network.
func setup(cmd *cobra.Command, o options) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	need, err := commands.RequiredAccess(cmd)
	if err != nil {
		return err
	}

	session, err := auth.LoadSession(o.store, o.now())
	if err != nil {
		if need > access.Public {
			return fmt.Errorf("%w\nRun 'salon login' to sign in again", err)
		}
		log.Warn().Err(err).Msg("Stored credential discarded")
	}

	if err := access.Authorize(session.Claims(), need); err != nil {
		log.Debug().Str("command", cmd.CommandPath()).Str("need", need.String()).Msg("Access denied")
		return gateError(cmd, err)
	}

	apiClient := client.New(cfg.APIURL,
		client.WithTimeout(cfg.Timeout),
		client.WithCredentials(session),
		client.WithLogger(log),
	)

	env := &commands.Env{
		Config:  cfg,
		Session: session,
		Client:  apiClient,
		Printer: print.New(cmd.OutOrStdout(), cfg.Output),
		Prompt:  o.prompter,
		Logger:  log,
		Now:     o.now,
	}

	cmd.SetContext(commands.WithEnv(cmd.Context(), env))
	return nil
}

func gateError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		return fmt.Errorf("%w\nRun 'salon login' first", err)
	case errors.Is(err, access.ErrForbidden):
		return fmt.Errorf("'%s': %w", cmd.CommandPath(), err)
	default:
		return err
	}
}

// ExecuteWith runs the command tree with args, printing errors to stderr
func ExecuteWith(args []string, stdout, stderr io.Writer, opts ...Option) error {
	rootCmd := NewRootCmd(opts...)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return ExecuteWith(os.Args[1:], os.Stdout, os.Stderr)
}
