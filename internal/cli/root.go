package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/pkg/config"
	"github.com/noah-isme/sma-adp-console/pkg/logger"
)

// Options lets callers replace how configuration and logging are built.
type Options struct {
	LoadConfig func() (*config.Config, error)
	NewLogger  func(cfg *config.Config) (*zap.Logger, error)
}

type console struct {
	opts    Options
	baseURL string
	app     *App
}

// NewRootCommand assembles the console command tree.
func NewRootCommand(opts Options) *cobra.Command {
	root, _ := newRoot(opts)
	return root
}

func newRoot(opts Options) (*cobra.Command, *console) {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.NewLogger == nil {
		opts.NewLogger = logger.New
	}
	con := &console{opts: opts}

	root := &cobra.Command{
		Use:           "attendance-console",
		Short:         "Administer the attendance backend from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return con.open(cmd.Context())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return con.close()
		},
	}
	root.PersistentFlags().StringVar(&con.baseURL, "base-url", "", "backend base URL (overrides API_BASE_URL)")

	root.AddCommand(
		con.loginCommand(),
		con.logoutCommand(),
		con.whoamiCommand(),
		con.teachersCommand(),
		con.coursesCommand(),
		con.auditLogsCommand(),
		con.healthCommand(),
		con.statsCommand(),
		con.semesterCleanupCommand(),
		con.faqCommand(),
		con.supportCommand(),
		con.profileCommand(),
		con.shareCommand(),
		con.serveCommand(),
	)
	return root, con
}

func (con *console) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := con.opts.LoadConfig()
	if err != nil {
		return err
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(con.baseURL), "/"); trimmed != "" {
		cfg.API.BaseURL = trimmed
	}

	logr, err := con.opts.NewLogger(cfg)
	if err != nil {
		return err
	}

	app, err := NewApp(ctx, cfg, logr)
	if err != nil {
		return err
	}
	con.app = app
	return nil
}

func (con *console) close() error {
	if con.app == nil {
		return nil
	}
	_ = con.app.Logger.Sync()
	err := con.app.Close()
	con.app = nil
	return err
}

// Execute runs the command tree and releases the app even when a command fails.
func Execute(ctx context.Context, opts Options, args []string) error {
	root, con := newRoot(opts)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if closeErr := con.close(); err == nil {
		err = closeErr
	}
	return err
}
