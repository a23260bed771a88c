// Package commands provides CLI commands for chatwidget.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/chatwidget/internal/api"
	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/logging"
)

// Version info (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the global flags
type rootOptions struct {
	endpoint string
	timeout  time.Duration
	verbose  bool
	file     string
	raw      bool
}

// session is what a command needs to talk to the backend
type session struct {
	cfg    config.Config
	client api.ChatClientInterface
	logger *zap.Logger
}

func (s *session) close() {
	s.client.Close()
	_ = s.logger.Sync()
}

// NewRootCmd creates the root command with all subcommands
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chatwidget [message]",
		Short: "Terminal chat widget for a JSON chat endpoint",
		Long: `chatwidget sends messages to a chat backend that accepts
POST {"message": "..."} and answers {"response": "..."}, and shows the
conversation as a scrolling transcript.

Examples:
  chatwidget chat                          Start interactive chat
  chatwidget "What are your prices?"       Send a single message
  echo "hello" | chatwidget                Read the message from stdin
  chatwidget -f question.txt --raw         Read from file, print only the reply
  chatwidget config set endpoint https://support.example.com/chat`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "chatwidget %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if opts.file != "" {
				data, err := os.ReadFile(opts.file)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runSend(cmd, deps, opts, string(data))
			}

			if len(args) > 0 {
				return runSend(cmd, deps, opts, args[0])
			}

			if !deps.StdinIsTerminal() {
				data, err := readAll(deps)
				if err != nil {
					return err
				}
				return runSend(cmd, deps, opts, data)
			}

			return cmd.Help()
		},
	}

	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVarP(&opts.endpoint, "endpoint", "e", "", "Chat endpoint URL (overrides config and "+config.EnvEndpoint+")")
	cmd.PersistentFlags().DurationVarP(&opts.timeout, "timeout", "t", 0, "Request timeout, e.g. 30s (0 keeps the configured value)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging and error details")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the message from file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the reply text")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, opts))
	cmd.AddCommand(NewSendCmd(deps, opts))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	deps := NewDependencies()
	if err := NewRootCmd(deps).Execute(); err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "chatwidget"))
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: flags > env > file > defaults
func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if opts.timeout > 0 {
		cfg.TimeoutSeconds = int(opts.timeout.Round(time.Second) / time.Second)
		if cfg.TimeoutSeconds == 0 {
			cfg.TimeoutSeconds = 1
		}
	}
	if opts.verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openSession builds the logger and backend client for a command
func openSession(deps *Dependencies, opts *rootOptions) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return nil, err
	}

	client := deps.Client
	if client == nil {
		client, err = api.NewClient(
			api.WithEndpoint(cfg.Endpoint),
			api.WithTimeout(cfg.Timeout()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
	}

	logger.Debug("session opened",
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("timeout", cfg.Timeout()))

	return &session{cfg: cfg, client: client, logger: logger}, nil
}
