package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/models"
	"github.com/diogo/chatwidget/internal/render"
	"github.com/diogo/chatwidget/internal/widget"
)

// replyWidth is the wrap width for markdown replies printed by send
const replyWidth = 80

// errRequestFailed is returned after the apology has been printed
var errRequestFailed = errors.New("request failed")

// NewSendCmd creates the headless send command
func NewSendCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send a single message and print the reply",
		Long: `Send one message to the chat endpoint and print the reply.

The message is taken from the argument or, when stdin is not a terminal,
from stdin. On failure the widget's apology is printed and the command
exits with a non-zero status; --verbose adds the error details.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			local := *opts
			local.raw = raw

			var message string
			switch {
			case len(args) > 0:
				message = args[0]
			case !deps.StdinIsTerminal():
				data, err := readAll(deps)
				if err != nil {
					return err
				}
				message = data
			default:
				return fmt.Errorf("no message given: pass it as an argument or pipe it on stdin")
			}

			return runSend(cmd, deps, &local, message)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the reply text")

	return cmd
}

// runSend hosts the widget headlessly for a single exchange
func runSend(cmd *cobra.Command, deps *Dependencies, opts *rootOptions, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message cannot be empty")
	}

	sess, err := openSession(deps, opts)
	if err != nil {
		return err
	}
	defer sess.close()

	render.SetTUITheme(sess.cfg.TUITheme)

	transcript := widget.NewLog()
	w := widget.New(widget.NewBuffer(message), transcript, sess.client, widget.WithLogger(sess.logger))

	var spin *spinner
	if !opts.raw && deps.StderrIsTerminal() {
		spin = newSpinner(deps.Stderr, "Waiting for reply")
		spin.start()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := w.Submit(ctx)

	if spin != nil {
		spin.halt()
	}
	if err != nil {
		return err
	}

	if opts.raw {
		fmt.Fprintln(deps.Stdout, res.Text())
	} else {
		fmt.Fprintln(deps.Stdout, formatReply(transcript, res.OK(), sess.cfg.Markdown))
	}

	if res.OK() && sess.cfg.CopyToClipboard && deps.Clipboard != nil {
		if err := deps.Clipboard(res.Reply); err != nil {
			sess.logger.Warn("clipboard copy failed", zap.Error(err))
		} else if !opts.raw {
			fmt.Fprintln(deps.Stderr, "Reply copied to clipboard")
		}
	}

	if !res.OK() {
		if sess.cfg.Verbose && !opts.raw {
			fmt.Fprintln(deps.Stderr, formatErrorMessage(res.Err, "Request failed"))
		}
		return errRequestFailed
	}

	return nil
}

// formatReply renders the last assistant node of the transcript
func formatReply(transcript *widget.Log, ok bool, md config.MarkdownConfig) string {
	node, found := transcript.Last(func(n widget.Node) bool {
		return n.Role == models.RoleAssistant && !n.IsLoading()
	})
	if !found {
		return ""
	}

	label, bubble := replyStyles(ok)

	text := node.Text
	if md.Enabled && ok {
		text = render.Reply(text, render.OptionsFromConfig(md).WithWidth(replyWidth))
	}

	return label.Render("Assistant") + "\n" + bubble.Render(text)
}

// readAll reads the piped message from stdin
func readAll(deps *Dependencies) (string, error) {
	data, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
