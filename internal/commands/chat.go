package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/chatwidget/internal/render"
	"github.com/diogo/chatwidget/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session against the configured endpoint.

Each message is sent on its own; the backend keeps no history for you.
Press Esc to cancel a pending reply. Type 'exit', 'quit', or press Ctrl+C
to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps, opts)
		},
	}
}

func runChat(deps *Dependencies, opts *rootOptions) error {
	sess, err := openSession(deps, opts)
	if err != nil {
		return err
	}
	defer sess.close()

	if !render.SetTUITheme(sess.cfg.TUITheme) {
		sess.logger.Warn("unknown TUI theme, using default",
			zap.String("theme", sess.cfg.TUITheme),
			zap.String("default", render.DefaultTUITheme))
	}
	tui.UpdateTheme()

	return deps.TUI.RunChat(tui.ChatOptions{
		Backend:       sess.client,
		Endpoint:      sess.client.Endpoint(),
		Logger:        sess.logger,
		Markdown:      sess.cfg.Markdown.Enabled,
		RenderOptions: render.OptionsFromConfig(sess.cfg.Markdown),
		Clipboard:     deps.Clipboard,
	})
}
