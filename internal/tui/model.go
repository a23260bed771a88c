package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
	"github.com/diogo/chatwidget/internal/render"
	"github.com/diogo/chatwidget/internal/widget"
)

// Animation tick message
type animationTickMsg time.Time

// settledMsg carries the outcome of an exchange back to the UI loop
type settledMsg struct {
	ex  *widget.Exchange
	res widget.Result
}

// ChatOptions configures the chat TUI
type ChatOptions struct {
	Backend  widget.Backend
	Endpoint string
	Logger   *zap.Logger

	// Markdown renders assistant replies through glamour instead of plain text
	Markdown      bool
	RenderOptions render.Options

	// Clipboard copies text; defaults to the system clipboard
	Clipboard func(string) error
}

// Model represents the TUI state
type Model struct {
	widget   *widget.ChatWidget
	log      *widget.Log
	endpoint string
	logger   *zap.Logger

	markdown   bool
	renderOpts render.Options
	copyText   func(string) error

	// UI components. The textarea is shared with the widget as its composer,
	// so it is held by pointer across Model copies.
	viewport viewport.Model
	textarea *textarea.Model
	spinner  spinner.Model

	// State
	pending        *widget.Exchange
	cancel         context.CancelFunc
	ready          bool
	animationFrame int
	feedback       string

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(opts ChatOptions) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	renderOpts := opts.RenderOptions
	if renderOpts.Style == "" {
		renderOpts = render.DefaultOptions()
	}

	log := widget.NewLog()

	return Model{
		widget:     widget.New(&ta, log, opts.Backend, widget.WithLogger(logger)),
		log:        log,
		endpoint:   opts.Endpoint,
		logger:     logger,
		markdown:   opts.Markdown,
		renderOpts: renderOpts,
		copyText:   copyText,
		textarea:   &ta,
		spinner:    s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// awaitReply runs the exchange's backend call off the UI loop
func awaitReply(ctx context.Context, ex *widget.Exchange) tea.Cmd {
	return func() tea.Msg {
		return settledMsg{ex: ex, res: ex.Await(ctx)}
	}
}

func isExitCommand(input string) bool {
	switch input {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 5  // Input panel with border
		statusHeight := 2 // Status bar and feedback line
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.refresh()

	case tea.KeyMsg:
		m.feedback = ""

		switch msg.String() {
		case "ctrl+c":
			m.abandon()
			return m, tea.Quit

		case "esc":
			if m.pending != nil {
				m.cancelPending()
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+y":
			m.copyLastReply()
			return m, nil

		case "enter":
			if m.widget.Busy() {
				return m, nil
			}
			if isExitCommand(strings.TrimSpace(m.textarea.Value())) {
				return m, tea.Quit
			}

			ex, err := m.widget.Begin()
			if err != nil {
				// Empty input: nothing is rendered and nothing is sent
				return m, nil
			}

			ctx, cancel := context.WithCancel(context.Background())
			m.pending = ex
			m.cancel = cancel
			m.animationFrame = 0
			m.refresh()

			return m, tea.Batch(
				awaitReply(ctx, ex),
				m.spinner.Tick,
				animationTick(),
			)
		}

	case settledMsg:
		if err := m.widget.Settle(msg.ex, msg.res); err != nil {
			// A reply for an exchange cancelled with Esc
			m.logger.Debug("dropping stale reply",
				zap.String("exchange", msg.ex.ID.String()),
				zap.Error(err))
		}
		if msg.ex == m.pending {
			m.clearPending()
		}
		m.refresh()

	case spinner.TickMsg:
		if m.pending != nil {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.pending != nil {
			m.animationFrame++
			m.updateViewport()
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if m.pending == nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			*m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// cancelPending settles the in-flight exchange as failed and aborts its request
func (m *Model) cancelPending() {
	ex := m.pending
	m.cancel()
	m.clearPending()
	if err := m.widget.Settle(ex, widget.Result{Err: apierrors.NewTimeoutError("cancelled by user")}); err != nil {
		m.logger.Warn("cancel after settlement", zap.Error(err))
	}
	m.refresh()
}

// abandon aborts the in-flight request without touching the transcript
func (m *Model) abandon() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Model) clearPending() {
	if m.cancel != nil {
		m.cancel()
	}
	m.pending = nil
	m.cancel = nil
}

// copyLastReply copies the most recent assistant reply to the clipboard
func (m *Model) copyLastReply() {
	node, ok := m.log.Last(func(n widget.Node) bool {
		return n.Role == models.RoleAssistant && !n.IsLoading()
	})
	if !ok {
		m.feedback = "Nothing to copy yet"
		return
	}
	if err := m.copyText(node.Text); err != nil {
		m.logger.Warn("clipboard copy failed", zap.Error(err))
		m.feedback = "Clipboard unavailable"
		return
	}
	m.feedback = "Copied last reply to clipboard"
}

// refresh redraws the transcript and honours pending scroll requests
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.updateViewport()
	if m.log.TakeScroll() {
		m.viewport.GotoBottom()
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{titleStyle.Render("✦ Chat")}
	if m.endpoint != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.endpoint),
		)
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Transcript
	var messagesContent string
	if m.log.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Composer
	var inputContent string
	if m.pending != nil {
		inputContent = hintStyle.Render("Waiting for a reply... press Esc to cancel")
	} else {
		inputContent = lipgloss.JoinHorizontal(
			lipgloss.Top,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))
	if m.feedback != "" {
		sections = append(sections, feedbackStyle.Render(m.feedback))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when the transcript is empty
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("How can we help?"),
		"",
		welcomeStyle.Width(width).Render("Type a message below and press Enter"),
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the animated placeholder for a pending reply
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	frame := m.animationFrame

	spin := lipgloss.NewStyle().
		Foreground(gradientColors[frame%len(gradientColors)]).
		Bold(true).
		Render(chars[frame%len(chars)])

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	return fmt.Sprintf("%s %s %s", spin, m.spinner.View(), dots.String())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Cancel/Quit"},
		{"Ctrl+Y", "Copy reply"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport refreshes the viewport content from the transcript
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, node := range m.log.Nodes() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderNode(node, bubbleWidth))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderNode draws one transcript node
func (m Model) renderNode(node widget.Node, width int) string {
	if node.Role == models.RoleUser {
		label := userLabelStyle.Render("⬤ You")
		return label + "\n" + userBubbleStyle.Width(width).Render(node.Text)
	}

	label := assistantLabelStyle.Render("✦ Assistant")
	if node.IsLoading() {
		return label + "\n" + assistantBubbleStyle.Width(width).Render(m.renderLoadingAnimation())
	}

	body := node.Text
	if m.markdown {
		body = render.Reply(node.Text, m.renderOpts.WithWidth(width-4))
	}
	return label + "\n" + assistantBubbleStyle.Width(width).Render(body)
}

// RunChat starts the chat TUI
func RunChat(opts ChatOptions) error {
	p := tea.NewProgram(
		NewChatModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
