// Package tui implements the terminal step display driven by the process
// event stream.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/initializ/stepper/internal/tui/components"
	"github.com/initializ/stepper/logging"
	"github.com/initializ/stepper/process"
	"github.com/initializ/stepper/stream"
)

const (
	// TransportErrorText is shown for every connection-level failure.
	TransportErrorText = "Koneksi terputus"

	heading     = "Proses Data"
	buttonLabel = "Mulai Proses"
)

// Options configures a Display.
type Options struct {
	Endpoint string
	// Rearm drops the session reference when a session ends so the start
	// control re-enables. When false the control stays disabled after the
	// first run.
	Rearm     bool
	AutoStart bool
	// Plain, when set, receives one line per state change and the program
	// quits as soon as the session ends.
	Plain   io.Writer
	Version string
	Theme   TermTheme
}

// Display is the bubbletea model for the step display. It owns the board,
// the active session (if any) and the error text.
type Display struct {
	ctx    context.Context
	source stream.Source
	logger logging.Logger
	opts   Options
	styles *StyleSet

	board       *process.Board
	session     *session
	lastSession string
	errText     string
	notice  string

	list   components.StepList
	keys   keyMap
	hint   components.KbdHint
	width  int
	plain  io.Writer
	failed bool
}

// NewDisplay creates a display reading from source. ctx bounds every
// subscription it opens.
func NewDisplay(ctx context.Context, source stream.Source, logger logging.Logger, opts Options) *Display {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Endpoint == "" {
		opts.Endpoint = stream.DefaultEndpoint
	}
	if opts.Theme.Name == "" {
		opts.Theme = DarkTheme
	}
	styles := NewStyleSet(opts.Theme)

	keys := defaultKeyMap()
	hint := components.NewKbdHint(styles.KbdKey, styles.KbdDesc)
	hint.Bindings = []key.Binding{keys.Start, keys.Quit}

	return &Display{
		ctx:    ctx,
		source: source,
		logger: logger,
		opts:   opts,
		styles: styles,
		board:  process.NewBoard(),
		list: components.NewStepList(components.StepListStyles{
			Title:           styles.PrimaryTxt.Bold(true),
			Pending:         styles.DimTxt,
			Active:          styles.AccentTxt,
			Success:         styles.SuccessTxt,
			Error:           styles.ErrorTxt,
			BadgePending:    styles.BadgePending,
			BadgeProcessing: styles.BadgeProcessing,
			BadgeCompleted:  styles.BadgeCompleted,
			BadgeFailed:     styles.BadgeFailed,
		}, opts.Theme.Accent),
		keys:  keys,
		hint:  hint,
		width: 80,
		plain: opts.Plain,
	}
}

// Steps returns the current steps in display order.
func (d *Display) Steps() []process.Step { return d.board.Steps() }

// Err returns the visible error text, or "".
func (d *Display) Err() string { return d.errText }

// Notice returns the completion text sent by the server, or "".
func (d *Display) Notice() string { return d.notice }

// Active reports whether a session reference is held. The start control is
// enabled exactly when Active is false.
func (d *Display) Active() bool { return d.session != nil }

// Failed reports whether the last session ended with an error.
func (d *Display) Failed() bool { return d.failed }

// Init starts the spinner and, with AutoStart, the first process.
func (d *Display) Init() tea.Cmd {
	cmds := []tea.Cmd{d.list.Init()}
	if d.opts.AutoStart {
		cmds = append(cmds, func() tea.Msg { return startMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the display.
func (d *Display) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.hint.SetWidth(msg.Width - 2)
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Quit):
			d.Teardown()
			return d, tea.Quit
		case key.Matches(msg, d.keys.Start):
			return d, d.Start()
		}
		return d, nil

	case startMsg:
		return d, d.Start()

	case streamMessageMsg:
		if !d.current(msg.sessionID) {
			return d, nil
		}
		return d, d.handlePayload(msg.data)

	case transportErrorMsg:
		if !d.current(msg.sessionID) {
			return d, nil
		}
		d.logger.Warn("transport error", map[string]any{"session_id": msg.sessionID, "error": msg.err.Error()})
		d.errText = TransportErrorText
		d.failed = true
		d.printf("error: %s\n", d.errText)
		return d, d.endSession("transport_error")

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.list, cmd = d.list.Update(msg)
		return d, cmd
	}

	return d, nil
}

// Start resets the board, clears the error and opens a new subscription.
// It is a no-op while a session reference is held.
func (d *Display) Start() tea.Cmd {
	if d.session != nil {
		return nil
	}

	d.board.Reset()
	d.errText = ""
	d.notice = ""
	d.failed = false

	h, err := d.source.Open(d.ctx, d.opts.Endpoint)
	if err != nil {
		d.logger.Error("opening stream", map[string]any{"endpoint": d.opts.Endpoint, "error": err.Error()})
		d.errText = TransportErrorText
		d.failed = true
		d.printf("error: %s\n", d.errText)
		return d.afterEnd()
	}

	d.session = newSession(uuid.NewString(), h)
	d.lastSession = d.session.id
	d.logger.Info("session started", map[string]any{"session_id": d.session.id, "endpoint": d.opts.Endpoint})
	d.printf("%s: %s\n", buttonLabel, d.opts.Endpoint)
	return d.session.wait()
}

// Teardown releases any open session. It is safe to call more than once.
func (d *Display) Teardown() {
	if d.session == nil {
		return
	}
	if !d.session.ended {
		d.logger.Info("session closed on teardown", map[string]any{"session_id": d.session.id})
	}
	d.session.release()
}

func (d *Display) phase() runPhase {
	switch {
	case d.session != nil && !d.session.ended:
		return phaseRunning
	case d.failed:
		return phaseFailed
	case d.lastSession != "":
		return phaseDone
	}
	return phaseIdle
}

func (d *Display) current(sessionID string) bool {
	return d.session != nil && !d.session.ended && d.session.id == sessionID
}

func (d *Display) handlePayload(data []byte) tea.Cmd {
	sid := d.session.id

	msg, err := process.DecodeMessage(data)
	if err != nil {
		d.logger.Warn("dropping stream message", map[string]any{
			"session_id": sid,
			"error":      err.Error(),
			"payload":    string(data),
		})
		return d.session.wait()
	}

	switch msg.Type {
	case process.TypeStepUpdate:
		if !d.board.Apply(msg) {
			d.logger.Debug("step update for unknown step", map[string]any{"session_id": sid, "step_id": msg.StepID})
			return d.session.wait()
		}
		d.logger.Debug("step updated", map[string]any{"session_id": sid, "step_id": msg.StepID, "status": msg.Status.String()})
		if step, ok := d.board.Step(msg.StepID); ok {
			d.printf("[%d/%d] %s: %s\n", step.ID, d.board.Len(), step.Title, step.Status.Label())
		}
		return d.session.wait()

	case process.TypeProcessComplete:
		d.notice = msg.Message
		if d.notice != "" {
			d.printf("%s\n", d.notice)
		}
		return d.endSession("complete")

	case process.TypeError:
		d.errText = msg.Message
		d.failed = true
		d.printf("error: %s\n", d.errText)
		return d.endSession("error")
	}

	return d.session.wait()
}

// endSession is the single release path for terminal events.
func (d *Display) endSession(reason string) tea.Cmd {
	s := d.session
	if s == nil {
		return nil
	}
	s.release()
	d.logger.Info("session ended", map[string]any{"session_id": s.id, "reason": reason})
	if d.opts.Rearm {
		d.session = nil
	}
	return d.afterEnd()
}

func (d *Display) afterEnd() tea.Cmd {
	if d.plain != nil {
		return tea.Quit
	}
	return nil
}

func (d *Display) printf(format string, args ...any) {
	if d.plain == nil {
		return
	}
	fmt.Fprintf(d.plain, format, args...) //nolint:errcheck
}

// View renders the display.
func (d *Display) View() string {
	if d.plain != nil {
		return ""
	}

	var out string
	out += "\n" + renderBanner(d.styles, bannerInfo{
		version:   d.opts.Version,
		endpoint:  d.opts.Endpoint,
		sessionID: d.lastSession,
		phase:     d.phase(),
	}, d.width)
	out += "  " + d.styles.Title.Render(heading) + "\n\n"
	out += d.list.View(d.board.Steps())

	if d.errText != "" {
		out += "  " + d.styles.ErrorBox.Render(d.errText) + "\n\n"
	}
	if d.notice != "" {
		out += "  " + d.styles.SuccessTxt.Render(d.notice) + "\n\n"
	}

	button := components.Button{
		Label:         buttonLabel,
		Enabled:       !d.Active(),
		EnabledStyle:  d.styles.ButtonEnabled,
		DisabledStyle: d.styles.ButtonDisabled,
	}
	out += button.View() + "\n\n"

	start := d.keys.Start
	start.SetEnabled(!d.Active())
	hint := d.hint
	hint.Bindings = []key.Binding{start, d.keys.Quit}
	out += hint.View() + "\n"
	return out
}
