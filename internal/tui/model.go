package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/divcalc/internal/config"
	"github.com/agbru/divcalc/internal/division"
	apperrors "github.com/agbru/divcalc/internal/errors"
	"github.com/agbru/divcalc/internal/orchestration"
	"github.com/agbru/divcalc/internal/streams"
	"github.com/agbru/divcalc/internal/sysmon"
)

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// logsWidth returns the width allocated to the journal panel.
func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (metrics + chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	body := l.bodyHeight()
	h := MetricsPanelHeight
	if h > body/2 {
		h = body / 2
	}
	return h
}

// metricsWidth returns the width allocated to the metrics panel.
func (l LayoutManager) metricsWidth() int {
	return l.rightWidth()
}

// chartHeight returns the height allocated to the activity panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	ref       *programRef
	sampler   *sysmon.Sampler
	paused    bool
	showHelp  bool
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, cfg config.AppConfig, version string) Model {
	engines := orchestration.EnginesToRun(cfg.Verify)
	engineNames := make([]string, len(engines))
	for i, e := range engines {
		engineNames[i] = e.Name()
	}

	ctx, cancel := context.WithCancel(parentCtx)

	logs := NewLogsModel(engineNames)
	logs.AddExecutionConfig(cfg)

	km := DefaultKeyMap()

	return Model{
		header:  NewHeaderModel(version),
		logs:    logs,
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  NewFooterModel(km),
		keymap:  km,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		ref:       &programRef{},
		sampler:   sysmon.NewSampler(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startDivisionCmd(m.ref, m.ctx, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.logs.AddProgressEntry(msg)
			m.metrics.UpdateThroughput(msg.Bytes)
			if msg.Value >= 0 {
				m.chart.SetProgress(msg.AverageProgress, msg.ETA)
			}
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case VerificationResultsMsg:
		m.logs.AddResults(msg.Results)
		return m, nil

	case FinalResultMsg:
		m.logs.AddFinalResult(msg)
		m.metrics.UpdateResult(msg.Result.Stats)
		return m, nil

	case ErrorMsg:
		m.logs.AddError(msg)
		m.done = true
		m.header.SetDone()
		m.footer.SetFailed()
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			m.chart.AddThroughput(m.metrics.Throughput())
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(m.sampler), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateRSS(msg.ProcessRSS)
		return m, nil

	case DivisionCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.chart.SetDone(time.Since(m.header.startTime))
		if msg.ExitCode != apperrors.ExitSuccess {
			m.footer.SetFailed()
		} else {
			m.footer.SetDone()
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keymap.Quit):
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help), msg.String() == "esc":
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		// Cancel the current run
		if m.cancel != nil {
			m.cancel()
		}

		// Create a new context for the restarted run
		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		// Reset all UI components
		m.header.Reset()
		m.logs.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel()
		m.metrics.SetSize(m.metricsWidth(), m.metricsHeight())
		m.footer.Reset()
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		// Restart the division and watchers
		return m, tea.Batch(
			tickCmd(),
			startDivisionCmd(m.ref, m.ctx, m.config, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return renderHelpOverlay(m.width, m.height, m.keymap)
	}

	header := m.header.View()
	footer := m.footer.View()

	metrics := m.metrics.View()
	chart := m.chart.View()

	// Right column: metrics on top, chart on bottom
	rightCol := lipgloss.JoinVertical(lipgloss.Left, metrics, chart)

	// Render the journal panel to match the right column's actual height
	logs := m.logs.renderToHeight(lipgloss.Height(rightCol))

	// Main body: journal on left, right column on right
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, rightCol)

	// Full layout: header + body + footer
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Layout constants for the TUI dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	LogsPanelWidthPercent = 60
	MetricsPanelHeight    = 7 // top line + up to three data rows + borders
)

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startDivisionCmd returns a tea.Cmd that runs the division off the UI
// goroutine and reports the exit code when it finishes.
func startDivisionCmd(ref *programRef, ctx context.Context, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		exitCode := runDivision(ctx, cfg, ref)
		return DivisionCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// runDivision opens the configured input and output and drives one full
// division, streaming or verify, with the dashboard bridge standing in for
// the CLI reporter and presenter. All terminal output goes to io.Discard;
// the journal receives the same information as messages.
func runDivision(ctx context.Context, cfg config.AppConfig, ref *programRef) int {
	reporter := &TUIProgressReporter{ref: ref}
	presenter := &TUIResultPresenter{ref: ref}

	start := time.Now()

	in, size, err := streams.OpenInput(cfg.InputFile)
	if err != nil {
		return presenter.HandleError(err, time.Since(start), io.Discard)
	}
	defer in.Close()

	out, err := streams.OpenOutput(cfg.OutputFile)
	if err != nil {
		return presenter.HandleError(err, time.Since(start), io.Discard)
	}

	cfg = config.ApplyAdaptiveBufferSize(cfg, size)

	var code int
	if cfg.Verify {
		code = runVerify(ctx, cfg, reporter, presenter, in, out)
	} else {
		code = runStream(ctx, cfg, reporter, presenter, in, out, size)
	}

	if cerr := out.Close(); cerr != nil && code == apperrors.ExitSuccess {
		err := apperrors.StreamError{Op: "close", Path: cfg.OutputFile, Cause: cerr}
		code = presenter.HandleError(err, time.Since(start), io.Discard)
	}
	return code
}

// runStream performs the single-pass streaming division.
func runStream(ctx context.Context, cfg config.AppConfig, reporter *TUIProgressReporter, presenter *TUIResultPresenter, in io.Reader, out io.Writer, size int64) int {
	divider, err := division.NewDivider(cfg.Divisor)
	if err != nil {
		return presenter.HandleError(err, 0, io.Discard)
	}

	sink := streams.NewQuotientWriterSize(out, cfg.BufferSize)
	source := streams.NewDigitReaderSize(in, cfg.BufferSize, cfg.Strict)

	res := orchestration.ExecuteStreaming(ctx, orchestration.StreamRun{
		Divider:    divider,
		Source:     source,
		Sink:       sink,
		TotalBytes: size,
	}, reporter, io.Discard)

	if res.Err == nil {
		if err := sink.Newline(); err != nil {
			res.Err = apperrors.StreamError{Op: "write", Path: cfg.OutputFile, Cause: err}
		}
	}
	if err := sink.Flush(); err != nil && res.Err == nil {
		res.Err = apperrors.StreamError{Op: "flush", Path: cfg.OutputFile, Cause: err}
	}
	if res.Err != nil {
		return presenter.HandleError(res.Err, res.Duration, io.Discard)
	}

	presenter.PresentResult(res, presentationOptions(cfg), io.Discard)
	return apperrors.ExitSuccess
}

// runVerify materializes the numerator and cross-checks the streaming
// engine against the reference engine before persisting the quotient.
func runVerify(ctx context.Context, cfg config.AppConfig, reporter *TUIProgressReporter, presenter *TUIResultPresenter, in io.Reader, out io.Writer) int {
	start := time.Now()

	numerator, err := streams.ReadCapped(in, cfg.InputFile, cfg.VerifyLimit)
	if err != nil {
		return presenter.HandleError(err, time.Since(start), io.Discard)
	}

	job := division.Job{Numerator: numerator, Divisor: cfg.Divisor, Strict: cfg.Strict}
	results := orchestration.ExecuteDivisions(ctx, orchestration.EnginesToRun(true), job, reporter, io.Discard)
	code := orchestration.AnalyzeVerificationResults(results, presentationOptions(cfg), presenter, presenter, io.Discard)
	if code != apperrors.ExitSuccess {
		return code
	}

	// Engines agree; persist the agreed quotient. Results are sorted with
	// successes first, so the first entry holds a valid quotient.
	if _, err := io.WriteString(out, results[0].Quotient); err != nil {
		serr := apperrors.StreamError{Op: "write", Path: cfg.OutputFile, Cause: err}
		return presenter.HandleError(serr, time.Since(start), io.Discard)
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		serr := apperrors.StreamError{Op: "write", Path: cfg.OutputFile, Cause: err}
		return presenter.HandleError(serr, time.Since(start), io.Discard)
	}
	return apperrors.ExitSuccess
}

func presentationOptions(cfg config.AppConfig) orchestration.PresentationOptions {
	return orchestration.PresentationOptions{
		Divisor: cfg.Divisor,
		Verbose: cfg.Verbose,
		Details: cfg.Details,
		Quiet:   cfg.Quiet,
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system CPU, memory and process RSS through the
// sampler and returns a SysStatsMsg.
func sampleSysStatsCmd(s *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		st := s.Sample()
		return SysStatsMsg{
			CPUPercent: st.CPUPercent,
			MemPercent: st.MemPercent,
			ProcessRSS: st.ProcessRSS,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
