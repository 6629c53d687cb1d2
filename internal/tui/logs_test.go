package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/divcalc/internal/config"
	"github.com/agbru/divcalc/internal/division"
	"github.com/agbru/divcalc/internal/orchestration"
	"github.com/agbru/divcalc/internal/progress"
)

func testLogsModel() LogsModel {
	l := NewLogsModel([]string{"streaming", "reference"})
	l.SetSize(60, 20)
	return l
}

// joinedLogText concatenates the raw text of all journal entries.
func joinedLogText(l LogsModel) string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestLogsModel_AddExecutionConfig(t *testing.T) {
	l := testLogsModel()

	cfg := config.AppConfig{
		Divisor:    190,
		InputFile:  "numerator.txt",
		OutputFile: "quotient.txt",
		BufferSize: 64 * 1024,
	}
	l.AddExecutionConfig(cfg)

	if len(l.entries) == 0 {
		t.Fatal("expected configuration entries in the journal")
	}
	text := joinedLogText(l)
	if !strings.Contains(text, "dividing") {
		t.Errorf("expected the journal to describe the division, got %q", text)
	}
	if !strings.Contains(text, "190") {
		t.Errorf("expected the journal to name the divisor, got %q", text)
	}
	if !strings.Contains(text, "strict=") {
		t.Errorf("expected the journal to record the strict setting, got %q", text)
	}
}

func TestLogsModel_AddProgressEntry_Throttle(t *testing.T) {
	l := testLogsModel()

	// The first determinate update always logs.
	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 0.10, Bytes: 100})
	n := len(l.entries)
	if n == 0 {
		t.Fatal("expected the first progress update to be journaled")
	}

	// A sub-step advance is suppressed.
	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 0.11, Bytes: 110})
	if len(l.entries) != n {
		t.Errorf("expected a %.0f%% advance to be throttled", progressLogStep*100)
	}

	// Crossing the next step logs again.
	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 0.20, Bytes: 200})
	if len(l.entries) != n+1 {
		t.Error("expected a full step advance to be journaled")
	}
}

func TestLogsModel_AddProgressEntry_CompletionLogsOnce(t *testing.T) {
	l := testLogsModel()

	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 0.99, Bytes: 990})
	n := len(l.entries)

	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 1.0, Bytes: 1000})
	if len(l.entries) != n+1 {
		t.Fatal("expected the completion update to be journaled")
	}

	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 1.0, Bytes: 1000})
	if len(l.entries) != n+1 {
		t.Error("expected repeated completion updates to be suppressed")
	}
}

func TestLogsModel_AddProgressEntry_Indeterminate(t *testing.T) {
	l := testLogsModel()

	// Below the byte threshold nothing is journaled.
	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: progress.IndeterminateValue, Bytes: 1 << 20})
	if len(l.entries) != 0 {
		t.Error("expected a small indeterminate advance to be suppressed")
	}

	// Crossing the threshold logs.
	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: progress.IndeterminateValue, Bytes: 9 << 20})
	if len(l.entries) != 1 {
		t.Fatal("expected an indeterminate entry after the byte threshold")
	}

	// The next small advance is suppressed again.
	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: progress.IndeterminateValue, Bytes: 10 << 20})
	if len(l.entries) != 1 {
		t.Error("expected the throttle to re-arm after logging")
	}
}

func TestLogsModel_AddProgressEntry_OutOfRangeIndex(t *testing.T) {
	l := testLogsModel()

	// Should not panic or journal anything.
	l.AddProgressEntry(ProgressMsg{EngineIndex: 5, Value: 0.5})
	l.AddProgressEntry(ProgressMsg{EngineIndex: -1, Value: 0.5})

	if len(l.entries) != 0 {
		t.Error("expected out-of-range engine indices to be ignored")
	}
}

func TestLogsModel_AddResults_Agreement(t *testing.T) {
	l := testLogsModel()

	l.AddResults([]orchestration.DivisionResult{
		{Name: "streaming", Quotient: "526", Duration: 10 * time.Millisecond},
		{Name: "reference", Quotient: "526", Duration: 20 * time.Millisecond},
	})

	text := joinedLogText(l)
	if !strings.Contains(text, "OK") {
		t.Errorf("expected per-engine OK lines, got %q", text)
	}
	if !strings.Contains(text, "agree") {
		t.Errorf("expected the agreement verdict, got %q", text)
	}
}

func TestLogsModel_AddResults_Mismatch(t *testing.T) {
	l := testLogsModel()

	l.AddResults([]orchestration.DivisionResult{
		{Name: "streaming", Quotient: "526", Duration: 10 * time.Millisecond},
		{Name: "reference", Quotient: "527", Duration: 20 * time.Millisecond},
	})

	if !strings.Contains(joinedLogText(l), "MISMATCH") {
		t.Error("expected the mismatch verdict in the journal")
	}
}

func TestLogsModel_AddResults_AllFailed(t *testing.T) {
	l := testLogsModel()

	l.AddResults([]orchestration.DivisionResult{
		{Name: "streaming", Err: errors.New("boom"), Duration: time.Millisecond},
		{Name: "reference", Err: errors.New("boom"), Duration: time.Millisecond},
	})

	text := joinedLogText(l)
	if !strings.Contains(text, "FAILED") {
		t.Errorf("expected per-engine failure lines, got %q", text)
	}
	if !strings.Contains(text, "no engine completed") {
		t.Errorf("expected the global failure verdict, got %q", text)
	}
}

func TestLogsModel_AddFinalResult_Materialized(t *testing.T) {
	l := testLogsModel()

	l.AddFinalResult(FinalResultMsg{
		Result: orchestration.DivisionResult{
			Name:     "streaming",
			Quotient: "526",
			Duration: 42 * time.Millisecond,
		},
		Opts: orchestration.PresentationOptions{Divisor: 190},
	})

	text := joinedLogText(l)
	if !strings.Contains(text, "526") {
		t.Errorf("expected the quotient in the journal, got %q", text)
	}
	if !strings.Contains(text, "completed in") {
		t.Errorf("expected the duration line, got %q", text)
	}
}

func TestLogsModel_AddFinalResult_Streamed(t *testing.T) {
	l := testLogsModel()
	l.AddExecutionConfig(config.AppConfig{
		Divisor:    190,
		InputFile:  "numerator.txt",
		OutputFile: "quotient.txt",
	})

	l.AddFinalResult(FinalResultMsg{
		Result: orchestration.DivisionResult{
			Name:     "streaming",
			Quotient: "", // streamed to the sink, not materialized
			Stats:    divisionStats(1000, 998, 57),
			Duration: 42 * time.Millisecond,
		},
		Opts: orchestration.PresentationOptions{Divisor: 190},
	})

	text := joinedLogText(l)
	if !strings.Contains(text, "remainder") {
		t.Errorf("expected the counters line, got %q", text)
	}
	if !strings.Contains(text, "quotient.txt") {
		t.Errorf("expected the output destination, got %q", text)
	}
}

func TestLogsModel_AddFinalResult_AbbreviatesLongQuotients(t *testing.T) {
	l := testLogsModel()

	long := strings.Repeat("7", 200)
	l.AddFinalResult(FinalResultMsg{
		Result: orchestration.DivisionResult{Name: "streaming", Quotient: long},
		Opts:   orchestration.PresentationOptions{Divisor: 190},
	})

	for _, e := range l.entries {
		if len(e.text) > 120 {
			t.Errorf("expected journal lines to stay short, got %d chars", len(e.text))
		}
	}
	if !strings.Contains(joinedLogText(l), "...") {
		t.Error("expected the long quotient to be abbreviated")
	}
}

func TestLogsModel_AddError(t *testing.T) {
	l := testLogsModel()

	l.AddError(ErrorMsg{Err: errors.New("disk full"), Duration: time.Second})

	text := joinedLogText(l)
	if !strings.Contains(text, "disk full") {
		t.Errorf("expected the error text in the journal, got %q", text)
	}
}

func TestLogsModel_Reset(t *testing.T) {
	l := testLogsModel()

	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 0.5, Bytes: 500})
	l.AddProgressEntry(ProgressMsg{EngineIndex: 1, Value: 0.7, Bytes: 700})
	l.follow = false

	l.Reset()

	if !l.follow {
		t.Error("expected follow mode after reset")
	}
	if !strings.Contains(joinedLogText(l), "restarted") {
		t.Error("expected the restart notice after reset")
	}
	for i, v := range l.lastLogged {
		if v >= 0 {
			t.Errorf("engine %d: expected the progress throttle to re-arm, got %f", i, v)
		}
	}

	// The first update after a reset must log again.
	n := len(l.entries)
	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 0.1, Bytes: 100})
	if len(l.entries) != n+1 {
		t.Error("expected the first post-reset update to be journaled")
	}
}

func TestLogsModel_EntryCap(t *testing.T) {
	l := testLogsModel()

	// Indeterminate entries advance by exactly the threshold so each one logs.
	for i := 1; i <= maxLogEntries+100; i++ {
		l.AddProgressEntry(ProgressMsg{
			EngineIndex: 0,
			Value:       progress.IndeterminateValue,
			Bytes:       int64(i) * progressLogBytes,
		})
	}

	if len(l.entries) > maxLogEntries {
		t.Errorf("expected at most %d entries, got %d", maxLogEntries, len(l.entries))
	}
}

func TestLogsModel_RenderToHeight(t *testing.T) {
	l := testLogsModel()
	l.AddProgressEntry(ProgressMsg{EngineIndex: 0, Value: 0.5, Bytes: 500})

	out := l.renderToHeight(12)
	if !strings.Contains(out, "Run Journal") {
		t.Error("expected the panel title")
	}
	if h := lipgloss.Height(out); h != 12 {
		t.Errorf("expected rendered height 12, got %d", h)
	}
}

func TestLogsModel_ScrollBreaksAndRestoresFollow(t *testing.T) {
	l := NewLogsModel([]string{"streaming"})
	l.SetSize(40, 6) // three visible journal lines

	for i := 1; i <= 10; i++ {
		l.AddProgressEntry(ProgressMsg{
			EngineIndex: 0,
			Value:       progress.IndeterminateValue,
			Bytes:       int64(i) * progressLogBytes,
		})
	}
	if !l.follow {
		t.Fatal("precondition: follow mode while at the bottom")
	}

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	if l.follow {
		t.Error("expected scrolling up to leave follow mode")
	}

	l.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if !l.follow {
		t.Error("expected scrolling back to the bottom to restore follow mode")
	}
}

func divisionStats(read, written int64, remainder uint64) division.Result {
	return division.Result{
		DigitsRead:    read,
		BytesRead:     read,
		DigitsWritten: written,
		Remainder:     remainder,
	}
}
