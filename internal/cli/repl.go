// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive division sessions.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/divcalc/internal/division"
	"github.com/agbru/divcalc/internal/orchestration"
	"github.com/agbru/divcalc/internal/progress"
	"github.com/agbru/divcalc/internal/streams"
	"github.com/agbru/divcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Divisor is the active divisor for calculations.
	Divisor uint64
	// Timeout is the maximum duration for each calculation.
	// Zero or negative disables the per-calculation deadline.
	Timeout time.Duration
	// Strict rejects whitespace around the digit run.
	Strict bool
}

// REPL represents an interactive division session.
type REPL struct {
	config REPLConfig
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - config: REPL configuration. A zero divisor falls back to the default.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(config REPLConfig) *REPL {
	if config.Divisor == 0 {
		config.Divisor = division.DefaultDivisor
	}
	return &REPL{
		config: config,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"div> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 Streaming Division - Interactive Mode%s              %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdiv <digits>%s    - Divide a numerator by the current divisor\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfile <path>%s     - Divide the contents of a file\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdivisor <n>%s     - Change the divisor (currently %d)\n", ui.ColorYellow(), ui.ColorReset(), r.config.Divisor)
	fmt.Fprintf(r.out, "  %sverify <digits>%s - Cross-check both engines for a numerator\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstrict%s          - Toggle strict input parsing\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s          - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "div", "d":
		r.cmdDiv(args)
	case "file", "f":
		r.cmdFile(args)
	case "divisor":
		r.cmdDivisor(args)
	case "verify", "cmp":
		r.cmdVerify(args)
	case "strict":
		r.cmdStrict()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Try to interpret as a numerator for quick division
		if isDigitRun(cmd) {
			r.divide(cmd)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// isDigitRun reports whether s is a nonempty run of ASCII decimal digits.
func isDigitRun(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// cmdDiv handles the "div" command.
func (r *REPL) cmdDiv(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: div <digits>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	if !isDigitRun(args[0]) {
		fmt.Fprintf(r.out, "%sInvalid numerator: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	r.divide(args[0])
}

// sessionContext returns a context honoring the configured timeout.
func (r *REPL) sessionContext() (context.Context, context.CancelFunc) {
	if r.config.Timeout > 0 {
		return context.WithTimeout(context.Background(), r.config.Timeout)
	}
	return context.WithCancel(context.Background())
}

// divide performs a division of a typed numerator with the current divisor.
func (r *REPL) divide(numerator string) {
	divider, err := division.NewDivider(r.config.Divisor)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := r.sessionContext()
	defer cancel()

	display := numerator
	if len(display) > TruncationLimit {
		display = fmt.Sprintf("%s... (%d digits)", numerator[:DisplayEdges], len(numerator))
	}
	fmt.Fprintf(r.out, "Dividing %s%s%s by %s%d%s...\n",
		ui.ColorMagenta(), display, ui.ColorReset(),
		ui.ColorCyan(), r.config.Divisor, ui.ColorReset())

	var quotient strings.Builder
	src := streams.NewDigitReader(strings.NewReader(numerator), r.config.Strict)

	start := time.Now()
	res, err := divider.Divide(ctx, &quotient, src, division.Options{TotalBytes: int64(len(numerator))})
	duration := time.Since(start)

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	r.displayQuotient(quotient.String(), res, duration)
}

// cmdFile handles the "file" command: it divides the digits read from a file,
// showing a spinner with progress while the pass runs.
func (r *REPL) cmdFile(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: file <path>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	divider, err := division.NewDivider(r.config.Divisor)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	in, size, err := streams.OpenInput(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	defer in.Close()

	ctx, cancel := r.sessionContext()
	defer cancel()

	fmt.Fprintf(r.out, "Dividing %s%s%s by %s%d%s...\n",
		ui.ColorMagenta(), args[0], ui.ColorReset(),
		ui.ColorCyan(), r.config.Divisor, ui.ColorReset())

	// Create a progress channel
	progressChan := make(chan progress.ProgressUpdate, 10)

	// Use DisplayProgress to show a spinner and progress bar
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	var quotient strings.Builder
	src := streams.NewDigitReader(in, r.config.Strict)
	opts := division.Options{
		Progress:   progress.NewChannelObserver(progressChan).Update,
		TotalBytes: size,
	}

	start := time.Now()
	res, err := divider.Divide(ctx, &quotient, src, opts)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	r.displayQuotient(quotient.String(), res, duration)
}

// displayQuotient renders the result block shared by the div and file commands.
func (r *REPL) displayQuotient(quotient string, res division.Result, duration time.Duration) {
	durationStr := FormatExecutionDuration(duration)

	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:      %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits:    %s%d%s\n", ui.ColorCyan(), res.DigitsWritten, ui.ColorReset())
	fmt.Fprintf(r.out, "  Remainder: %s%d%s\n", ui.ColorCyan(), res.Remainder, ui.ColorReset())

	numDigits := len(quotient)
	if numDigits > TruncationLimit {
		fmt.Fprintf(r.out, "  N / %d = %s%s...%s%s (truncated)\n",
			r.config.Divisor, ui.ColorGreen(), quotient[:DisplayEdges], quotient[numDigits-DisplayEdges:], ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  N / %d = %s%s%s\n", r.config.Divisor, ui.ColorGreen(), quotient, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdDivisor handles the "divisor" command.
func (r *REPL) cmdDivisor(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: divisor <n>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Current divisor: %d (max %d)\n", r.config.Divisor, division.MaxDivisor)
		return
	}

	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	if _, err := division.NewDivider(n); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	r.config.Divisor = n
	fmt.Fprintf(r.out, "Divisor changed to: %s%d%s\n", ui.ColorGreen(), n, ui.ColorReset())
}

// cmdVerify handles the "verify" command.
func (r *REPL) cmdVerify(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: verify <digits>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	if !isDigitRun(args[0]) {
		fmt.Fprintf(r.out, "%sInvalid numerator: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	numerator := args[0]
	fmt.Fprintf(r.out, "\n%sVerification for a %d digit numerator:%s\n", ui.ColorBold(), len(numerator), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	job := division.Job{
		Numerator: []byte(numerator),
		Divisor:   r.config.Divisor,
		Strict:    r.config.Strict,
	}

	var firstResult string
	haveFirst := false

	for _, eng := range orchestration.EnginesToRun(true) {
		ctx, cancel := r.sessionContext()

		// Create a progress channel for this pass
		progressChan := make(chan progress.ProgressUpdate, 10)
		go func() {
			for range progressChan {
				// Discard progress updates
			}
		}()

		start := time.Now()
		quotient, _, err := eng.Quotient(ctx, progressChan, 0, job)
		duration := time.Since(start)
		close(progressChan)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), eng.Name(), ui.ColorReset(),
				ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		durationStr := FormatExecutionDuration(duration)
		if !haveFirst {
			firstResult = quotient
			haveFirst = true
		}

		// Check consistency
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if quotient != firstResult {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}

		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %s\n",
			ui.ColorYellow(), eng.Name(), ui.ColorReset(),
			ui.ColorCyan(), durationStr, ui.ColorReset(),
			status)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// cmdStrict toggles strict input parsing.
func (r *REPL) cmdStrict() {
	r.config.Strict = !r.config.Strict
	status := "disabled"
	if r.config.Strict {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Strict input parsing: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Divisor:  %s%d%s\n", ui.ColorCyan(), r.config.Divisor, ui.ColorReset())

	timeoutStr := "none"
	if r.config.Timeout > 0 {
		timeoutStr = r.config.Timeout.String()
	}
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ui.ColorCyan(), timeoutStr, ui.ColorReset())

	strictStatus := "no"
	if r.config.Strict {
		strictStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Strict:   %s%s%s\n", ui.ColorCyan(), strictStatus, ui.ColorReset())
	fmt.Fprintln(r.out)
}
