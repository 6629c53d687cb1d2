package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/divcalc/internal/config"
	"github.com/agbru/divcalc/internal/division"
	"github.com/agbru/divcalc/internal/format"
	"github.com/agbru/divcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the input source, divisor, timeout, environment details, and the
// I/O settings of the run.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for status output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	input := cfg.InputFile
	if config.IsStdStream(input) {
		input = "stdin"
	}

	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	if cfg.Timeout > 0 {
		fmt.Fprintf(out, "Dividing %s%s%s by %s%d%s with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), input, ui.ColorReset(),
			ui.ColorMagenta(), cfg.Divisor, ui.ColorReset(),
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Dividing %s%s%s by %s%d%s with no timeout.\n",
			ui.ColorMagenta(), input, ui.ColorReset(),
			ui.ColorMagenta(), cfg.Divisor, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())

	buffer := "auto"
	if cfg.BufferSize > 0 {
		buffer = format.FormatBytes(uint64(cfg.BufferSize))
	}
	fmt.Fprintf(out, "I/O settings: buffer=%s%s%s, strict=%s%v%s.\n",
		ui.ColorCyan(), buffer, ui.ColorReset(),
		ui.ColorCyan(), cfg.Strict, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single pass vs verification).
//
// Parameters:
//   - engines: The slice of engines that will be executed.
//   - out: The writer for status output.
func PrintExecutionMode(engines []division.Engine, out io.Writer) {
	var modeDesc string
	if len(engines) > 1 {
		modeDesc = "Cross-check of all engines"
	} else {
		modeDesc = fmt.Sprintf("Single pass with the %s%s%s engine",
			ui.ColorGreen(), engines[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
