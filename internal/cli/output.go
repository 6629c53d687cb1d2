// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayQuotient], [DisplayRunLine], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatRunLine], [FormatExecutionDuration].
//
//   - Print* functions write execution banners ahead of a run.
//     Examples: [PrintExecutionConfig], [PrintExecutionMode].

package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/agbru/divcalc/internal/division"
	"github.com/agbru/divcalc/internal/format"
	"github.com/agbru/divcalc/internal/ui"
)

// FormatRunLine formats the counters of a completed pass as a single compact
// line suitable for the default (non-details) summary.
//
// Parameters:
//   - stats: The pass counters.
//   - duration: The pass duration.
//
// Returns:
//   - string: The formatted summary line.
func FormatRunLine(stats division.Result, duration time.Duration) string {
	return fmt.Sprintf("read %s digits, wrote %s digits, remainder %s, in %s",
		format.FormatNumberString(strconv.FormatInt(stats.DigitsRead, 10)),
		format.FormatNumberString(strconv.FormatInt(stats.DigitsWritten, 10)),
		format.FormatNumberString(strconv.FormatUint(stats.Remainder, 10)),
		format.FormatExecutionDuration(duration))
}

// DisplayRunLine outputs the compact one-line summary of a completed pass.
//
// Parameters:
//   - out: The output writer.
//   - stats: The pass counters.
//   - duration: The pass duration.
func DisplayRunLine(out io.Writer, stats division.Result, duration time.Duration) {
	fmt.Fprintf(out, "%sDone:%s %s\n", ui.ColorGreen(), ui.ColorReset(), FormatRunLine(stats, duration))
}

// DisplayQuotient displays a materialized quotient value. Small quotients are
// shown in full with thousand separators; large ones are truncated to their
// leading and trailing digits unless verbose is set.
//
// Parameters:
//   - quotient: The quotient digit string.
//   - divisor: The divisor used, shown for context.
//   - verbose: Display the full value regardless of its length.
//   - out: The output writer.
func DisplayQuotient(quotient string, divisor uint64, verbose bool, out io.Writer) {
	numDigits := len(quotient)
	fmt.Fprintf(out, "\n%sCalculated value:%s\n", ui.ColorBold(), ui.ColorReset())

	switch {
	case numDigits <= TruncationLimit:
		fmt.Fprintf(out, "N / %d = %s%s%s\n",
			divisor, ui.ColorGreen(), format.FormatNumberString(quotient), ui.ColorReset())
	case verbose:
		fmt.Fprintf(out, "N / %d = %s%s%s\n", divisor, ui.ColorGreen(), quotient, ui.ColorReset())
	default:
		fmt.Fprintf(out, "N / %d = %s%s...%s%s (truncated)\n",
			divisor, ui.ColorGreen(),
			quotient[:DisplayEdges], quotient[numDigits-DisplayEdges:], ui.ColorReset())
		fmt.Fprintf(out, "%sTip: use -v to display all %d digits.%s\n",
			ui.ColorYellow(), numDigits, ui.ColorReset())
	}
}

// DisplayDetails outputs the detailed analysis of a completed pass, including
// throughput figures derived from the counters.
//
// Parameters:
//   - stats: The pass counters.
//   - duration: The pass duration.
//   - out: The output writer.
func DisplayDetails(stats division.Result, duration time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Calculation time:         %s%s%s\n",
		ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "Number of digits read:    %s%s%s\n",
		ui.ColorCyan(), format.FormatNumberString(strconv.FormatInt(stats.DigitsRead, 10)), ui.ColorReset())
	fmt.Fprintf(out, "Number of digits written: %s%s%s\n",
		ui.ColorCyan(), format.FormatNumberString(strconv.FormatInt(stats.DigitsWritten, 10)), ui.ColorReset())
	fmt.Fprintf(out, "Input size:               %s%s%s\n",
		ui.ColorCyan(), format.FormatBytes(uint64(stats.BytesRead)), ui.ColorReset())
	fmt.Fprintf(out, "Remainder:                %s%s%s\n",
		ui.ColorCyan(), format.FormatNumberString(strconv.FormatUint(stats.Remainder, 10)), ui.ColorReset())

	if duration > 0 && stats.DigitsRead > 0 {
		digitsPerSec := float64(stats.DigitsRead) / duration.Seconds()
		bytesPerSec := float64(stats.BytesRead) / duration.Seconds()
		fmt.Fprintf(out, "Throughput:               %s%s digits/s (%s/s)%s\n",
			ui.ColorCyan(),
			format.FormatNumberString(strconv.FormatInt(int64(digitsPerSec), 10)),
			format.FormatBytes(uint64(bytesPerSec)),
			ui.ColorReset())
	}
}
