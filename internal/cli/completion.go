package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	BashGroup string   // flags with same non-empty BashGroup share a bash case entry
}

// flagRegistry is the central list of all CLI flags for completion generation.
// The order matches the completion output for each shell.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "divisor", Short: "d", Help: "Divisor for the quotient", ValueName: "number"},
	{Long: "input", Short: "i", Help: "Numerator input file", IsFile: true, ValueName: "file"},
	{Long: "output", Short: "o", Help: "Quotient output file", IsFile: true, ValueName: "file"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m", "1h"}, ValueName: "duration"},
	{Long: "buffer-size", Help: "I/O buffer size in bytes", ValueName: "bytes", BashGroup: "size"},
	{Long: "strict", Help: "Reject whitespace around the digits"},
	{Long: "verify", Help: "Cross-check both engines"},
	{Long: "verify-limit", Help: "Numerator cap for verify mode in bytes", ValueName: "bytes", BashGroup: "size"},
	{Long: "metrics-file", Help: "Prometheus textfile path", IsFile: true, ValueName: "file"},
	{Long: "tui", Help: "Run the dashboard interface"},
	{Long: "repl", Help: "Run interactive mode"},
	{Long: "details", Help: "Show performance details"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Display the full quotient value"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// bashGroupValues defines the completion values used in bash for grouped flags.
// Flags sharing the same BashGroup use these values in the bash case statement.
var bashGroupValues = map[string][]string{
	"size": {"16384", "65536", "262144", "1048576"},
}

// zshHelpOverrides provides shell-specific help text overrides for zsh.
// Some flags have slightly different descriptions in zsh's _arguments format.
var zshHelpOverrides = map[string]string{
	"divisor":      "Divisor D of the quotient floor(N/D)",
	"verify-limit": "Numerator cap in bytes for verify mode",
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	case "powershell", "ps":
		return generatePowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagKey returns the identifier used for lookups: Long name if present, else Short.
func flagKey(f FlagCompletion) string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer) error {
	// Build opts string from registry
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	// Build case entries from registry.
	// Order: completion, file, timeout, size (grouped).
	type caseEntry struct {
		patterns []string
		body     string
	}
	bashCaseEntry := func(f FlagCompletion) caseEntry {
		return caseEntry{
			patterns: []string{"--" + f.Long},
			body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
		}
	}
	var orderedCases []caseEntry

	// 1. Completion flag (static values, comes before file/timeout)
	for _, f := range flagRegistry {
		if f.Long == "completion" && len(f.Values) > 0 {
			orderedCases = append(orderedCases, bashCaseEntry(f))
		}
	}

	// 2. File completion flags
	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			if f.Long != "" {
				filePatterns = append(filePatterns, "--"+f.Long)
			}
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		}
	}
	if len(filePatterns) > 0 {
		orderedCases = append(orderedCases, caseEntry{
			patterns: filePatterns,
			body: `# File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )`,
		})
	}

	// 3. Remaining flags with static values (non-file, non-grouped, non-completion)
	for _, f := range flagRegistry {
		if !f.IsFile && f.BashGroup == "" && f.Long != "completion" && len(f.Values) > 0 {
			orderedCases = append(orderedCases, bashCaseEntry(f))
		}
	}

	// 4. Grouped flags (size group)
	seenGroups := map[string]bool{}
	for _, f := range flagRegistry {
		if f.BashGroup != "" && !seenGroups[f.BashGroup] {
			seenGroups[f.BashGroup] = true
			var patterns []string
			for _, gf := range flagRegistry {
				if gf.BashGroup == f.BashGroup {
					patterns = append(patterns, "--"+gf.Long)
				}
			}
			vals := bashGroupValues[f.BashGroup]
			orderedCases = append(orderedCases, caseEntry{
				patterns: patterns,
				body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(vals, " ")),
			})
		}
	}

	// Format case entries
	var caseBody strings.Builder
	for _, c := range orderedCases {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(c.patterns, "|"))
		caseBody.WriteString(")\n")
		caseBody.WriteString("            ")
		caseBody.WriteString(c.body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	script := fmt.Sprintf(`# Bash completion script for divcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_divcalc_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _divcalc_completions divcalc
`, strings.Join(opts, " "), caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer) error {
	// Build _arguments entries from registry
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef divcalc

# Zsh completion script for divcalc
# Add this to your ~/.zshrc or place in $fpath

_divcalc() {
    _arguments -s \
%s
}

_divcalc "$@"
`, strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshHelp returns the help text for a flag in zsh, using an override if available.
func zshHelp(f FlagCompletion) string {
	key := flagKey(f)
	if override, ok := zshHelpOverrides[key]; ok {
		return override
	}
	return f.Help
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	help := zshHelp(f)

	// Build the value suffix
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions (e.g., -divisor)
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		// Has both short and long form
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, help, valueSuffix)
	}
	// Short only
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer) error {
	var lines []string

	lines = append(lines, "# Fish completion script for divcalc")
	lines = append(lines, "# Add this to ~/.config/fish/completions/divcalc.fish")
	lines = append(lines, "")
	lines = append(lines, "# Disable file completion by default")
	lines = append(lines, "complete -c divcalc -f")
	lines = append(lines, "")

	// Group flags into sections for comments.
	type section struct {
		comment string
		flags   []FlagCompletion
	}

	sections := []section{
		{comment: "# Help and version", flags: filterFlags("help", "version")},
		{comment: "# Main options", flags: filterFlags("divisor", "input", "output", "timeout", "buffer-size", "strict")},
		{comment: "# Verification", flags: filterFlags("verify", "verify-limit")},
		{comment: "# Interactive modes", flags: filterFlags("tui", "repl")},
		{comment: "# Output options", flags: filterFlags("details", "quiet", "verbose", "no-color", "metrics-file")},
		{comment: "# Completion", flags: filterFlags("completion")},
	}

	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f))
		}
		lines = append(lines, "")
	}

	script := strings.Join(lines, "\n")

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given long names.
func filterFlags(names ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, name := range names {
		for _, f := range flagRegistry {
			if f.Long == name {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	var parts []string
	parts = append(parts, "complete -c divcalc")

	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		// Takes a value but no suggestions (e.g., -divisor)
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer) error {
	// Build $options entries from registry
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	// Build context-aware switch entries.
	// Only non-grouped flags with static values get context-aware completion.
	// Grouped flags (e.g., the byte-size variants) are omitted.
	// Order: value flags in reverse registry order (completion before timeout).
	var switchEntries []string

	psSwitchEntry := func(f FlagCompletion) string {
		var quotedVals []string
		for _, v := range f.Values {
			quotedVals = append(quotedVals, fmt.Sprintf("'%s'", v))
		}
		return fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quotedVals, ", "))
	}

	var psValueFlags []FlagCompletion
	for _, f := range flagRegistry {
		if !f.IsFile && f.BashGroup == "" && len(f.Values) > 0 {
			psValueFlags = append(psValueFlags, f)
		}
	}
	for i := len(psValueFlags) - 1; i >= 0; i-- {
		switchEntries = append(switchEntries, psSwitchEntry(psValueFlags[i]))
	}

	script := fmt.Sprintf(`# PowerShell completion script for divcalc
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'divcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
