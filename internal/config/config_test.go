package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/agbru/divcalc/internal/division"
	apperrors "github.com/agbru/divcalc/internal/errors"
)

// TestParseConfigDefaults verifies that parsing without arguments yields the
// documented defaults.
func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()
	var stderr bytes.Buffer

	cfg, err := ParseConfig("divcalc", nil, &stderr)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.Divisor != division.DefaultDivisor {
		t.Errorf("Divisor = %d, want %d", cfg.Divisor, division.DefaultDivisor)
	}
	if cfg.InputFile != "-" {
		t.Errorf("InputFile = %q, want %q", cfg.InputFile, "-")
	}
	if cfg.OutputFile != "-" {
		t.Errorf("OutputFile = %q, want %q", cfg.OutputFile, "-")
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %s, want 0", cfg.Timeout)
	}
	if cfg.BufferSize != 0 {
		t.Errorf("BufferSize = %d, want 0", cfg.BufferSize)
	}
	if cfg.VerifyLimit != DefaultVerifyLimit {
		t.Errorf("VerifyLimit = %d, want %d", cfg.VerifyLimit, DefaultVerifyLimit)
	}
	if cfg.Strict || cfg.Verify || cfg.TUI || cfg.REPL || cfg.Quiet || cfg.Verbose || cfg.Details || cfg.NoColor {
		t.Errorf("boolean flags should default to false, got %+v", cfg)
	}
}

// TestParseConfigFlags verifies that long flags, short aliases, and value
// flags all land in the right AppConfig fields.
func TestParseConfigFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "Long forms",
			args: []string{"-divisor", "97", "-input", "nums.txt", "-output", "quot.txt", "-timeout", "90s", "-buffer-size", "8192"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Divisor != 97 {
					t.Errorf("Divisor = %d, want 97", cfg.Divisor)
				}
				if cfg.InputFile != "nums.txt" {
					t.Errorf("InputFile = %q, want nums.txt", cfg.InputFile)
				}
				if cfg.OutputFile != "quot.txt" {
					t.Errorf("OutputFile = %q, want quot.txt", cfg.OutputFile)
				}
				if cfg.Timeout != 90*time.Second {
					t.Errorf("Timeout = %s, want 90s", cfg.Timeout)
				}
				if cfg.BufferSize != 8192 {
					t.Errorf("BufferSize = %d, want 8192", cfg.BufferSize)
				}
			},
		},
		{
			name: "Short aliases",
			args: []string{"-d", "53", "-i", "in.txt", "-o", "out.txt", "-q", "-v"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Divisor != 53 {
					t.Errorf("Divisor = %d, want 53", cfg.Divisor)
				}
				if cfg.InputFile != "in.txt" {
					t.Errorf("InputFile = %q, want in.txt", cfg.InputFile)
				}
				if cfg.OutputFile != "out.txt" {
					t.Errorf("OutputFile = %q, want out.txt", cfg.OutputFile)
				}
				if !cfg.Quiet {
					t.Error("Quiet should be true")
				}
				if !cfg.Verbose {
					t.Error("Verbose should be true")
				}
			},
		},
		{
			name: "Mode and presentation flags",
			args: []string{"-strict", "-verify", "-verify-limit", "1024", "-details", "-no-color", "-metrics-file", "run.prom"},
			check: func(t *testing.T, cfg AppConfig) {
				if !cfg.Strict || !cfg.Verify || !cfg.Details || !cfg.NoColor {
					t.Errorf("boolean flags not applied, got %+v", cfg)
				}
				if cfg.VerifyLimit != 1024 {
					t.Errorf("VerifyLimit = %d, want 1024", cfg.VerifyLimit)
				}
				if cfg.MetricsFile != "run.prom" {
					t.Errorf("MetricsFile = %q, want run.prom", cfg.MetricsFile)
				}
			},
		},
		{
			name: "Completion flag",
			args: []string{"-completion", "zsh"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Completion != "zsh" {
					t.Errorf("Completion = %q, want zsh", cfg.Completion)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stderr bytes.Buffer
			cfg, err := ParseConfig("divcalc", tt.args, &stderr)
			if err != nil {
				t.Fatalf("ParseConfig(%v) error = %v", tt.args, err)
			}
			tt.check(t, cfg)
		})
	}
}

// TestParseConfigValidation verifies that invalid settings are rejected with
// the right structured error type.
func TestParseConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantRange bool // DivisorRangeError expected instead of ConfigError
	}{
		{name: "Zero divisor", args: []string{"-d", "0"}, wantRange: true},
		{name: "Divisor above maximum", args: []string{"-d", "1844674407370955162"}, wantRange: true},
		{name: "Negative timeout", args: []string{"-timeout", "-5s"}},
		{name: "Negative buffer size", args: []string{"-buffer-size", "-1"}},
		{name: "Zero verify limit", args: []string{"-verify-limit", "0"}},
		{name: "TUI without output file", args: []string{"-tui", "-i", "n.txt"}},
		{name: "TUI with stdout output", args: []string{"-tui", "-i", "n.txt", "-o", "-"}},
		{name: "TUI with stdin input", args: []string{"-tui", "-o", "out.txt"}},
		{name: "TUI combined with REPL", args: []string{"-tui", "-repl", "-i", "n.txt", "-o", "out.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stderr bytes.Buffer
			_, err := ParseConfig("divcalc", tt.args, &stderr)
			if err == nil {
				t.Fatalf("ParseConfig(%v) should fail", tt.args)
			}

			var rangeErr apperrors.DivisorRangeError
			var configErr apperrors.ConfigError
			switch {
			case tt.wantRange && !errors.As(err, &rangeErr):
				t.Errorf("error = %v, want DivisorRangeError", err)
			case !tt.wantRange && !errors.As(err, &configErr):
				t.Errorf("error = %v, want ConfigError", err)
			}
			if stderr.Len() == 0 {
				t.Error("the invalid setting should be reported on the error writer")
			}
		})
	}
}

// TestParseConfigMaxDivisor verifies the largest legal divisor is accepted.
func TestParseConfigMaxDivisor(t *testing.T) {
	t.Parallel()
	var stderr bytes.Buffer

	cfg, err := ParseConfig("divcalc", []string{"-d", "1844674407370955161"}, &stderr)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Divisor != division.MaxDivisor {
		t.Errorf("Divisor = %d, want %d", cfg.Divisor, division.MaxDivisor)
	}
}

// TestParseConfigHelp verifies that -h surfaces flag.ErrHelp and prints usage.
func TestParseConfigHelp(t *testing.T) {
	t.Parallel()
	var stderr bytes.Buffer

	_, err := ParseConfig("divcalc", []string{"-h"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("error = %v, want flag.ErrHelp", err)
	}
	if stderr.Len() == 0 {
		t.Error("usage output should be written to the error writer")
	}
}

// TestParseConfigUnknownFlag verifies unknown flags are reported as parse
// errors rather than silently ignored.
func TestParseConfigUnknownFlag(t *testing.T) {
	t.Parallel()
	var stderr bytes.Buffer

	_, err := ParseConfig("divcalc", []string{"-no-such-flag"}, &stderr)
	if err == nil {
		t.Fatal("ParseConfig() should fail for an unknown flag")
	}
	if errors.Is(err, flag.ErrHelp) {
		t.Fatalf("error = %v, want a parse error, not help", err)
	}
}

// TestValidateDirect exercises Validate on hand-built configurations.
func TestValidateDirect(t *testing.T) {
	t.Parallel()

	valid := defaultConfig()
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v, want nil", err)
	}

	tui := defaultConfig()
	tui.TUI = true
	tui.InputFile = "numerator.txt"
	tui.OutputFile = "quotient.txt"
	if err := tui.Validate(); err != nil {
		t.Errorf("Validate() with TUI and file streams = %v, want nil", err)
	}
}

// TestIsStdStream verifies standard stream detection.
func TestIsStdStream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"", true},
		{"-", true},
		{"out.txt", false},
		{"./-", false},
	}

	for _, tt := range tests {
		if got := IsStdStream(tt.path); got != tt.want {
			t.Errorf("IsStdStream(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
