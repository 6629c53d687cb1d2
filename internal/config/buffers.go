package config

import "github.com/agbru/divcalc/internal/streams"

// Buffer size resolution chain (highest priority first):
//   1. CLI flag (-buffer-size)
//   2. Environment variable (DIVCALC_BUFFER_SIZE)
//   3. Adaptive estimation from the input size (this file)
//   4. Static default in streams (DefaultBufferSize)

// ApplyAdaptiveBufferSize adjusts the configured buffer size based on the
// size of the numerator input when the default value is detected. This keeps
// small inputs from paying for large buffers and large files from being read
// in tiny slices, without requiring explicit tuning.
//
// The function only modifies a buffer size that is set to its zero default,
// preserving any user-specified override via command-line flag or
// environment variable.
func ApplyAdaptiveBufferSize(cfg AppConfig, inputSize int64) AppConfig {
	if cfg.BufferSize == 0 {
		cfg.BufferSize = EstimateOptimalBufferSize(inputSize)
	}
	return cfg
}

// EstimateOptimalBufferSize provides a heuristic estimate of the optimal
// stream buffer size for an input of the given byte size without running
// benchmarks. A negative size means the input size is unknown (stdin, pipes).
func EstimateOptimalBufferSize(inputSize int64) int {
	switch {
	case inputSize < 0:
		return streams.DefaultBufferSize // Unknown size - pipes and stdin
	case inputSize <= 64<<10:
		return 16 << 10 // Small files fit in a few reads
	case inputSize <= 16<<20:
		return 64 << 10 // Default - matches the streams fallback
	case inputSize <= 256<<20:
		return 256 << 10 // Large files amortize syscall overhead
	default:
		return 1 << 20 // Very large files - sequential read-ahead territory
	}
}
