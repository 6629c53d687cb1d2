package orchestration

import "github.com/agbru/divcalc/internal/division"

// EnginesToRun determines which engines a run needs based on the verify
// setting. The streaming engine is always present and always index 0, so
// progress displays stay stable between modes; verification adds the
// reference engine alongside it.
//
// Parameters:
//   - verify: Whether the run should cross-check against the reference engine.
//
// Returns:
//   - []division.Engine: The engines to execute, streaming first.
func EnginesToRun(verify bool) []division.Engine {
	engines := []division.Engine{division.NewStreamingEngine()}
	if verify {
		engines = append(engines, division.NewReferenceEngine())
	}
	return engines
}
