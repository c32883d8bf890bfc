package ao

import "github.com/Carmen-Shannon/umbra-go/logger"

// EngineBuilderOption is a function that configures an Engine during
// construction.
type EngineBuilderOption func(*engine)

// WithQuality is an option builder that sets the initial quality tier.
//
// Parameters:
//   - quality: the tier (clamped)
//
// Returns:
//   - EngineBuilderOption: a function that applies the quality option to an engine
func WithQuality(quality Quality) EngineBuilderOption {
	return func(e *engine) {
		e.kernel = NewKernel(quality)
	}
}

// WithTechnique is an option builder that sets the initial occlusion
// technique. Nil is ignored.
//
// Parameters:
//   - t: the technique
//
// Returns:
//   - EngineBuilderOption: a function that applies the technique option to an engine
func WithTechnique(t Technique) EngineBuilderOption {
	return func(e *engine) {
		if t != nil {
			e.technique = t
		}
	}
}

// WithResolveMode is an option builder that sets the resolver's filter mode.
//
// Parameters:
//   - mode: box or bilateral
//
// Returns:
//   - EngineBuilderOption: a function that applies the resolve mode option to an engine
func WithResolveMode(mode ResolveMode) EngineBuilderOption {
	return func(e *engine) {
		e.resolver.Mode = mode
	}
}

// WithWorkers is an option builder that sets the row fan-out worker count.
// Non-positive values are ignored.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - EngineBuilderOption: a function that applies the worker count option to an engine
func WithWorkers(workers int) EngineBuilderOption {
	return func(e *engine) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithEngineLogger is an option builder that sets the logger used for resize
// and quality-change notices.
//
// Parameters:
//   - log: the logger to inject
//
// Returns:
//   - EngineBuilderOption: a function that applies the logger option to an engine
func WithEngineLogger(log logger.Logger) EngineBuilderOption {
	return func(e *engine) {
		if log != nil {
			e.log = log
		}
	}
}
