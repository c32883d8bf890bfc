package cascade

import "github.com/Carmen-Shannon/umbra-go/logger"

// PlannerBuilderOption is a function that configures a Planner during construction.
type PlannerBuilderOption func(*planner)

// WithCascadeCount is an option builder that sets the number of cascades.
// Values are clamped to [1, MaxCascades].
//
// Parameters:
//   - count: the cascade count
//
// Returns:
//   - PlannerBuilderOption: a function that applies the count option to a planner
func WithCascadeCount(count int) PlannerBuilderOption {
	return func(p *planner) {
		if count < 1 {
			count = 1
		}
		if count > MaxCascades {
			count = MaxCascades
		}
		p.count = count
	}
}

// WithLambda is an option builder that sets the uniform/logarithmic blend
// factor of the practical split scheme. Values are clamped to [0, 1].
//
// Parameters:
//   - lambda: the blend factor
//
// Returns:
//   - PlannerBuilderOption: a function that applies the lambda option to a planner
func WithLambda(lambda float32) PlannerBuilderOption {
	return func(p *planner) {
		if lambda < 0 {
			lambda = 0
		}
		if lambda > 1 {
			lambda = 1
		}
		p.lambda = lambda
	}
}

// WithShadowDistance is an option builder that sets the far bound of the last
// cascade in world units.
//
// Parameters:
//   - distance: the shadow distance
//
// Returns:
//   - PlannerBuilderOption: a function that applies the distance option to a planner
func WithShadowDistance(distance float32) PlannerBuilderOption {
	return func(p *planner) {
		if distance > 0 {
			p.shadowDistance = distance
		}
	}
}

// WithEyeDistance is an option builder that sets how far the light eye is
// pulled back from the cascade centroid. Derive this from scene bounds when
// casters can sit far above the visible slice.
//
// Parameters:
//   - distance: the eye pullback distance in world units
//
// Returns:
//   - PlannerBuilderOption: a function that applies the eye distance option to a planner
func WithEyeDistance(distance float32) PlannerBuilderOption {
	return func(p *planner) {
		if distance > 0 {
			p.eyeDistance = distance
		}
	}
}

// WithLogger is an option builder that sets the logger used for degraded
// cascade warnings.
//
// Parameters:
//   - log: the logger to inject
//
// Returns:
//   - PlannerBuilderOption: a function that applies the logger option to a planner
func WithLogger(log logger.Logger) PlannerBuilderOption {
	return func(p *planner) {
		if log != nil {
			p.log = log
		}
	}
}
