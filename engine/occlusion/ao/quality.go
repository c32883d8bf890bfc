package ao

// Quality selects the sampling density of the occlusion pipeline. It maps to
// both the hemisphere kernel size and the shadow PCF tap count so a single
// tier tunes the whole subsystem.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
	QualityUltra
)

// Clamp returns the nearest valid quality tier.
//
// Returns:
//   - Quality: the tier clamped to [QualityLow, QualityUltra]
func (q Quality) Clamp() Quality {
	if q < QualityLow {
		return QualityLow
	}
	if q > QualityUltra {
		return QualityUltra
	}
	return q
}

// KernelSize returns the hemisphere sample count for the tier.
//
// Returns:
//   - int: 32, 64, 128 or 256
func (q Quality) KernelSize() int {
	switch q.Clamp() {
	case QualityLow:
		return 32
	case QualityMedium:
		return 64
	case QualityHigh:
		return 128
	default:
		return 256
	}
}

// PCFSamples returns the shadow PCF tap count for the tier.
//
// Returns:
//   - int: 1, 4, 9 or 16
func (q Quality) PCFSamples() int {
	switch q.Clamp() {
	case QualityLow:
		return 1
	case QualityMedium:
		return 4
	case QualityHigh:
		return 9
	default:
		return 16
	}
}

// String returns the tier name.
//
// Returns:
//   - string: the human-readable tier name
func (q Quality) String() string {
	switch q.Clamp() {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return "ultra"
	}
}
