package layout

// Pressure is an optional, caller-injected resource signal. Renderers consult
// it to shrink option-list caps and drop animation hints; it must never
// change packing results. The specific divisors are tuning constants,
// "smaller is more conservative" is the only contract.
type Pressure int

const (
	PressureNormal Pressure = iota
	PressureDegraded
	PressureCritical
)

func (p Pressure) String() string {
	switch p {
	case PressureDegraded:
		return "degraded"
	case PressureCritical:
		return "critical"
	default:
		return "normal"
	}
}

// OptionCap shrinks a base option-list cap under pressure.
func (p Pressure) OptionCap(base int) int {
	if base <= 0 {
		return 0
	}
	switch p {
	case PressureDegraded:
		if base/2 < 10 {
			return 10
		}
		return base / 2
	case PressureCritical:
		if base/4 < 5 {
			return 5
		}
		return base / 4
	default:
		return base
	}
}

// Animate reports whether the modal shell may animate.
func (p Pressure) Animate() bool {
	return p == PressureNormal
}
