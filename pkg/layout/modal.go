package layout

// ModalSize classifies the dialog shell hosting a form. Purely a rendering
// hint; it never affects packing.
type ModalSize string

const (
	ModalSmall      ModalSize = "small"
	ModalMedium     ModalSize = "medium"
	ModalLarge      ModalSize = "large"
	ModalExtraLarge ModalSize = "extra-large"
)

// Spacing is the vertical rhythm hint between rows.
type Spacing string

const (
	SpacingCompact     Spacing = "compact"
	SpacingCozy        Spacing = "cozy"
	SpacingComfortable Spacing = "comfortable"
)

// SizeFor classifies the modal from the field count. The thresholds are
// tuning constants.
func SizeFor(fieldCount int) ModalSize {
	switch {
	case fieldCount <= 3:
		return ModalSmall
	case fieldCount <= 8:
		return ModalMedium
	case fieldCount <= 14:
		return ModalLarge
	default:
		return ModalExtraLarge
	}
}

// SpacingFor derives the row spacing from the breakpoint and field count:
// dense forms and narrow viewports tighten up.
func SpacingFor(bp Breakpoint, fieldCount int) Spacing {
	if bp == BreakpointXS || fieldCount > 14 {
		return SpacingCompact
	}
	if bp == BreakpointSM || fieldCount > 8 {
		return SpacingCozy
	}
	return SpacingComfortable
}
