package dates

import "time"

// Bound is a date constraint attached to a field. It holds either a literal
// YYYY-MM-DD value or a zero-argument resolver for moving ceilings such as
// "today". The zero value means unbounded.
type Bound struct {
	Value string            `json:"value,omitempty"`
	Fn    func() time.Time  `json:"-"`
}

// On builds a literal bound from a YYYY-MM-DD string.
func On(iso string) Bound {
	return Bound{Value: iso}
}

// At builds a literal bound from a time value.
func At(t time.Time) Bound {
	return Bound{Value: Format(t)}
}

// TodayBound builds a bound that resolves to the current date each time it is
// consulted.
func TodayBound() Bound {
	return Bound{Fn: Today}
}

// IsZero reports whether the bound is unset.
func (b Bound) IsZero() bool {
	return b.Value == "" && b.Fn == nil
}

// Resolve evaluates the bound. The second return is false when the bound is
// unset or its literal value does not parse.
func (b Bound) Resolve() (time.Time, bool) {
	if b.Fn != nil {
		return b.Fn(), true
	}
	if b.Value == "" {
		return time.Time{}, false
	}
	t, err := Parse(b.Value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
