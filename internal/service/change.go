package service

// ChangeDetector reports whether a boolean signal differs from its
// previous observation. The first observation never counts as a change.
type ChangeDetector struct {
	last *bool
}

func NewChangeDetector() *ChangeDetector { return &ChangeDetector{} }

// Observe records v and reports whether it differs from the prior value.
func (d *ChangeDetector) Observe(v bool) bool {
	changed := d.last != nil && *d.last != v
	d.last = &v
	return changed
}
