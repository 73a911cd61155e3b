package session

// PlotOrder is the persisted top-to-bottom sequence of plot panels, a
// permutation (or subset) of the store's series names.
type PlotOrder []string

// Index returns the position of name, or -1.
func (p PlotOrder) Index(name string) int {
	for i, n := range p {
		if n == name {
			return i
		}
	}
	return -1
}

// MoveTo removes name from its slot and reinserts it at pos, clamped to the
// valid range. Every other entry keeps its relative order. Reports whether
// the order changed.
func (p PlotOrder) MoveTo(name string, pos int) bool {
	from := p.Index(name)
	if from < 0 {
		return false
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(p) {
		pos = len(p) - 1
	}
	if pos == from {
		return false
	}
	if pos < from {
		copy(p[pos+1:from+1], p[pos:from])
	} else {
		copy(p[from:pos], p[from+1:pos+1])
	}
	p[pos] = name
	return true
}

// Sanitize returns the order filtered to names present in available, with any
// missing available names appended in their natural order. Used when a
// persisted order no longer matches the loaded file.
func (p PlotOrder) Sanitize(available []string) PlotOrder {
	known := make(map[string]bool, len(available))
	for _, n := range available {
		known[n] = true
	}
	out := make(PlotOrder, 0, len(available))
	seen := make(map[string]bool, len(available))
	for _, n := range p {
		if known[n] && !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	for _, n := range available {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return out
}
