// Copyright © 2025 The lmnls authors

package analysis

import "github.com/lmntal/lmnls/parser/token"

// occurrenceMap records link occurrences per name in first-seen order.
// Deterministic iteration keeps diagnostics stable across runs.
type occurrenceMap struct {
	names []string
	occ   map[string][]token.Span
}

func newOccurrenceMap() *occurrenceMap {
	return &occurrenceMap{occ: make(map[string][]token.Span)}
}

func (m *occurrenceMap) add(name string, span token.Span) {
	if _, ok := m.occ[name]; !ok {
		m.names = append(m.names, name)
	}
	m.occ[name] = append(m.occ[name], span)
}

func (m *occurrenceMap) get(name string) []token.Span {
	return m.occ[name]
}

func (m *occurrenceMap) delete(name string) {
	delete(m.occ, name)
}

// forEach visits every live name in first-seen order.  The callback may
// delete the current name.
func (m *occurrenceMap) forEach(fn func(name string, occurs []token.Span)) {
	for _, name := range m.names {
		if occurs, ok := m.occ[name]; ok {
			fn(name, occurs)
		}
	}
}

// merge appends other's occurrence lists onto m, preserving order within
// each name.
func (m *occurrenceMap) merge(other *occurrenceMap) {
	other.forEach(func(name string, occurs []token.Span) {
		for _, span := range occurs {
			m.add(name, span)
		}
	})
}

// scopeResult accumulates per-scope analysis state during the walk: link
// and hyperlink occurrences awaiting resolution, plus the outline symbols
// collected so far.  Results merge by unioning occurrence lists per name
// and concatenating outline symbols; after a merge the merged-in value is
// discarded.
type scopeResult struct {
	links      *occurrenceMap
	hyperlinks *occurrenceMap
	outline    []OutlineSymbol
}

func newScopeResult() *scopeResult {
	return &scopeResult{
		links:      newOccurrenceMap(),
		hyperlinks: newOccurrenceMap(),
	}
}

func (r *scopeResult) merge(other *scopeResult) {
	r.links.merge(other.links)
	r.hyperlinks.merge(other.hyperlinks)
	r.outline = append(r.outline, other.outline...)
}
