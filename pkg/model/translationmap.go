package model

// TranslationMap maps a source Translatable's canonical string to the
// ordered list of ContextTranslations that may replace it. The
// insertion order matters (see DESIGN.md): lookups never range over the
// underlying map, only over the ordered slice, so variant selection is
// always deterministic regardless of Go's randomized map iteration.
type TranslationMap struct {
	entries map[string][]*ContextTranslation
	order   []string
}

// NewTranslationMap returns an empty TranslationMap.
func NewTranslationMap() *TranslationMap {
	return &TranslationMap{entries: make(map[string][]*ContextTranslation)}
}

// Add appends ct under canonical's entry, recording canonical in insertion
// order the first time it is seen.
func (m *TranslationMap) Add(canonical string, ct *ContextTranslation) {
	if _, exists := m.entries[canonical]; !exists {
		m.order = append(m.order, canonical)
	}
	m.entries[canonical] = append(m.entries[canonical], ct)
}

// Get returns the ordered ContextTranslations registered for canonical.
func (m *TranslationMap) Get(canonical string) ([]*ContextTranslation, bool) {
	v, ok := m.entries[canonical]
	return v, ok
}

// Has reports whether canonical has any registered translations.
func (m *TranslationMap) Has(canonical string) bool {
	_, ok := m.entries[canonical]
	return ok
}

// Len returns the number of distinct canonical source strings registered.
func (m *TranslationMap) Len() int { return len(m.order) }

// Keys returns the canonical source strings in insertion order.
func (m *TranslationMap) Keys() []string {
	return append([]string(nil), m.order...)
}
