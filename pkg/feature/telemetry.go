package feature

import "strings"

// GetFeatureConfigsTelemetry renders cached evaluations as "{name: VARIATION, ...}".
// Entries follow registry order so the line is stable whatever order the backend used.
// Features missing from the cache are omitted; an empty cache renders "{}".
func (p *Provider) GetFeatureConfigsTelemetry() string {
	cached := p.load()

	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, d := range definitions {
		e, ok := cached[d.ID]
		if !ok {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(d.Name)
		b.WriteString(": ")
		b.WriteString(e.Variation)
	}
	b.WriteByte('}')
	return b.String()
}
