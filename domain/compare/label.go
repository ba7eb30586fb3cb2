package compare

import (
	"strings"
)

// Label renders a human-readable name for resultset index i: the string
// forms of the template row's key-column values, space separated and
// trimmed. A configured common prefix (typically a long library package
// prefix shared by every generator) is stripped when the label starts
// with it. Cosmetic only.
func (p *Partitioned) Label(i int, stripPrefix string) string {
	if i < 0 || i >= len(p.Resultsets) {
		return ""
	}
	rs := p.Resultsets[i]

	parts := make([]string, 0, len(p.KeyColumns))
	for _, col := range p.KeyColumns {
		parts = append(parts, p.Table.ValueString(rs.Template(), col))
	}
	label := strings.TrimSpace(strings.Join(parts, " "))

	if stripPrefix != "" && strings.HasPrefix(label, stripPrefix) {
		label = strings.TrimSpace(strings.TrimPrefix(label, stripPrefix))
	}
	return label
}

// Labels renders every resultset label in resultset index order
func (p *Partitioned) Labels(stripPrefix string) []string {
	labels := make([]string, len(p.Resultsets))
	for i := range p.Resultsets {
		labels[i] = p.Label(i, stripPrefix)
	}
	return labels
}
