package formatter

import (
	"strconv"
	"strings"
)

// BuildText renders a header line followed by "Name :: tooltip" for each station
func (rb *responseBuilder) BuildText(res *TrafficResponse) []byte {
	var b strings.Builder
	sc := res.Scatter
	b.WriteString(res.System)
	b.WriteString(" @ ")
	b.WriteString(sc.TimeLabel)
	b.WriteString(" (max ")
	b.WriteString(strconv.Itoa(sc.MaxTraffic))
	b.WriteString(" trips)\n")
	for _, m := range sc.Markers {
		name := m.Name
		if name == "" {
			name = m.ID
		}
		b.WriteString(name)
		b.WriteString(" :: ")
		b.WriteString(m.Tooltip)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
