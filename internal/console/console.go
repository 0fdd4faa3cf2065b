// Package console renders run progress and summaries to the terminal.
// The Reporter interface decouples the pipeline from presentation: the
// harvest loop emits structured events (severity, message, key=value
// context) and a renderer decides how they look.
package console

// Reporter receives structured run events. Fields are alternating
// key, value pairs giving the event its context (journal name, counts).
type Reporter interface {
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, fields ...string)

	// Section marks the start of a named phase, e.g. one journal.
	Section(title string)

	// Table renders an aligned summary table.
	Table(headers []string, rows [][]string)
}

// pairs walks alternating key, value fields; a trailing key without a
// value is rendered with an empty value rather than dropped.
func pairs(fields []string) [][2]string {
	out := make([][2]string, 0, (len(fields)+1)/2)
	for i := 0; i < len(fields); i += 2 {
		p := [2]string{fields[i], ""}
		if i+1 < len(fields) {
			p[1] = fields[i+1]
		}
		out = append(out, p)
	}
	return out
}
