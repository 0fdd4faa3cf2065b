package console

import (
	"fmt"
	"io"
	"strings"
)

// Plain renders events as unstyled level-prefixed lines, suitable for
// piping and non-interactive runs.
type Plain struct {
	W io.Writer
}

// NewPlain creates a plain reporter writing to w.
func NewPlain(w io.Writer) *Plain {
	return &Plain{W: w}
}

func (p *Plain) Info(msg string, fields ...string) {
	p.line("INFO", msg, fields)
}

func (p *Plain) Warn(msg string, fields ...string) {
	p.line("WARN", msg, fields)
}

func (p *Plain) Error(msg string, fields ...string) {
	p.line("ERROR", msg, fields)
}

func (p *Plain) Section(title string) {
	fmt.Fprintf(p.W, "==> %s\n", title)
}

// Table renders the rows space-aligned under their headers.
func (p *Plain) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	p.tableLine(headers, widths)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	p.tableLine(sep, widths)
	for _, row := range rows {
		p.tableLine(row, widths)
	}
}

func (p *Plain) tableLine(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], c)
	}
	fmt.Fprintln(p.W, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func (p *Plain) line(level, msg string, fields []string) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(": ")
	b.WriteString(msg)
	for _, pr := range pairs(fields) {
		b.WriteString(" ")
		b.WriteString(pr[0])
		b.WriteString("=")
		b.WriteString(pr[1])
	}
	fmt.Fprintln(p.W, b.String())
}
