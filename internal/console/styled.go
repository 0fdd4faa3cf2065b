package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	cyan       = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bold       = lipgloss.NewStyle().Bold(true)
	dim        = lipgloss.NewStyle().Faint(true)
	yellow     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	red        = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerCell = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

// Styled renders events with lipgloss colors for interactive terminals.
type Styled struct {
	W io.Writer
}

// NewStyled creates a styled reporter writing to w.
func NewStyled(w io.Writer) *Styled {
	return &Styled{W: w}
}

func (s *Styled) Info(msg string, fields ...string) {
	fmt.Fprintln(s.W, msg+renderFields(fields))
}

func (s *Styled) Warn(msg string, fields ...string) {
	fmt.Fprintln(s.W, yellow.Render("warning:")+" "+msg+renderFields(fields))
}

func (s *Styled) Error(msg string, fields ...string) {
	fmt.Fprintln(s.W, red.Render("error:")+" "+msg+renderFields(fields))
}

func (s *Styled) Section(title string) {
	fmt.Fprintln(s.W)
	fmt.Fprintln(s.W, boxStyle.Render(bold.Render(title)))
}

func (s *Styled) Table(headers []string, rows [][]string) {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			if col == 0 {
				return cyan
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(s.W, t.Render())
}

func renderFields(fields []string) string {
	out := ""
	for _, p := range pairs(fields) {
		out += " " + dim.Render(p[0]+"="+p[1])
	}
	return out
}
