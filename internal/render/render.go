// Package render draws a snapshot as terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"horizonx-probe/internal/core"
)

const listPreview = 3

// Options is passed explicitly to every render call.
type Options struct {
	Color          bool
	MaxColumnWidth int
	Width          int
	Version        string
	Elapsed        time.Duration
}

var (
	accent  = lipgloss.Color("#D97706")
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	blue    = lipgloss.Color("#60A5FA")
)

type styles struct {
	header    lipgloss.Style
	box       lipgloss.Style
	section   lipgloss.Style
	subtitle  lipgloss.Style
	dim       lipgloss.Style
	border    lipgloss.Style
	colHeader lipgloss.Style
	cell      lipgloss.Style
	ok        lipgloss.Style
	warn      lipgloss.Style
	crit      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, width int) styles {
	boxWidth := 68
	if width > 0 && width-2 < boxWidth {
		boxWidth = width - 2
	}
	return styles{
		header:    r.NewStyle().Bold(true).Foreground(accent).Align(lipgloss.Center),
		box:       r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 2).Align(lipgloss.Center).Width(boxWidth),
		section:   r.NewStyle().Bold(true).Foreground(fg),
		subtitle:  r.NewStyle().Bold(true).Foreground(blue),
		dim:       r.NewStyle().Foreground(dim),
		border:    r.NewStyle().Foreground(dim),
		colHeader: r.NewStyle().Bold(true).Foreground(blue).Padding(0, 1),
		cell:      r.NewStyle().Padding(0, 1),
		ok:        r.NewStyle().Foreground(success).Padding(0, 1),
		warn:      r.NewStyle().Foreground(warning).Padding(0, 1),
		crit:      r.NewStyle().Foreground(danger).Bold(true).Padding(0, 1),
	}
}

func (s styles) severity(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityCritical:
		return s.crit
	case core.SeverityWarn:
		return s.warn
	default:
		return s.ok
	}
}

// Renderer writes reports to one output.
type Renderer struct {
	out  io.Writer
	opts Options
	st   styles
}

func New(out io.Writer, opts Options) *Renderer {
	r := lipgloss.NewRenderer(out)
	if !opts.Color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{out: out, opts: opts, st: newStyles(r, opts.Width)}
}

func (r *Renderer) Snapshot(snap *core.Snapshot) error {
	var b strings.Builder

	r.writeHeader(&b, snap)
	for _, cat := range snap.Categories() {
		r.writeCategory(&b, cat, snap.Verbosity())
	}
	r.writeSummary(&b, snap)

	_, err := io.WriteString(r.out, b.String())
	return err
}

// Error reports a fatal failure in the report style.
func (r *Renderer) Error(msg string) error {
	_, err := fmt.Fprintf(r.out, "\n%s\n\n", r.st.crit.Render("Error: "+msg))
	return err
}

// Interrupted reports a user interrupt.
func (r *Renderer) Interrupted() error {
	_, err := fmt.Fprintf(r.out, "\n%s\n\n", r.st.warn.Render("Collection interrupted by user"))
	return err
}

func (r *Renderer) writeHeader(b *strings.Builder, snap *core.Snapshot) {
	lines := []string{
		r.st.header.Render("LINUX SYSTEM SNAPSHOT"),
		r.st.dim.Render("horizonx-probe " + r.opts.Version),
		"",
		fmt.Sprintf("Run Level: %s (%s)", strings.ToUpper(snap.Verbosity().RunLevel()), snap.Verbosity()),
		"Collected: " + snap.CollectedAt().Format("2006-01-02 15:04:05"),
	}
	if snap.Hostname() != "" {
		lines = append(lines, "Host: "+snap.Hostname())
	}
	b.WriteString(r.st.box.Render(strings.Join(lines, "\n")))
	b.WriteString("\n\n")
}

func (r *Renderer) writeCategory(b *strings.Builder, cat *core.Category, v core.Verbosity) {
	tag := r.st.severity(cat.Severity()).UnsetPadding().Render("[" + cat.Severity().Status() + "]")
	fmt.Fprintf(b, "%s %s\n", r.st.section.Render(cat.Title()), tag)

	metrics := cat.Metrics()
	if len(metrics) > 0 {
		rows := make([][]string, 0, len(metrics))
		sevs := make([]core.Severity, 0, len(metrics))
		for _, m := range metrics {
			rows = append(rows, []string{m.Name, r.clip(FormatValue(m.Value, v)), StatusLabel(m)})
			sevs = append(sevs, m.Severity)
		}
		b.WriteString(r.table([]string{"Metric", "Value", "Status"}, rows, func(row, col int) (lipgloss.Style, bool) {
			if col != 2 {
				return lipgloss.Style{}, false
			}
			if rows[row][2] == "UNKNOWN" {
				return r.st.dim.Padding(0, 1), true
			}
			return r.st.severity(sevs[row]), true
		}))
		b.WriteString("\n")
	}

	for _, t := range cat.Tables() {
		if len(t.Rows) == 0 {
			continue
		}
		b.WriteString(r.st.subtitle.Render("  "+t.Name) + "\n")
		rows := make([][]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			cells := make([]string, len(row.Cells))
			for i, c := range row.Cells {
				cells[i] = r.clip(c)
			}
			rows = append(rows, cells)
		}
		last := len(t.Headers) - 1
		b.WriteString(r.table(t.Headers, rows, func(row, col int) (lipgloss.Style, bool) {
			if col != last || t.Rows[row].Severity == core.SeverityInfo {
				return lipgloss.Style{}, false
			}
			return r.st.severity(t.Rows[row].Severity), true
		}))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (r *Renderer) writeSummary(b *strings.Builder, snap *core.Snapshot) {
	sum := snap.Summary()
	b.WriteString(r.st.section.Render("COLLECTION SUMMARY") + "\n")
	b.WriteString(r.table([]string{"Metric", "Value"}, [][]string{
		{"Categories", fmt.Sprint(sum.Categories)},
		{"Warnings", fmt.Sprint(sum.Warnings)},
		{"Critical", fmt.Sprint(sum.Critical)},
		{"Overall Status", sum.Overall},
	}, func(row, col int) (lipgloss.Style, bool) {
		if row == 3 && col == 1 {
			if !sum.Healthy() {
				return r.st.crit, true
			}
			if sum.Warnings > 0 {
				return r.st.warn, true
			}
			return r.st.ok, true
		}
		return lipgloss.Style{}, false
	}))
	b.WriteString("\n\n")

	footer := "Snapshot " + snap.ID().String() + " completed"
	if r.opts.Elapsed > 0 {
		footer += " in " + r.opts.Elapsed.Round(time.Millisecond).String()
	}
	b.WriteString(r.st.dim.Render(footer) + "\n")
}

// table renders rows with the shared border; pick overrides the style of
// individual data cells.
func (r *Renderer) table(headers []string, rows [][]string, pick func(row, col int) (lipgloss.Style, bool)) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.st.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.st.colHeader
			}
			if pick != nil && row >= 0 && row < len(rows) {
				if s, ok := pick(row, col); ok {
					return s
				}
			}
			return r.st.cell
		})
	if r.opts.Width > 0 {
		t = t.Width(r.opts.Width)
	}
	return t.String()
}

func (r *Renderer) clip(s string) string {
	if r.opts.MaxColumnWidth <= 0 {
		return s
	}
	return ansi.Truncate(s, r.opts.MaxColumnWidth, "...")
}

// FormatValue renders a metric value for a table cell. Long lists and maps
// are summarised below the Full level.
func FormatValue(v core.Value, level core.Verbosity) string {
	switch v.Kind() {
	case core.KindList:
		items := v.Items()
		if len(items) <= listPreview {
			return strings.Join(items, ", ")
		}
		if !level.AtLeast(core.Full) {
			return fmt.Sprintf("%d items", len(items))
		}
		return strings.Join(items[:listPreview], ", ") + fmt.Sprintf(" ... (+%d more)", len(items)-listPreview)
	case core.KindMap:
		if !level.AtLeast(core.Full) {
			return fmt.Sprintf("%d keys", v.Len())
		}
		return v.String()
	case core.KindNumber:
		f := v.Float()
		if f == float64(int64(f)) {
			return core.FormatCount(uint64(max(f, 0)))
		}
		return fmt.Sprintf("%.2f", f)
	default:
		return v.String()
	}
}

// StatusLabel is the Status column text for a metric.
func StatusLabel(m core.Metric) string {
	if m.Value.Kind() == core.KindText && m.Severity == core.SeverityInfo {
		switch m.Value.String() {
		case "Unknown", "N/A":
			return "UNKNOWN"
		}
	}
	return m.Severity.Status()
}
