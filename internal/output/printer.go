package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes command results either as JSON or as styled text.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	color  bool
	styles styles
}

type styles struct {
	err     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	bold    lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	key     lipgloss.Style
	border  lipgloss.Color
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			err: plain, success: plain, warning: plain, bold: plain,
			title: plain, muted: plain, key: plain,
		}
	}
	return styles{
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		bold:    lipgloss.NewStyle().Bold(true),
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		muted:   lipgloss.NewStyle().Faint(true),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		border:  lipgloss.Color("8"),
	}
}

// NewPrinter creates a Printer. Colors and borders are used only when
// color is true; JSON mode ignores styling entirely.
func NewPrinter(writer io.Writer, jsonMode bool, color bool) *Printer {
	return &Printer{
		w:      writer,
		errW:   writer,
		json:   jsonMode,
		color:  color,
		styles: newStyles(color),
	}
}

// WithStderr routes human-mode errors and warnings to w.
// JSON-mode errors stay on the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// Success prints a result. In human mode a "message" key is printed on its
// own; otherwise every key is listed.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.success.Render(msg)))
		return nil
	}
	for key, val := range data {
		mustWrite(fmt.Fprintf(p.w, "%s: %v\n", p.styles.bold.Render(key), val))
	}
	return nil
}

// Error prints err. JSON mode emits {"error": ..., "code": N} on the main
// writer; human mode writes "Error: ..." to the error writer.
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.err.Render("Error"), exitErr.Message))
}

// Warn prints a warning. JSON mode emits {"warning": ...}.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.warning.Render("Warning"), msg))
}

// Stderr writes a hint to the error writer. No-op in JSON mode.
func (p *Printer) Stderr(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.errW, format, args...))
}

// Println writes a line.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON encodes data as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"error": message, "code": code} as bytes.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return result
}

// mustWrite panics on write failure; stdout and buffers are not expected to fail.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Table prints rows under bold headers with space-padded columns.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := columnWidths(headers, rows)

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = p.styles.bold.Render(padRight(h, widths[i]))
	}
	mustWrite(fmt.Fprintln(p.w, strings.Join(cells, "  ")))

	for _, row := range rows {
		n := min(len(row), len(widths))
		cells = cells[:0]
		for i := range n {
			cells = append(cells, padRight(row[i], widths[i]))
		}
		mustWrite(fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, "  "), " ")))
	}
}

func columnWidths(headers []string, rows [][]string) []int {
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
	return widths
}

// Box prints content under a title. With color enabled the content sits in a
// rounded border; otherwise it is printed plain.
func (p *Printer) Box(title string, content string) {
	if !p.color {
		if title != "" {
			mustWrite(fmt.Fprintln(p.w, title))
			mustWrite(fmt.Fprintln(p.w))
		}
		mustWrite(fmt.Fprintln(p.w, content))
		return
	}

	body := content
	if title != "" {
		body = p.styles.title.Render(title) + "\n\n" + content
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.styles.border).
		Padding(0, 1)
	mustWrite(fmt.Fprintln(p.w, style.Render(body)))
}

// Section prints a blank line, then an underlined title.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w))
	mustWrite(fmt.Fprintln(p.w, p.styles.title.Render(title)))
	mustWrite(fmt.Fprintln(p.w, p.styles.muted.Render(strings.Repeat("─", len(title)))))
}

// KeyValue prints "key: value".
func (p *Printer) KeyValue(key string, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.key.Render(key+":"), value))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
