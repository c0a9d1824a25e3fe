// Package output печатает результаты loupectl в виде таблицы, JSON или YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Format — формат вывода.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat проверяет значение флага --output.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("неподдерживаемый формат вывода: %s (допустимые: table, json, yaml)", s)
	}
}

// Printer печатает данные в выбранном формате.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter создаёт Printer.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Format возвращает формат вывода.
func (p *Printer) Format() Format {
	return p.format
}

// Table печатает строки с выравниванием по колонкам.
func (p *Printer) Table(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// JSON печатает data с отступом в два пробела.
func (p *Printer) JSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// YAML печатает data в YAML.
func (p *Printer) YAML(data any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// Print печатает data в формате принтера. Для таблицы вызывается tableFunc.
func (p *Printer) Print(data any, tableFunc func() error) error {
	switch p.format {
	case FormatJSON:
		return p.JSON(data)
	case FormatYAML:
		return p.YAML(data)
	case FormatTable:
		return tableFunc()
	default:
		return fmt.Errorf("неподдерживаемый формат вывода: %s", p.format)
	}
}

// Success печатает сообщение об успешном действии.
func (p *Printer) Success(message string) {
	fmt.Fprintf(p.w, "✓ %s\n", message)
}

// Info печатает информационное сообщение.
func (p *Printer) Info(message string) {
	fmt.Fprintln(p.w, message)
}

// FormatTime форматирует время для таблицы; нулевое время выводится как "-".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
