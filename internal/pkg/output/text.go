package output

import (
	"encoding/json"
	"fmt"
	"io"
)

const summaryDivider = "══════════════════════════════════════════════════════"

// TextWriter форматирует Result в человекочитаемый текст.
type TextWriter struct{}

// NewTextWriter создаёт TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write выводит строку статуса, ошибку, данные и блок сводки.
// Dry-run результат выводится как план.
func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}
	if result.DryRun && result.Plan != nil {
		return result.Plan.WriteText(w)
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", result.Command, result.Status); err != nil {
		return err
	}

	if result.Error != nil {
		if _, err := fmt.Fprintf(w, "Error [%s]: %s\n", result.Error.Code, result.Error.Message); err != nil {
			return err
		}
	}

	if err := writeData(w, result.Data); err != nil {
		return err
	}

	if result.Status == StatusError {
		return nil
	}
	return writeSummary(w, result)
}

func writeData(w io.Writer, data any) error {
	if data == nil {
		return nil
	}
	if r, ok := data.(TextRenderer); ok {
		return r.WriteText(w)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать Data: %w", err)
	}
	_, err = fmt.Fprintf(w, "Data: %s\n", raw)
	return err
}

func writeSummary(w io.Writer, result *Result) error {
	if _, err := fmt.Fprintf(w, "\n%s\n📊 Сводка\n%s\n", summaryDivider, summaryDivider); err != nil {
		return err
	}

	if result.Metadata != nil && result.Metadata.DurationMs > 0 {
		if _, err := fmt.Fprintf(w, "⏱️  Время выполнения: %s\n", formatDuration(result.Metadata.DurationMs)); err != nil {
			return err
		}
	}

	if s := result.Summary; s != nil {
		for _, m := range s.KeyMetrics {
			line := fmt.Sprintf("📈 %s: %s", m.Name, m.Value)
			if m.Unit != "" {
				line += " " + m.Unit
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if s.WarningsCount > 0 {
			if _, err := fmt.Fprintf(w, "\n⚠️  Предупреждений: %d\n", s.WarningsCount); err != nil {
				return err
			}
			for _, warn := range s.Warnings {
				if _, err := fmt.Fprintf(w, "   • %s\n", warn); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintln(w, summaryDivider)
	return err
}

// formatDuration: миллисекунды, секунды с десятой долей или минуты с секундами.
func formatDuration(ms int64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dмс", ms)
	case ms < 60_000:
		return fmt.Sprintf("%.1fс", float64(ms)/1000)
	default:
		sec := ms / 1000
		return fmt.Sprintf("%dм %dс", sec/60, sec%60)
	}
}
