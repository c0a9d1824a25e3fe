package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// DryRunPlan — план изменений, которые команда выполнила бы без LOUPE_DRY_RUN.
type DryRunPlan struct {
	Command          string     `json:"command"`
	Steps            []PlanStep `json:"steps"`
	Summary          string     `json:"summary,omitempty"`
	ValidationPassed bool       `json:"validation_passed"`
}

// PlanStep — один шаг плана.
type PlanStep struct {
	Order           int            `json:"order"`
	Operation       string         `json:"operation"`
	Parameters      map[string]any `json:"parameters"`
	ExpectedChanges []string       `json:"expected_changes,omitempty"`
	Skipped         bool           `json:"skipped,omitempty"`
	SkipReason      string         `json:"skip_reason,omitempty"`
}

// WriteText выводит план между заголовками "=== DRY RUN ===".
// Параметры шагов выводятся в порядке ключей.
func (p *DryRunPlan) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== DRY RUN ===\nКоманда: %s\n", p.Command)
	if p.ValidationPassed {
		b.WriteString("Валидация: ✅ Пройдена\n\n")
	} else {
		b.WriteString("Валидация: ❌ Не пройдена\n\n")
	}
	b.WriteString("План выполнения:\n")

	for _, step := range p.Steps {
		if step.Skipped {
			fmt.Fprintf(&b, "  %d. [SKIP] %s: %s\n", step.Order, step.Operation, step.SkipReason)
			continue
		}
		fmt.Fprintf(&b, "  %d. %s\n", step.Order, step.Operation)

		keys := make([]string, 0, len(step.Parameters))
		for k := range step.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "      %s: %s\n", k, sanitizeValue(step.Parameters[k]))
		}

		if len(step.ExpectedChanges) > 0 {
			b.WriteString("      Ожидаемые изменения:\n")
			for _, change := range step.ExpectedChanges {
				fmt.Fprintf(&b, "        - %s\n", change)
			}
		}
	}

	if p.Summary != "" {
		fmt.Fprintf(&b, "\nИтого: %s\n", p.Summary)
	}
	b.WriteString("=== END DRY RUN ===\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDryRunResult пишет dry-run план: текстом или как Result с dry_run=true.
func WriteDryRunResult(w io.Writer, format, command, traceID, apiVersion string, start time.Time, plan *DryRunPlan) error {
	result := &Result{
		Status:  StatusSuccess,
		Command: command,
		DryRun:  true,
		Plan:    plan,
		Metadata: &Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: apiVersion,
		},
	}
	return NewWriter(format).Write(w, result)
}

// sanitizeValue удаляет ANSI escape последовательности и управляющие символы,
// переводы строк и табуляции заменяются пробелом.
func sanitizeValue(v any) string {
	s := fmt.Sprintf("%v", v)

	var out strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
		case r == '\n' || r == '\t':
			out.WriteRune(' ')
		case r < 32 || r == 127:
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
