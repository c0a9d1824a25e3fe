// Package dryrun предоставляет функции для работы с dry-run режимом.
// В dry-run режиме команды строят план изменений в Loupe без обращений на запись.
package dryrun

import (
	"os"
	"strings"

	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
)

// IsDryRun проверяет, включён ли dry-run режим.
// Возвращает true если LOUPE_DRY_RUN равна "true" (без учёта регистра) или "1".
func IsDryRun() bool {
	val := strings.TrimSpace(os.Getenv(constants.EnvDryRun))
	return strings.EqualFold(val, "true") || val == "1"
}

// BuildPlan создаёт план и нумерует шаги начиная с 1.
func BuildPlan(command string, steps ...output.PlanStep) *output.DryRunPlan {
	return BuildPlanWithSummary(command, "", steps...)
}

// BuildPlanWithSummary создаёт план операций с кратким описанием.
func BuildPlanWithSummary(command, summary string, steps ...output.PlanStep) *output.DryRunPlan {
	numbered := make([]output.PlanStep, len(steps))
	for i, step := range steps {
		step.Order = i + 1
		numbered[i] = step
	}
	return &output.DryRunPlan{
		Command:          command,
		Steps:            numbered,
		Summary:          summary,
		ValidationPassed: true,
	}
}

// Step создаёт шаг плана.
func Step(operation string, params map[string]any, changes ...string) output.PlanStep {
	return output.PlanStep{
		Operation:       operation,
		Parameters:      params,
		ExpectedChanges: changes,
	}
}

// Skip создаёт пропущенный шаг плана.
func Skip(operation, reason string) output.PlanStep {
	return output.PlanStep{
		Operation:  operation,
		Skipped:    true,
		SkipReason: reason,
	}
}
