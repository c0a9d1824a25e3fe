package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(filepath.Join("testdata", "schema", "result.schema.json"))
	require.NoError(t, err, "не удалось загрузить JSON Schema")
	return schema
}

func validate(t *testing.T, schema *jsonschema.Schema, raw []byte) {
	t.Helper()
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.NoError(t, schema.Validate(inst))
}

func TestNewWriter(t *testing.T) {
	assert.IsType(t, &JSONWriter{}, NewWriter("json"))
	assert.IsType(t, &JSONWriter{}, NewWriter(" JSON "))
	assert.IsType(t, &TextWriter{}, NewWriter("text"))
	assert.IsType(t, &TextWriter{}, NewWriter("yaml"))
	assert.IsType(t, &TextWriter{}, NewWriter(""))
}

func TestJSONWriter_SchemaValidation(t *testing.T) {
	schema := loadSchema(t)

	summary := NewSummaryInfo()
	summary.AddMetric("Открытых проблем", "2", "")
	summary.AddWarning("версия 1.0.0-rc не найдена")

	tests := []struct {
		name   string
		result *Result
	}{
		{
			name: "успех",
			result: &Result{
				Status:  StatusSuccess,
				Command: "ensure-version",
				Data:    map[string]string{"action": "created", "version": "1.2.0"},
				Metadata: &Metadata{
					DurationMs: 150,
					TraceID:    "0123456789abcdef0123456789abcdef",
					APIVersion: "v1",
				},
				Summary: summary,
			},
		},
		{
			name: "ошибка",
			result: &Result{
				Status:   StatusError,
				Command:  "enumerate-issues",
				Error:    &ErrorInfo{Code: "LOUPE.API_FAILED", Message: "The server returned an error (500): boom"},
				Metadata: &Metadata{DurationMs: 10, APIVersion: "v1"},
			},
		},
		{
			name: "dry-run",
			result: &Result{
				Status:  StatusSuccess,
				Command: "ensure-version",
				DryRun:  true,
				Plan: &DryRunPlan{
					Command:          "ensure-version",
					ValidationPassed: true,
					Steps:            []PlanStep{{Order: 1, Operation: "Создание версии", Parameters: map[string]any{"version": "1.2.0"}}},
				},
				Metadata: &Metadata{APIVersion: "v1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewJSONWriter().Write(&buf, tt.result))
			validate(t, schema, buf.Bytes())
		})
	}
}

func TestJSONWriter_SummaryInMetadata(t *testing.T) {
	summary := NewSummaryInfo()
	summary.AddMetric("Проблем", "3", "шт")
	meta := &Metadata{DurationMs: 5, APIVersion: "v1"}
	result := &Result{Status: StatusSuccess, Command: "enumerate-issues", Metadata: meta, Summary: summary}

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, result))

	var parsed struct {
		Metadata struct {
			Summary struct {
				KeyMetrics []KeyMetric `json:"key_metrics"`
			} `json:"summary"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed.Metadata.Summary.KeyMetrics, 1)
	assert.Equal(t, "3", parsed.Metadata.Summary.KeyMetrics[0].Value)

	assert.Nil(t, meta.Summary, "входной result не изменяется")
}

func TestJSONWriter_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, nil))
	assert.Equal(t, "null\n", buf.String())
}

type tableData []string

func (d tableData) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, strings.Join(d, "|"))
	return err
}

func TestTextWriter(t *testing.T) {
	t.Run("успех с данными и сводкой", func(t *testing.T) {
		summary := NewSummaryInfo()
		summary.AddMetric("Закрытых проблем", "1", "")
		summary.AddWarning("нет submitter")

		var buf bytes.Buffer
		require.NoError(t, NewTextWriter().Write(&buf, &Result{
			Status:   StatusSuccess,
			Command:  "ensure-version",
			Data:     map[string]string{"action": "updated"},
			Metadata: &Metadata{DurationMs: 1500},
			Summary:  summary,
		}))

		out := buf.String()
		assert.Contains(t, out, "ensure-version: success\n")
		assert.Contains(t, out, `"action": "updated"`)
		assert.Contains(t, out, "Время выполнения: 1.5с")
		assert.Contains(t, out, "📈 Закрытых проблем: 1\n")
		assert.Contains(t, out, "Предупреждений: 1")
	})

	t.Run("ошибка без сводки", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextWriter().Write(&buf, &Result{
			Status:  StatusError,
			Command: "ensure-version",
			Error:   &ErrorInfo{Code: "LOUPE.NOT_FOUND", Message: "version '3.0' not found in Loupe."},
		}))
		out := buf.String()
		assert.Contains(t, out, "Error [LOUPE.NOT_FOUND]: version '3.0' not found in Loupe.")
		assert.NotContains(t, out, "Сводка")
	})

	t.Run("данные с собственным текстовым видом", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextWriter().Write(&buf, &Result{
			Status:  StatusSuccess,
			Command: "suggest",
			Data:    tableData{"Acme", "Globex"},
		}))
		assert.Contains(t, buf.String(), "Acme|Globex\n")
		assert.NotContains(t, buf.String(), "Data:")
	})

	t.Run("nil", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextWriter().Write(&buf, nil))
		assert.Empty(t, buf.String())
	})
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250мс", formatDuration(250))
	assert.Equal(t, "2.5с", formatDuration(2500))
	assert.Equal(t, "2м 5с", formatDuration(125_000))
}

func TestDryRunPlan_WriteText(t *testing.T) {
	plan := &DryRunPlan{
		Command:          "ensure-version",
		ValidationPassed: true,
		Summary:          "будет создана версия 1.2.0",
		Steps: []PlanStep{
			{Order: 1, Operation: "Поиск версии", Parameters: map[string]any{"version": "1.2.0", "application": "Server"}},
			{Order: 2, Operation: "Создание версии", ExpectedChanges: []string{"releaseType: Minor"}},
			{Order: 3, Operation: "Обновление версии", Skipped: true, SkipReason: "версия отсутствует"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, plan.WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "=== DRY RUN ===")
	assert.Contains(t, out, "Валидация: ✅ Пройдена")
	assert.Less(t, strings.Index(out, "application: Server"), strings.Index(out, "version: 1.2.0"))
	assert.Contains(t, out, "        - releaseType: Minor")
	assert.Contains(t, out, "3. [SKIP] Обновление версии: версия отсутствует")
	assert.Contains(t, out, "Итого: будет создана версия 1.2.0")
	assert.Contains(t, out, "=== END DRY RUN ===")
}

func TestWriteDryRunResult(t *testing.T) {
	plan := &DryRunPlan{Command: "ensure-version", ValidationPassed: true}

	var buf bytes.Buffer
	require.NoError(t, WriteDryRunResult(&buf, FormatJSON, "ensure-version", "", "v1", time.Now(), plan))
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, true, parsed["dry_run"])
	assert.NotNil(t, parsed["plan"])

	buf.Reset()
	require.NoError(t, WriteDryRunResult(&buf, FormatText, "ensure-version", "", "v1", time.Now(), plan))
	assert.Contains(t, buf.String(), "=== DRY RUN ===")
}

func TestSanitizeValue(t *testing.T) {
	assert.Equal(t, "red text", sanitizeValue("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "a b c", sanitizeValue("a\nb\tc"))
	assert.Equal(t, "ab", sanitizeValue("a\x00b"))
	assert.Equal(t, "42", sanitizeValue(42))
}
