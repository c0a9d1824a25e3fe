// Package output форматирует результаты команд в JSON и текст.
//
// Формат выбирается переменной LOUPE_OUTPUT_FORMAT ("json" или "text").
// Результат всегда пишется в stdout, журнал идёт в stderr.
package output

import (
	"io"
	"strings"
)

// Значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Поддерживаемые форматы вывода.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Result — структурированный результат выполнения команды.
type Result struct {
	Status   string      `json:"status"`
	Command  string      `json:"command"`
	Data     any         `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Metadata *Metadata   `json:"metadata,omitempty"`
	DryRun   bool        `json:"dry_run,omitempty"`
	Plan     *DryRunPlan `json:"plan,omitempty"`

	// Summary выводится блоком в тексте и попадает в metadata.summary в JSON.
	Summary *SummaryInfo `json:"-"`
}

// ErrorInfo — код и сообщение ошибки. Message не должен содержать секреты.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata — метаданные выполнения команды.
type Metadata struct {
	DurationMs int64        `json:"duration_ms"`
	TraceID    string       `json:"trace_id,omitempty"`
	APIVersion string       `json:"api_version"`
	Summary    *SummaryInfo `json:"summary,omitempty"`
}

// SummaryInfo — ключевые показатели и предупреждения команды.
type SummaryInfo struct {
	KeyMetrics    []KeyMetric `json:"key_metrics,omitempty"`
	WarningsCount int         `json:"warnings_count"`
	Warnings      []string    `json:"warnings,omitempty"`
}

// KeyMetric — одна ключевая метрика, например "Закрытых проблем: 3".
type KeyMetric struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// NewSummaryInfo создаёт пустой SummaryInfo.
func NewSummaryInfo() *SummaryInfo {
	return &SummaryInfo{
		KeyMetrics: make([]KeyMetric, 0),
		Warnings:   make([]string, 0),
	}
}

// AddMetric добавляет метрику.
func (s *SummaryInfo) AddMetric(name, value, unit string) {
	s.KeyMetrics = append(s.KeyMetrics, KeyMetric{Name: name, Value: value, Unit: unit})
}

// AddWarning добавляет предупреждение.
func (s *SummaryInfo) AddWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
	s.WarningsCount++
}

// Writer форматирует Result и пишет его в w.
type Writer interface {
	Write(w io.Writer, result *Result) error
}

// TextRenderer реализуют данные команд, у которых есть собственный
// текстовый вид (таблица проблем, список подсказок). Для остальных
// данных TextWriter выводит JSON.
type TextRenderer interface {
	WriteText(w io.Writer) error
}

// NewWriter возвращает Writer для формата (без учёта регистра).
// Неизвестный формат даёт TextWriter.
func NewWriter(format string) Writer {
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		return NewJSONWriter()
	}
	return NewTextWriter()
}
