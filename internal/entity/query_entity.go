package entity

import (
	"fmt"
	"strings"
	"time"
)

type QueryState string

const (
	QueryStateIdle       QueryState = "IDLE"
	QueryStateSubmitting QueryState = "SUBMITTING"
	QueryStateAnswered   QueryState = "ANSWERED"
	QueryStateFailed     QueryState = "FAILED"
)

type ExportKind string

const (
	ExportCSV ExportKind = "csv"
	ExportPDF ExportKind = "pdf"
)

func ParseExportKind(raw string) (ExportKind, error) {
	switch ExportKind(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportCSV:
		return ExportCSV, nil
	case ExportPDF:
		return ExportPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q", raw)
}

func (k ExportKind) Extension() string {
	return string(k)
}

type ExportCapabilities struct {
	CSV               bool
	PDF               bool
	HasTabularContent bool
}

func (c ExportCapabilities) Allows(kind ExportKind) bool {
	switch kind {
	case ExportCSV:
		return c.CSV
	case ExportPDF:
		return c.PDF
	}
	return false
}

// QueryContext is the question/selection/agent-type triple an answer was
// produced from. Exports replay it verbatim.
type QueryContext struct {
	Question    string
	DocumentIds []string
	AgentType   AgentType
}

type QueryResult struct {
	Answer       string
	Capabilities ExportCapabilities
	Context      QueryContext
	AnsweredAt   time.Time
}

type ExportFile struct {
	Kind     ExportKind
	Filename string
	Path     string
	Size     int
}

// ExportFilename builds report_<agentType>_<timestamp>.<ext>.
func ExportFilename(agentType AgentType, kind ExportKind, at time.Time) string {
	return fmt.Sprintf("report_%s_%s.%s", agentType.String(), at.Format("20060102_150405"), kind.Extension())
}
