// Package report dumps the persisted task list in human readable form.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/model"
)

// Separator follows every task block in the text report
const Separator = "-------------------------"

// Format selects the report encoding
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormat matches a report format name case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatJSON, FormatPDF:
		return f, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format: %s", s)
	}
}

// Source provides the stored task list
type Source interface {
	Load() ([]*model.Task, error)
}

// Exporter writes reports for the tasks in a Source
type Exporter struct {
	src     Source
	console io.Writer
}

// NewExporter creates an exporter that mirrors text output to console
func NewExporter(src Source, console io.Writer) *Exporter {
	if console == nil {
		console = io.Discard
	}
	return &Exporter{src: src, console: console}
}

// Export loads the stored list and writes it to dest. Unlike the
// interactive loader, any load failure is returned to the caller.
func (e *Exporter) Export(dest string, format Format) error {
	tasks, err := e.src.Load()
	if err != nil {
		return err
	}

	data, err := Render(tasks, format)
	if err != nil {
		return err
	}

	if format == FormatText {
		if _, err := e.console.Write(data); err != nil {
			return fmt.Errorf("failed to write console output: %w", err)
		}
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", dest, err)
	}

	logging.Debugf("report: wrote %d tasks to %s (%s)", len(tasks), dest, format)
	fmt.Fprintf(e.console, "Task details saved to %s\n", dest)
	return nil
}

// Render encodes tasks in the given format
func Render(tasks []*model.Task, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return renderText(tasks), nil
	case FormatCSV:
		return renderCSV(tasks)
	case FormatJSON:
		return renderJSON(tasks)
	case FormatPDF:
		return renderPDF(tasks)
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}

func renderText(tasks []*model.Task) []byte {
	var b bytes.Buffer
	for _, t := range tasks {
		b.WriteString(t.Render())
		b.WriteString("\n")
		b.WriteString(Separator)
		b.WriteString("\n")
	}
	return b.Bytes()
}

func renderCSV(tasks []*model.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "name", "deadline", "complete"})
	for _, t := range tasks {
		_ = w.Write([]string{
			strconv.Itoa(t.ID()),
			t.Name(),
			model.FormatDeadline(t.Deadline()),
			strconv.FormatBool(t.Complete()),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type jsonTask struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Deadline string `json:"deadline"`
	Complete bool   `json:"complete"`
}

func renderJSON(tasks []*model.Task) ([]byte, error) {
	out := make([]jsonTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, jsonTask{
			ID:       t.ID(),
			Name:     t.Name(),
			Deadline: model.FormatDeadline(t.Deadline()),
			Complete: t.Complete(),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func renderPDF(tasks []*model.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		pdf.MultiCell(0, 6, tr(t.Render()), "0", "L", false)
		pdf.MultiCell(0, 6, Separator, "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
