package listing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"weddingrsvp/internal/domain"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{"Nome", "Telefone", "Presença", "Mensagem", "Data", "Evento"}

const (
	placeholder    = "-"
	exportDateForm = "02/01/2006"
)

// ExportOptions controls how exported values are rendered.
type ExportOptions struct {
	// Location is the time zone creation dates are shown in. Nil means UTC.
	Location *time.Location
}

// WriteCSV writes items as CSV, one row per response, in the given order.
func WriteCSV(w io.Writer, items []*domain.EnrichedResponse, opts ExportOptions) error {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, it := range items {
		message := strings.TrimSpace(it.Message)
		if message == "" {
			message = placeholder
		}
		row := []string{
			it.FullName,
			it.Phone,
			domain.AttendanceLabel(it.Attendance),
			message,
			it.CreatedAt.In(loc).Format(exportDateForm),
			it.Event.Title(placeholder),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", it.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename returns the attachment name for an export taken at now.
func ExportFilename(now time.Time) string {
	return "confirmacoes-" + now.Format("2006-01-02") + ".csv"
}
