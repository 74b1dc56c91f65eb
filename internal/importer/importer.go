// Package importer loads the tool table from CSV exports.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/repository"
)

// Header columns every tool CSV must carry.
const (
	ColumnName             = "MFGToolName"
	ColumnCurrentStatus    = "CurrentStatus"
	ColumnNextAction       = "NextAction"
	ColumnResponsibleParty = "ResponsibleParty"
	ColumnETA              = "ETA"
)

var requiredColumns = []string{
	ColumnName,
	ColumnCurrentStatus,
	ColumnNextAction,
	ColumnResponsibleParty,
	ColumnETA,
}

var (
	// ErrInvalidHeader is returned when the header row lacks required columns.
	ErrInvalidHeader = errors.New("invalid CSV header")
	// ErrSourceNotFound is returned when the CSV path does not exist.
	ErrSourceNotFound = errors.New("CSV file not found")
	// ErrUnreadable is returned when the CSV source cannot be read or parsed.
	ErrUnreadable = errors.New("CSV source unreadable")
)

// HeaderError lists the required columns missing from a CSV header.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("missing required CSV columns: %s", strings.Join(e.Missing, ", "))
}

func (e *HeaderError) Unwrap() error {
	return ErrInvalidHeader
}

// Importer replaces the tool table with the contents of a CSV source.
type Importer struct {
	tools                    repository.ToolRepository
	clearOrphanedAssignments bool
}

// New creates an Importer. When clearOrphanedAssignments is false, user
// assignments pointing at ids that disappear in a reload are left as they are.
func New(tools repository.ToolRepository, clearOrphanedAssignments bool) *Importer {
	return &Importer{
		tools:                    tools,
		clearOrphanedAssignments: clearOrphanedAssignments,
	}
}

// ImportFile reloads the tool table from a CSV file on disk.
func (i *Importer) ImportFile(path string) ([]models.Tool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	return i.ImportReader(f)
}

// ImportReader reloads the tool table from r. Nothing is written unless the
// whole source parses.
func (i *Importer) ImportReader(r io.Reader) ([]models.Tool, error) {
	rows, err := Parse(r)
	if err != nil {
		return nil, err
	}

	tools, err := i.tools.ReplaceAll(rows, repository.ReplaceOptions{
		ClearOrphanedAssignments: i.clearOrphanedAssignments,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace tools: %w", err)
	}

	return tools, nil
}

// Parse reads tool rows from CSV. Column order is free and extra columns are
// ignored; values are kept verbatim, including stray quotes in unquoted fields.
func Parse(r io.Reader) ([]models.Tool, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &HeaderError{Missing: requiredColumns}
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	index := make(map[string]int, len(header))
	for pos, name := range header {
		if pos == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = pos
		}
	}

	var missing []string
	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}

	field := func(record []string, column string) string {
		pos := index[column]
		if pos >= len(record) {
			return ""
		}
		return record[pos]
	}

	tools := []models.Tool{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}

		tools = append(tools, models.Tool{
			Name:             field(record, ColumnName),
			CurrentStatus:    field(record, ColumnCurrentStatus),
			NextAction:       field(record, ColumnNextAction),
			ResponsibleParty: field(record, ColumnResponsibleParty),
			ETA:              field(record, ColumnETA),
		})
	}

	return tools, nil
}
