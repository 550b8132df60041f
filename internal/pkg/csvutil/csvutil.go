// Package csvutil implements the tabular import/export formats used by the
// enrollment and reporting surfaces: course-list uploads and the enrollment,
// attendance and error-report downloads.
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMissingColumns is returned when an uploaded course list does not carry
// every required column. The whole batch is rejected in that case.
var ErrMissingColumns = errors.New("csv missing required columns")

// Required course-list columns, in no particular order.
var courseListColumns = []string{"matriculation_number", "name", "ca_mark"}

// CourseListRow is one parsed row of a course-list upload.
type CourseListRow struct {
	MatriculationNumber string
	Name                string
	// CAMark is nil when the uploaded value is empty or unparsable; bad
	// marks never abort the batch.
	CAMark *float64
}

// ReadCourseList parses a course-list CSV. The header must contain the
// matriculation_number, name and ca_mark columns; extra columns are ignored.
func ReadCourseList(r io.Reader) ([]CourseListRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingColumns
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.ToLower(col))] = i
	}
	for _, col := range courseListColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumns, col)
		}
	}

	var rows []CourseListRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		row := CourseListRow{
			MatriculationNumber: strings.TrimSpace(field(record, index["matriculation_number"])),
			Name:                strings.TrimSpace(field(record, index["name"])),
			CAMark:              ParseCAMark(field(record, index["ca_mark"])),
		}
		if row.MatriculationNumber == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ParseCAMark parses a raw CA-mark cell. Empty or unparsable values become
// nil rather than errors.
func ParseCAMark(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	mark, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &mark
}

// field returns record[i], tolerating short records.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// Write renders a header and rows as CSV into w.
func Write(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
