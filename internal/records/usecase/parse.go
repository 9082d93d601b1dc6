package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

//nolint:gochecknoglobals // fixed schema
var requiredColumns = []string{"id", "name", "email"}

// ParseError reports input that is not a valid dataset. Failures to read
// the underlying source are returned as they are, never as ParseError.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("record on line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseCSV reads a header row followed by data rows and binds them to
// records by column name. It is all-or-nothing: the first bad row fails the
// whole parse. Input with no rows at all yields an empty dataset.
func ParseCSV(r io.Reader) ([]entity.Record, error) {
	rows, lines, err := readRows(r)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []entity.Record{}, nil
	}

	rows[0] = normalizeHeader(rows[0])
	if err := checkHeader(rows[0]); err != nil {
		return nil, &ParseError{Line: lines[0], Err: err}
	}

	var records []entity.Record
	if err := gocsv.UnmarshalCSV(&rowsReader{rows: rows}, &records); err != nil {
		return nil, &ParseError{Err: err}
	}

	for i := range records {
		if err := checkRecord(&records[i]); err != nil {
			return nil, &ParseError{Line: lines[i+1], Err: err}
		}
	}

	if records == nil {
		records = []entity.Record{}
	}

	return records, nil
}

// readRows drains r with encoding/csv. The header fixes the field count, so
// a short or long data row surfaces as a *csv.ParseError naming its line.
// Values are kept byte for byte but must be valid UTF-8.
func readRows(r io.Reader) ([][]string, []int, error) {
	reader := csv.NewReader(r)

	var rows [][]string
	var lines []int

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, lines, nil
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, nil, &ParseError{Err: err}
			}
			return nil, nil, err
		}

		line, _ := reader.FieldPos(0)
		for i, field := range row {
			if !utf8.ValidString(field) {
				fieldLine, _ := reader.FieldPos(i)
				return nil, nil, &ParseError{Line: fieldLine, Err: errors.New("invalid UTF-8")}
			}
		}

		rows = append(rows, row)
		lines = append(lines, line)
	}
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		out[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return out
}

func checkHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return fmt.Errorf("duplicate column %q in header", name)
		}
		seen[name] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("header is missing column(s) %s", strings.Join(missing, ", "))
	}

	return nil
}

// checkRecord only rejects missing values; surrounding spaces are data.
func checkRecord(rec *entity.Record) error {
	switch {
	case rec.ID == "":
		return errors.New(`field "id" is empty`)
	case rec.Name == "":
		return errors.New(`field "name" is empty`)
	case rec.Email == "":
		return errors.New(`field "email" is empty`)
	}

	return nil
}

// rowsReader replays rows that were already read and validated, so gocsv
// binds exactly what readRows saw.
type rowsReader struct {
	rows [][]string
	next int
}

func (r *rowsReader) Read() ([]string, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.next]
	r.next++
	return row, nil
}

func (r *rowsReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.next:]
	r.next = len(r.rows)
	return rest, nil
}
