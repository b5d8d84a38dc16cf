// Package export serialises a batch of rows as CSV, JSON or SQL text.
//
// The output is meant for throwaway fixtures: CSV fields and SQL literals
// are interpolated as-is with no quoting or escaping.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mockbanker/mockbanker/internal/catalog"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatSQL  Format = "sql"
)

// Formats lists the file formats in menu order.
var Formats = []Format{FormatCSV, FormatJSON, FormatSQL}

// ParseFormat accepts csv, json or sql in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCSV, FormatJSON, FormatSQL:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json or sql)", s)
}

// MIMEType of the artifact.
func (f Format) MIMEType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain"
	}
}

// Artifact is a rendered export ready to be saved.
type Artifact struct {
	Filename string
	MIMEType string
	Content  string
}

// Render encodes rows in format f. The filename is the domain's file stem
// with the format as extension.
func Render[R catalog.Row](info catalog.Info, cols []catalog.Column[R], rows []R, f Format) (Artifact, error) {
	var (
		body string
		err  error
	)
	switch f {
	case FormatCSV:
		body = CSV(cols, rows)
	case FormatJSON:
		body, err = JSON(rows)
	case FormatSQL:
		body = SQL(info.FileStem, cols, rows)
	default:
		return Artifact{}, fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("render %s: %w", f, err)
	}
	return Artifact{
		Filename: info.FileStem + "." + string(f),
		MIMEType: f.MIMEType(),
		Content:  body,
	}, nil
}

// CSV writes a header line of column headers and one line per row.
// Booleans are Yes/No and null cells are empty.
func CSV[R any](cols []catalog.Column[R], rows []R) string {
	var b strings.Builder
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	b.WriteString(strings.Join(headers, ","))
	b.WriteByte('\n')

	cells := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			cells[i] = csvCell(c.Kind, c.Value(row))
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func csvCell(k catalog.Kind, v catalog.Value) string {
	switch {
	case v.Null:
		return ""
	case k == catalog.KindBool && v.Bool:
		return "Yes"
	case k == catalog.KindBool:
		return "No"
	}
	return v.Text
}

// JSON is a two-space indented array. An empty batch is "[]".
func JSON[R any](rows []R) (string, error) {
	if len(rows) == 0 {
		return "[]", nil
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SQL emits a CREATE TABLE IF NOT EXISTS for table followed by one INSERT
// per row. Null text is written as ''.
func SQL[R any](table string, cols []catalog.Column[R], rows []R) string {
	names := make([]string, len(cols))
	decls := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		decls[i] = c.Name + " " + sqlType(c.Kind)
	}
	columnList := strings.Join(names, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (%s);\n", table, strings.Join(decls, ", "))

	vals := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			vals[i] = sqlLiteral(c.Kind, c.Value(row))
		}
		fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s);\n", table, columnList, strings.Join(vals, ", "))
	}
	return b.String()
}

func sqlType(k catalog.Kind) string {
	if k == catalog.KindBool {
		return "BOOLEAN"
	}
	return "TEXT"
}

func sqlLiteral(k catalog.Kind, v catalog.Value) string {
	if k == catalog.KindBool {
		if v.Bool {
			return "true"
		}
		return "false"
	}
	if v.Null {
		return "''"
	}
	return "'" + v.Text + "'"
}

// Text joins one value per line for "copy all". With spaced set, rows that
// have a display form (IBANs) use it.
func Text[R catalog.Row](rows []R, spaced bool) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = catalog.Display(r, spaced)
	}
	return strings.Join(lines, "\n")
}
