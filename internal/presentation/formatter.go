package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// JSON writes v as indented JSON
func (f *Formatter) JSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatVerdict writes "✓ message" or "✗ message", plus the suggestion.
func (f *Formatter) FormatVerdict(v VerdictDTO) error {
	icon := "✗"
	if v.Valid {
		icon = "✓"
	}
	if _, err := fmt.Fprintf(f.writer, "%s %s\n", icon, v.Message); err != nil {
		return err
	}
	if v.Suggestion != "" {
		_, err := fmt.Fprintf(f.writer, "  did you mean: %s\n", v.Suggestion)
		return err
	}
	return nil
}

// FormatHistory writes one header line per entry with its results indented
// beneath it.
func (f *Formatter) FormatHistory(entries []HistoryEntryDTO) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(f.writer, "No history yet.")
		return err
	}
	var b strings.Builder
	for _, e := range entries {
		noun := "results"
		if e.Count == 1 {
			noun = "result"
		}
		fmt.Fprintf(&b, "%s  %s · %s · %d %s\n", e.Time, e.Category, e.Country, e.Count, noun)
		for _, r := range e.Results {
			fmt.Fprintf(&b, "    %s\n", r)
		}
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatDomain writes the options of a domain as an aligned list.
func (f *Formatter) FormatDomain(d DomainDTO) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", d.Name, d.Key)
	fmt.Fprintf(&b, "%s, default %s", d.SelectorLabel, orRandom(d.Default))
	if d.AllowRandom {
		b.WriteString(", may be left empty for random")
	}
	b.WriteString("\n\n")

	width := 0
	for _, o := range d.Options {
		width = max(width, len(o.Code))
	}
	for _, o := range d.Options {
		fmt.Fprintf(&b, "  %-*s  %s", width, o.Code, o.Label)
		if o.Description != "" {
			fmt.Fprintf(&b, " - %s", o.Description)
		}
		if len(o.Fields) > 0 {
			keys := make([]string, len(o.Fields))
			for i, fd := range o.Fields {
				keys[i] = fd.Key
			}
			fmt.Fprintf(&b, " [%s]", strings.Join(keys, ", "))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func orRandom(s string) string {
	if s == "" {
		return "random"
	}
	return s
}
