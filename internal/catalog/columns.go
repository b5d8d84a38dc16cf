package catalog

// Kind is the storage type of a column.
type Kind int

const (
	KindText Kind = iota
	KindBool
)

// Value is a single cell.
type Value struct {
	Text string
	Bool bool
	Null bool
}

// Text wraps a string cell.
func Text(s string) Value { return Value{Text: s} }

// Bool wraps a boolean cell.
func Bool(b bool) Value { return Value{Bool: b} }

// NullableText wraps an optional string cell.
func NullableText(s *string) Value {
	if s == nil {
		return Value{Null: true}
	}
	return Value{Text: *s}
}

// Column describes one field of a row schema. Name matches the row's JSON
// key and is used as the SQL column name; Header is the CSV heading.
type Column[R any] struct {
	Name   string
	Header string
	Kind   Kind
	Value  func(R) Value
}

func textColumn[R any](name, header string, f func(R) string) Column[R] {
	return Column[R]{Name: name, Header: header, Kind: KindText, Value: func(r R) Value { return Text(f(r)) }}
}

func nullableColumn[R any](name, header string, f func(R) *string) Column[R] {
	return Column[R]{Name: name, Header: header, Kind: KindText, Value: func(r R) Value { return NullableText(f(r)) }}
}

func validColumn[R Row]() Column[R] {
	return Column[R]{Name: "valid", Header: "Valid", Kind: KindBool, Value: func(r R) Value { return Bool(r.IsValid()) }}
}
