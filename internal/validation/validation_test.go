package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/pipeline"
)

func TestCheck_Messages(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		valid   bool
		message string
	}{
		{"valid iban", Request{Domain: "iban", Value: "DE89 3704 0044 0532 0130 00"}, true, "Valid IBAN"},
		{"invalid iban", Request{Domain: "iban", Value: "DE00370400440532013000"}, false, "Invalid IBAN checksum or format"},
		{"valid card", Request{Domain: "card", Value: "4111111111111111"}, true, "Valid Credit Card (Luhn check passed)"},
		{"invalid card", Request{Domain: "card", Value: "4111111111111112"}, false, "Invalid Credit Card (Luhn check failed)"},
		{"valid personal id", Request{Domain: "id", Country: "EE", Value: "37605030299"}, true, "Valid ID (male / 1976-05-03)"},
		{"invalid personal id", Request{Domain: "id", Country: "EE", Value: "37605030290"}, false, "Invalid ID for selected country"},
		{"unparsable personal id", Request{Domain: "id", Country: "EE", Value: "hello"}, false, "Could not parse ID"},
		{"unsupported personal id country", Request{Domain: "id", Country: "ZZ", Value: "123"}, false, "Personal ID validation not supported for this country"},
		{"unsupported bank country", Request{Domain: "bank", Country: "ZZ", Value: "123"}, false, "Bank Account validation not supported for this country"},
		{"valid lei", Request{Domain: "lei", Value: "506700GE1G29325QX363"}, true, "Valid LEI code"},
		{"unknown domain", Request{Domain: "ssn", Value: "x"}, false, `Unknown identifier type "ssn"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Check(tt.req)
			require.True(t, ok)
			require.Equal(t, tt.valid, v.Valid)
			require.Equal(t, tt.message, v.Message)
		})
	}
}

func TestCheck_BlankHasNoVerdict(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, ok := Check(Request{Domain: "iban", Value: in})
		require.False(t, ok)
	}
}

func TestCheck_TrimsInput(t *testing.T) {
	v, ok := Check(Request{Domain: "card", Value: "  4111111111111111\n"})
	require.True(t, ok)
	require.True(t, v.Valid)
}

func TestCheck_Suggestions(t *testing.T) {
	v, _ := Check(Request{Domain: "iban", Value: "DE00370400440532013000"})
	require.Equal(t, "DE89370400440532013000", v.Suggestion)

	v, _ = Check(Request{Domain: "card", Value: "4111111111111112"})
	require.Equal(t, "4111111111111111", v.Suggestion)

	v, _ = Check(Request{Domain: "iban", Value: "XX00"})
	require.Empty(t, v.Suggestion, "malformed input has nothing to repair")

	v, _ = Check(Request{Domain: "iban", Value: "DE89370400440532013000"})
	require.Empty(t, v.Suggestion)

	v, _ = Check(Request{Domain: "vat", Value: "DE000000000"})
	require.Empty(t, v.Suggestion, "vat has no repairer")
}

func TestCheck_GeneratedRowsValidate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		country := rapid.SampledFrom([]string{"EE", "FI", "PL", "SE", "NO", "BE"}).Draw(t, "country")
		snap := pipeline.Generate(catalog.PersonalID, pipeline.Request{Selector: country, Count: 3}, pipeline.NewRand(rapid.Uint64().Draw(t, "seed")))
		for _, row := range snap.Rows {
			v, ok := Check(Request{Domain: catalog.KeyPersonalID, Country: country, Value: row.Code})
			require.True(t, ok)
			require.True(t, v.Valid, v.Message)
			require.True(t, strings.HasPrefix(v.Message, "Valid ID ("))
		}
	})
}

func TestDispatcher_CachesVerdicts(t *testing.T) {
	ctx := context.Background()
	d := New()

	first, ok := d.Validate(ctx, Request{Domain: "lei", Value: "506700GE1G29325QX363"})
	require.True(t, ok)
	second, ok := d.Validate(ctx, Request{Domain: "lei", Value: " 506700GE1G29325QX363 "})
	require.True(t, ok)
	require.Equal(t, first, second)

	_, ok = d.Validate(ctx, Request{Domain: "lei", Value: " "})
	require.False(t, ok)
}

func TestDispatcher_RepairHintsFlag(t *testing.T) {
	ctx := context.Background()
	req := Request{Domain: "card", Value: "4111111111111112"}

	v, _ := New().Validate(ctx, req)
	require.NotEmpty(t, v.Suggestion)

	v, _ = New(WithRepairHints(false)).Validate(ctx, req)
	require.Empty(t, v.Suggestion)
	require.False(t, v.Valid)

	v, _ = New(WithoutCache()).Validate(ctx, req)
	require.NotEmpty(t, v.Suggestion)
}

func TestDiff(t *testing.T) {
	segs := Diff("DE00370400440532013000", "DE89370400440532013000")

	var from, to strings.Builder
	changed := false
	for _, s := range segs {
		switch s.Op {
		case OpEqual:
			from.WriteString(s.Text)
			to.WriteString(s.Text)
		case OpDelete:
			from.WriteString(s.Text)
			changed = true
		case OpInsert:
			to.WriteString(s.Text)
			changed = true
		}
	}
	require.True(t, changed)
	require.Equal(t, "DE00370400440532013000", from.String())
	require.Equal(t, "DE89370400440532013000", to.String())

	require.Equal(t, []Segment{{Op: OpEqual, Text: "same"}}, Diff("same", "same"))
}
