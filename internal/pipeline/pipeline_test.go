package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mockbanker/mockbanker/internal/catalog"
)

type mockRecorder struct{ mock.Mock }

func (m *mockRecorder) Record(ctx context.Context, category, label string, count int, results []string) error {
	args := m.Called(ctx, category, label, count, results)
	return args.Error(0)
}

func TestClampCount(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, 1}, {0, 1}, {1, 1}, {5, 5}, {100, 100}, {101, 100}, {1 << 20, 100},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ClampCount(tt.in), "ClampCount(%d)", tt.in)
	}
}

func TestGenerate_BatchSizeAndValidity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 100).Draw(t, "n")
		sel := rapid.SampledFrom([]string{"DE", "GB", "FR", "NL"}).Draw(t, "country")
		seed := rapid.Uint64().Draw(t, "seed")

		snap := Generate(catalog.IBAN, Request{Selector: sel, Count: n}, NewRand(seed))
		require.Len(t, snap.Rows, n)
		require.Equal(t, n, snap.Requested)
		for _, row := range snap.Rows {
			require.True(t, row.Valid)
			require.Equal(t, sel, row.Raw[:2])
		}
	})
}

func TestGenerate_UnsupportedSelectorYieldsEmpty(t *testing.T) {
	snap := Generate(catalog.IBAN, Request{Selector: "ZZ", Count: 10}, NewRand(1))
	require.Empty(t, snap.Rows)
	require.Equal(t, 10, snap.Requested)
	require.Empty(t, snap.PrimaryValues())
}

func TestGenerate_Deterministic(t *testing.T) {
	req := Request{Selector: "visa", Count: 20}
	a := Generate(catalog.CreditCard, req, NewRand(42))
	b := Generate(catalog.CreditCard, req, NewRand(42))
	require.Equal(t, a.PrimaryValues(), b.PrimaryValues())
}

func TestSnapshot_Label(t *testing.T) {
	require.Equal(t, "Random", Snapshot[catalog.LEIRow]{}.Label())
	require.Equal(t, "DE", Snapshot[catalog.LEIRow]{Selector: "DE"}.Label())
}

func TestRun_RecordsOneEntry(t *testing.T) {
	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, "IBAN", "DE", 3, mock.MatchedBy(func(v []string) bool {
		return len(v) == 3
	})).Return(nil).Once()

	rn := NewRunner(rec, nil, true)
	snap := Run(context.Background(), rn, catalog.IBAN, Request{Selector: "DE", Count: 3}, NewRand(7))

	require.Len(t, snap.Rows, 3)
	rec.AssertExpectations(t)
}

func TestRun_RecordsEmptyBatchWithRequestedCount(t *testing.T) {
	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, "Personal ID", "EE", 4, []string{}).Return(nil).Once()

	rn := NewRunner(rec, nil, true)
	opts := catalog.GenOptions{Year: 1500}
	snap := Run(context.Background(), rn, catalog.PersonalID, Request{Selector: "EE", Count: 4, Options: opts}, NewRand(7))

	require.Empty(t, snap.Rows)
	rec.AssertExpectations(t)
}

func TestRun_RandomLabel(t *testing.T) {
	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, "LEI", "Random", 2, mock.Anything).Return(nil).Once()

	Run(context.Background(), NewRunner(rec, nil, true), catalog.LEI, Request{Count: 2}, NewRand(3))
	rec.AssertExpectations(t)
}

func TestRun_RecorderErrorIsSwallowed(t *testing.T) {
	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("quota exceeded"))

	snap := Run(context.Background(), NewRunner(rec, nil, true), catalog.VAT, Request{Selector: "DE", Count: 2}, NewRand(3))
	require.Len(t, snap.Rows, 2)
}

func TestRun_HistoryDisabled(t *testing.T) {
	rec := &mockRecorder{}
	rn := NewRunner(rec, nil, false)
	Run(context.Background(), rn, catalog.SWIFT, Request{Selector: "DE", Count: 2}, NewRand(3))
	rec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	rec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	Run(context.Background(), rn.WithHistory(true), catalog.SWIFT, Request{Selector: "DE", Count: 2}, NewRand(3))
	rec.AssertExpectations(t)

	require.NotPanics(t, func() {
		Run(context.Background(), NewRunner(nil, nil, true), catalog.SWIFT, Request{Selector: "DE", Count: 1}, NewRand(3))
	})
}
