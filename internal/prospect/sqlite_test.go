package prospect

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/qualify"
	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testProspect(name string) *Prospect {
	rev := 20000.0
	years := 3.0
	emp := 12
	return &Prospect{
		Record: model.BusinessRecord{
			Name:            name,
			Address:         "77 Pine St, Boise, ID 83702",
			BusinessType:    taxonomy.TypeHVAC,
			Category:        taxonomy.CategoryHomeServices,
			MonthlyRevenue:  &rev,
			YearsInBusiness: &years,
			EmployeeCount:   &emp,
		},
	}
}

func TestSQLite_SaveAndGetProspect(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	p := testProspect("Summit HVAC")
	require.NoError(t, st.SaveProspect(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, StatusNew, p.Status)

	got, err := st.GetProspect(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summit HVAC", got.Record.Name)
	assert.Equal(t, taxonomy.TypeHVAC, got.Record.BusinessType)
	require.NotNil(t, got.Record.MonthlyRevenue)
	assert.Equal(t, 20000.0, *got.Record.MonthlyRevenue)
	assert.Nil(t, got.CreditScore)
}

func TestSQLite_GetProspect_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetProspect(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_ListProspects_StatusFilter(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := testProspect("A")
	require.NoError(t, st.SaveProspect(ctx, a))

	b := testProspect("B")
	b.Status = StatusContacted
	require.NoError(t, st.SaveProspect(ctx, b))

	all, err := st.ListProspects(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	contacted, err := st.ListProspects(ctx, ListFilter{Status: StatusContacted})
	require.NoError(t, err)
	require.Len(t, contacted, 1)
	assert.Equal(t, "B", contacted[0].Record.Name)
}

func TestSQLite_ListProspects_Limit(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.SaveProspect(ctx, testProspect("P")))
	}

	got, err := st.ListProspects(ctx, ListFilter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSQLite_UpdateProspect(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	p := testProspect("Updatable")
	require.NoError(t, st.SaveProspect(ctx, p))

	score := 680
	p.Status = StatusDocsRequested
	p.CreditScore = &score
	p.Notes = "docs requested 8/28"
	require.NoError(t, st.UpdateProspect(ctx, p))

	got, err := st.GetProspect(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDocsRequested, got.Status)
	require.NotNil(t, got.CreditScore)
	assert.Equal(t, 680, *got.CreditScore)
	assert.Equal(t, "docs requested 8/28", got.Notes)
}

func TestSQLite_UpdateProspect_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	p := testProspect("Ghost")
	p.ID = "missing"
	err := st.UpdateProspect(context.Background(), p)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_DeleteProspect(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	p := testProspect("Doomed")
	require.NoError(t, st.SaveProspect(ctx, p))
	require.NoError(t, st.DeleteProspect(ctx, p.ID))

	_, err := st.GetProspect(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.DeleteProspect(ctx, p.ID), ErrNotFound)
}

func TestSQLite_Criteria_DefaultsWhenUnset(t *testing.T) {
	st := newTestSQLiteStore(t)

	c, err := st.Criteria(context.Background())
	require.NoError(t, err)
	assert.Equal(t, qualify.DefaultCriteria(), c)
}

func TestSQLite_Criteria_SetAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	want := qualify.Criteria{
		MinMonthlyRevenue:    25000,
		MinBusinessAgeMonths: 24,
		MinCreditScore:       600,
		AllowedTypes:         []taxonomy.BusinessType{taxonomy.TypeHVAC},
		USOnly:               true,
	}
	require.NoError(t, st.SetCriteria(ctx, want))

	got, err := st.Criteria(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLite_Criteria_LastWriteWins(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	first := qualify.DefaultCriteria()
	first.MinCreditScore = 500
	require.NoError(t, st.SetCriteria(ctx, first))

	second := qualify.DefaultCriteria()
	second.MinCreditScore = 640
	require.NoError(t, st.SetCriteria(ctx, second))

	got, err := st.Criteria(ctx)
	require.NoError(t, err)
	assert.Equal(t, 640, got.MinCreditScore)
}

func TestSQLite_SetCriteria_RejectsInvalid(t *testing.T) {
	st := newTestSQLiteStore(t)

	bad := qualify.DefaultCriteria()
	bad.MinMonthlyRevenue = -1
	assert.Error(t, st.SetCriteria(context.Background(), bad))
}
