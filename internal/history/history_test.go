package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEntries() []Entry {
	now := time.Now()
	return []Entry{
		{Kind: KindCriteria, Collection: "Physics", Year: "2020", Results: 12, At: now.Add(-1 * time.Hour)},
		{Kind: KindSimilarity, Collection: "Physics", Query: "dark matter", Results: 5, At: now.Add(-2 * time.Hour)},
		{Kind: KindCriteria, Collection: "Mathematics", StartYear: "1990", EndYear: "1995", Outcome: "Aucun article trouvé pour ces critères.", At: now.Add(-72 * time.Hour)},
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)
	for _, e := range sampleEntries() {
		require.NoError(t, s.Record(e))
	}

	got, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, KindCriteria, got[0].Kind)
	assert.Equal(t, "2020", got[0].Year)
	assert.Equal(t, 12, got[0].Results)
	assert.NotEmpty(t, got[0].ID)

	assert.Equal(t, KindSimilarity, got[1].Kind)
	assert.Equal(t, "dark matter", got[1].Query)

	assert.Equal(t, "1990", got[2].StartYear)
	assert.Equal(t, "1995", got[2].EndYear)
	assert.NotEmpty(t, got[2].Outcome)
}

func TestRecentLimit(t *testing.T) {
	s := testStore(t)
	for _, e := range sampleEntries() {
		require.NoError(t, s.Record(e))
	}

	got, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRecordAssignsTimestamp(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Record(Entry{Kind: KindSimilarity, Collection: "Physics", Query: "q"}))

	got, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.WithinDuration(t, time.Now(), got[0].At, time.Minute)
}

func TestRecordDuplicateID(t *testing.T) {
	s := testStore(t)
	e := Entry{ID: "fixed", Kind: KindCriteria, Collection: "Physics"}
	require.NoError(t, s.Record(e))
	assert.Error(t, s.Record(e))
}

func TestPrune(t *testing.T) {
	s := testStore(t)
	for _, e := range sampleEntries() {
		require.NoError(t, s.Record(e))
	}

	deleted, err := s.Prune(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	got, err := s.Recent(10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	deleted, err = s.Prune(365 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestStats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	for _, e := range sampleEntries() {
		require.NoError(t, s.Record(e))
	}

	count, size, err := s.Stats(dbPath)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NotZero(t, size)
}

func TestEmptyStore(t *testing.T) {
	s := testStore(t)
	got, err := s.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenCreatesDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sub", "deep", "history.db")

	s, err := Open(dbPath)
	require.NoError(t, err)
	s.Close()

	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}
