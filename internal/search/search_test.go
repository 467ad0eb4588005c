package search

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/saraHmercha/topsearch/internal/api"
	"github.com/saraHmercha/topsearch/internal/history"
	"github.com/saraHmercha/topsearch/internal/i18n"
)

type fakeSearcher struct {
	articles []api.Article
	err      error

	calls      int
	collection string
	criteria   api.Criteria
	query      string
}

func (f *fakeSearcher) ListArticles(_ context.Context, collection string, c api.Criteria) ([]api.Article, error) {
	f.calls++
	f.collection = collection
	f.criteria = c
	return f.articles, f.err
}

func (f *fakeSearcher) SimilarArticles(_ context.Context, collection, query string) ([]api.Article, error) {
	f.calls++
	f.collection = collection
	f.query = query
	return f.articles, f.err
}

type fakeRecorder struct {
	entries []history.Entry
	err     error
}

func (r *fakeRecorder) Record(e history.Entry) error {
	r.entries = append(r.entries, e)
	return r.err
}

var msgs = i18n.English

func twoArticles() []api.Article {
	return []api.Article{{ID: "1", Title: "One"}, {ID: "2", Title: "Two"}}
}

func TestCheckCriteria(t *testing.T) {
	svc := NewService(&fakeSearcher{}, msgs, nil, nil)
	assert.Equal(t, msgs.SelectCollection, svc.CheckCriteria(""))
	assert.Equal(t, msgs.SelectCollection, svc.CheckCriteria("  "))
	assert.Empty(t, svc.CheckCriteria("Physics"))
}

func TestCheckSimilarity(t *testing.T) {
	svc := NewService(&fakeSearcher{}, msgs, nil, nil)
	assert.Equal(t, msgs.SelectCollection, svc.CheckSimilarity("", "graphs"))
	assert.Equal(t, msgs.SelectCollection, svc.CheckSimilarity("", ""))
	assert.Equal(t, msgs.EnterSearchTerm, svc.CheckSimilarity("Physics", " "))
	assert.Empty(t, svc.CheckSimilarity("Physics", "graphs"))
}

func TestLocalValidationSkipsNetwork(t *testing.T) {
	fake := &fakeSearcher{articles: twoArticles()}
	rec := &fakeRecorder{}
	svc := NewService(fake, msgs, nil, rec)

	out := svc.ByCriteria(context.Background(), "", api.Criteria{Year: "2020"})
	assert.Equal(t, msgs.SelectCollection, out.Message)
	assert.ErrorIs(t, out.Err, ErrNoCollection)
	assert.Empty(t, out.Articles)

	out = svc.BySimilarity(context.Background(), "Physics", "")
	assert.Equal(t, msgs.EnterSearchTerm, out.Message)
	assert.ErrorIs(t, out.Err, ErrEmptyQuery)

	assert.Zero(t, fake.calls)
	assert.Empty(t, rec.entries)
}

func TestByCriteriaFound(t *testing.T) {
	fake := &fakeSearcher{articles: twoArticles()}
	rec := &fakeRecorder{}
	svc := NewService(fake, msgs, nil, rec)

	criteria := api.Criteria{StartYear: "2018", EndYear: "2020"}
	out := svc.ByCriteria(context.Background(), "Physics", criteria)

	assert.True(t, out.Found())
	assert.Empty(t, out.Message)
	assert.Len(t, out.Articles, 2)
	assert.Equal(t, "Physics", fake.collection)
	assert.Equal(t, criteria, fake.criteria)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, history.KindCriteria, rec.entries[0].Kind)
	assert.Equal(t, "2018", rec.entries[0].StartYear)
	assert.Equal(t, 2, rec.entries[0].Results)
}

func TestBySimilarityFound(t *testing.T) {
	fake := &fakeSearcher{articles: twoArticles()}
	rec := &fakeRecorder{}
	svc := NewService(fake, msgs, nil, rec)

	out := svc.BySimilarity(context.Background(), "Physics", "neutrinos")

	assert.True(t, out.Found())
	assert.Equal(t, history.KindSimilarity, out.Kind)
	assert.Equal(t, "neutrinos", fake.query)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, "neutrinos", rec.entries[0].Query)
}

func TestOutcomeMessages(t *testing.T) {
	tests := []struct {
		name           string
		articles       []api.Article
		err            error
		wantCriteria   string
		wantSimilarity string
	}{
		{"empty result", nil, nil, msgs.CriteriaNotFound, msgs.SimilarityNotFound},
		{"404", nil, &api.StatusError{Code: http.StatusNotFound}, msgs.CriteriaNotFound, msgs.SimilarityNotFound},
		{"400", nil, &api.StatusError{Code: http.StatusBadRequest}, msgs.InvalidRequest, msgs.InvalidRequest},
		{"500", nil, &api.StatusError{Code: http.StatusInternalServerError}, msgs.CriteriaFailed, msgs.SimilarityFailed},
		{"422", nil, &api.StatusError{Code: http.StatusUnprocessableEntity}, msgs.CriteriaFailed, msgs.SimilarityFailed},
		{"transport", nil, errors.New("connection refused"), msgs.CriteriaFailed, msgs.SimilarityFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeSearcher{articles: tt.articles, err: tt.err}, msgs, nil, nil)

			out := svc.ByCriteria(context.Background(), "Physics", api.Criteria{})
			assert.Equal(t, tt.wantCriteria, out.Message)
			assert.Empty(t, out.Articles)
			assert.False(t, out.Found())

			out = svc.BySimilarity(context.Background(), "Physics", "q")
			assert.Equal(t, tt.wantSimilarity, out.Message)
			assert.Empty(t, out.Articles)
		})
	}
}

func TestGenericFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewService(&fakeSearcher{err: errors.New("dial tcp: refused")}, msgs, zap.New(core), nil)

	svc.BySimilarity(context.Background(), "Physics", "q")

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "similarity search failed", entries[0].Message)
	assert.Equal(t, "dial tcp: refused", entries[0].ContextMap()["error"])
}

func TestExpectedStatusesLoggedAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewService(&fakeSearcher{err: &api.StatusError{Code: http.StatusNotFound}}, msgs, zap.New(core), nil)

	svc.ByCriteria(context.Background(), "Physics", api.Criteria{})

	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := &fakeRecorder{err: errors.New("disk full")}
	svc := NewService(&fakeSearcher{articles: twoArticles()}, msgs, zap.New(core), rec)

	out := svc.ByCriteria(context.Background(), "Physics", api.Criteria{})
	assert.True(t, out.Found())
	assert.Equal(t, 1, logs.FilterMessage("recording search history").Len())
}

func TestFailedSearchesAreRecordedWithMessage(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewService(&fakeSearcher{}, msgs, nil, rec)

	svc.ByCriteria(context.Background(), "Physics", api.Criteria{Year: "1850"})

	require.Len(t, rec.entries, 1)
	assert.Equal(t, msgs.CriteriaNotFound, rec.entries[0].Outcome)
	assert.Zero(t, rec.entries[0].Results)
}
