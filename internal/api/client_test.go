package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := New(ts.URL, 0)
	require.NoError(t, err)
	return c
}

func TestListArticles_SendsOnlyNonEmptyFilters(t *testing.T) {
	var gotPath, gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"_id":"1","title":"Graph nets","summary":"About graphs","published":"2021-03-04T00:00:00","pdf_link":"http://arxiv.org/pdf/1"}]`))
	})

	articles, err := c.ListArticles(context.Background(), "Computer_Science", Criteria{StartYear: "2019", EndYear: " 2022 "})
	require.NoError(t, err)

	assert.Equal(t, "/collections/Computer_Science/articles", gotPath)
	assert.Equal(t, "end_year=2022&start_year=2019", gotQuery)
	require.Len(t, articles, 1)
	assert.Equal(t, "1", articles[0].ID)
	assert.Equal(t, "2021", articles[0].Year())
	assert.Equal(t, "http://arxiv.org/pdf/1", articles[0].PDFLink)
}

func TestListArticles_NoFiltersNoQuery(t *testing.T) {
	var gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	articles, err := c.ListArticles(context.Background(), "Physics", Criteria{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
	assert.Empty(t, articles)
}

func TestSimilarArticles_SendsQueryString(t *testing.T) {
	var gotPath, gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query_string")
		w.Write([]byte(`[{"_id":"a","title":"<b>Quantum</b>  walks","summary":"<p>Line one\n line two</p>"}]`))
	})

	articles, err := c.SimilarArticles(context.Background(), "Physics", "quantum walk")
	require.NoError(t, err)

	assert.Equal(t, "/collections/Physics/search", gotPath)
	assert.Equal(t, "quantum walk", gotQuery)
	require.Len(t, articles, 1)
	assert.Equal(t, "Quantum walks", articles[0].Title)
	assert.Equal(t, "Line one line two", articles[0].Summary)
}

func TestCollectionNameIsEscaped(t *testing.T) {
	var gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`[]`))
	})

	_, err := c.ListArticles(context.Background(), "a b/c", Criteria{})
	require.NoError(t, err)
	assert.Equal(t, "/collections/a%20b%2Fc/articles", gotPath)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"not found", http.StatusNotFound, `{"detail":"Collection X not found"}`, "Collection X not found"},
		{"bad request", http.StatusBadRequest, `{"detail":"Search query must be provided"}`, "Search query must be provided"},
		{"validation", http.StatusUnprocessableEntity, `{"detail":[{"loc":["query","year"]}]}`, `[{"loc":["query","year"]}]`},
		{"plain body", http.StatusInternalServerError, "boom", "boom"},
		{"empty body", http.StatusBadGateway, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.SimilarArticles(context.Background(), "Physics", "x")
			require.Error(t, err)
			assert.Equal(t, tt.status, StatusCode(err))

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantDetail, se.Detail)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	})

	_, err := c.ListArticles(context.Background(), "Physics", Criteria{})
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
}

func TestNewRejectsBadScheme(t *testing.T) {
	_, err := New("ftp://example.com", 0)
	assert.Error(t, err)

	c, err := New("http://localhost:8000/", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestCriteriaEmpty(t *testing.T) {
	assert.True(t, Criteria{}.Empty())
	assert.True(t, Criteria{Year: "  "}.Empty())
	assert.False(t, Criteria{EndYear: "2020"}.Empty())
}

func TestCleanTextKeepsEntitiesReadable(t *testing.T) {
	assert.Equal(t, "Q&A on Bayes' rule", cleanText("<i>Q&amp;A</i> on Bayes' rule"))
}
