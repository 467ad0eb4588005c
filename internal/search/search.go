// Package search binds the form inputs to the article service and maps
// every result or failure to what the user is shown.
package search

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/saraHmercha/topsearch/internal/api"
	"github.com/saraHmercha/topsearch/internal/history"
	"github.com/saraHmercha/topsearch/internal/i18n"
)

// Searcher is the subset of the article service the form needs.
type Searcher interface {
	ListArticles(ctx context.Context, collection string, criteria api.Criteria) ([]api.Article, error)
	SimilarArticles(ctx context.Context, collection, query string) ([]api.Article, error)
}

// Recorder persists executed searches.
type Recorder interface {
	Record(e history.Entry) error
}

var (
	ErrNoCollection = errors.New("no collection selected")
	ErrEmptyQuery   = errors.New("empty search term")
)

// Outcome is the result of one search. Message is set whenever something
// other than a non-empty article list must be shown; Articles is then
// empty.
type Outcome struct {
	Kind     history.Kind
	Articles []api.Article
	Message  string
	Err      error
}

// Found reports whether the outcome carries articles to display.
func (o Outcome) Found() bool {
	return o.Message == "" && len(o.Articles) > 0
}

type Service struct {
	client Searcher
	msgs   i18n.Messages
	log    *zap.Logger
	rec    Recorder
}

// NewService wires a Service. log and rec may be nil.
func NewService(client Searcher, msgs i18n.Messages, log *zap.Logger, rec Recorder) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{client: client, msgs: msgs, log: log, rec: rec}
}

func (s *Service) Messages() i18n.Messages {
	return s.msgs
}

// CheckCriteria validates a criteria search locally. It returns the
// message to show, or "" when the search may proceed.
func (s *Service) CheckCriteria(collection string) string {
	return s.message(history.KindCriteria, validate(collection, "", false))
}

// CheckSimilarity validates a similarity search locally.
func (s *Service) CheckSimilarity(collection, query string) string {
	return s.message(history.KindSimilarity, validate(collection, query, true))
}

func validate(collection, query string, needQuery bool) error {
	if strings.TrimSpace(collection) == "" {
		return ErrNoCollection
	}
	if needQuery && strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// ByCriteria lists the collection's articles filtered by criteria.
func (s *Service) ByCriteria(ctx context.Context, collection string, criteria api.Criteria) Outcome {
	if err := validate(collection, "", false); err != nil {
		return s.fail(history.KindCriteria, err)
	}

	articles, err := s.client.ListArticles(ctx, collection, criteria)
	out := s.outcome(history.KindCriteria, articles, err)
	if out.Err != nil {
		s.logFailure(out.Err, "criteria search failed",
			zap.String("collection", collection),
			zap.String("year", criteria.Year),
			zap.String("start_year", criteria.StartYear),
			zap.String("end_year", criteria.EndYear),
		)
	}
	s.record(history.Entry{
		Kind:       history.KindCriteria,
		Collection: collection,
		Year:       criteria.Year,
		StartYear:  criteria.StartYear,
		EndYear:    criteria.EndYear,
		Results:    len(out.Articles),
		Outcome:    out.Message,
	})
	return out
}

// BySimilarity runs a similarity search for query within collection.
func (s *Service) BySimilarity(ctx context.Context, collection, query string) Outcome {
	if err := validate(collection, query, true); err != nil {
		return s.fail(history.KindSimilarity, err)
	}

	articles, err := s.client.SimilarArticles(ctx, collection, query)
	out := s.outcome(history.KindSimilarity, articles, err)
	if out.Err != nil {
		s.logFailure(out.Err, "similarity search failed",
			zap.String("collection", collection),
			zap.String("query", query),
		)
	}
	s.record(history.Entry{
		Kind:       history.KindSimilarity,
		Collection: collection,
		Query:      query,
		Results:    len(out.Articles),
		Outcome:    out.Message,
	})
	return out
}

func (s *Service) fail(kind history.Kind, err error) Outcome {
	return Outcome{Kind: kind, Message: s.message(kind, err), Err: err}
}

func (s *Service) outcome(kind history.Kind, articles []api.Article, err error) Outcome {
	if err != nil {
		return s.fail(kind, err)
	}
	if len(articles) == 0 {
		return Outcome{Kind: kind, Message: s.notFound(kind)}
	}
	return Outcome{Kind: kind, Articles: articles}
}

// logFailure writes the diagnostic detail the user never sees. Statuses
// with a dedicated message are expected and logged at debug.
func (s *Service) logFailure(err error, msg string, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	switch code := api.StatusCode(err); code {
	case http.StatusNotFound, http.StatusBadRequest:
		s.log.Debug(msg, append(fields, zap.Int("status", code))...)
	case 0:
		s.log.Error(msg, fields...)
	default:
		s.log.Error(msg, append(fields, zap.Int("status", code))...)
	}
}

func (s *Service) notFound(kind history.Kind) string {
	if kind == history.KindSimilarity {
		return s.msgs.SimilarityNotFound
	}
	return s.msgs.CriteriaNotFound
}

// message maps err to the fixed string shown for it.
func (s *Service) message(kind history.Kind, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoCollection):
		return s.msgs.SelectCollection
	case errors.Is(err, ErrEmptyQuery):
		return s.msgs.EnterSearchTerm
	}

	switch api.StatusCode(err) {
	case http.StatusNotFound:
		return s.notFound(kind)
	case http.StatusBadRequest:
		return s.msgs.InvalidRequest
	}

	if kind == history.KindSimilarity {
		return s.msgs.SimilarityFailed
	}
	return s.msgs.CriteriaFailed
}

func (s *Service) record(e history.Entry) {
	if s.rec == nil {
		return
	}
	if err := s.rec.Record(e); err != nil {
		s.log.Warn("recording search history", zap.Error(err))
	}
}
