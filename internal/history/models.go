package history

import "time"

type Kind string

const (
	KindCriteria   Kind = "criteria"
	KindSimilarity Kind = "similarity"
)

// Entry is one executed search. Outcome is empty on success and holds the
// message shown to the user otherwise.
type Entry struct {
	ID         string
	Kind       Kind
	Collection string
	Year       string
	StartYear  string
	EndYear    string
	Query      string
	Results    int
	Outcome    string
	At         time.Time
}
