package tui

import "github.com/saraHmercha/topsearch/internal/search"

// searchDoneMsg carries a finished listing or similarity call. generation
// identifies the request; tracked is false for the implicit listing issued
// on collection change, which never drives the loading flag.
type searchDoneMsg struct {
	generation int
	tracked    bool
	outcome    search.Outcome
}

type openFailedMsg struct {
	err error
}
