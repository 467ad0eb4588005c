package api

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Article is a single document returned by the search service. Only the
// fields the client displays are decoded.
type Article struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Published string `json:"published,omitempty"`
	PDFLink   string `json:"pdf_link,omitempty"`
}

// Year returns the YYYY prefix of the publication timestamp, if any.
func (a Article) Year() string {
	if len(a.Published) < 4 {
		return ""
	}
	return a.Published[:4]
}

// Criteria holds the optional year filters as typed by the user. Empty
// fields are omitted from the request; range consistency is left to the
// service.
type Criteria struct {
	Year      string
	StartYear string
	EndYear   string
}

// Empty reports whether no filter is set.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Year) == "" &&
		strings.TrimSpace(c.StartYear) == "" &&
		strings.TrimSpace(c.EndYear) == ""
}

func (c Criteria) values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(c.Year); s != "" {
		v.Set("year", s)
	}
	if s := strings.TrimSpace(c.StartYear); s != "" {
		v.Set("start_year", s)
	}
	if s := strings.TrimSpace(c.EndYear); s != "" {
		v.Set("end_year", s)
	}
	return v
}

var textPolicy = bluemonday.StrictPolicy()

// clean strips markup and collapses whitespace in display fields.
func (a *Article) clean() {
	a.Title = cleanText(a.Title)
	a.Summary = cleanText(a.Summary)
}

func cleanText(s string) string {
	// The policy escapes entities on the way out; the terminal wants plain text.
	return strings.Join(strings.Fields(html.UnescapeString(textPolicy.Sanitize(s))), " ")
}
