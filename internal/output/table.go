package output

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/saraHmercha/topsearch/internal/api"
	"github.com/saraHmercha/topsearch/internal/history"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

// Articles renders one row per article. Titles are cut to titleWidth
// runes when positive.
func Articles(w io.Writer, articles []api.Article, titleWidth int) error {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		title := a.Title
		if titleWidth > 0 {
			title = truncate(title, titleWidth)
		}
		rows = append(rows, []string{a.ID, a.Year(), title, a.PDFLink})
	}

	t := newTable(w)
	t.Header([]string{"id", "year", "title", "pdf"})
	if err := t.Bulk(rows); err != nil {
		return fmt.Errorf("building table: %w", err)
	}
	return t.Render()
}

// History renders search history entries, newest first as given.
func History(w io.Writer, entries []history.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.At.Local().Format(time.DateTime),
			string(e.Kind),
			e.Collection,
			describe(e),
			fmt.Sprintf("%d", e.Results),
			e.Outcome,
		})
	}

	t := newTable(w)
	t.Header([]string{"when", "kind", "collection", "terms", "results", "outcome"})
	if err := t.Bulk(rows); err != nil {
		return fmt.Errorf("building table: %w", err)
	}
	return t.Render()
}

func describe(e history.Entry) string {
	if e.Kind == history.KindSimilarity {
		return fmt.Sprintf("%q", e.Query)
	}
	switch {
	case e.Year != "":
		return "year=" + e.Year
	case e.StartYear != "" && e.EndYear != "":
		return e.StartYear + "-" + e.EndYear
	case e.StartYear != "":
		return "from " + e.StartYear
	case e.EndYear != "":
		return "until " + e.EndYear
	}
	return "-"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
