// Package i18n holds the fixed user-facing strings of the client.
package i18n

import "golang.org/x/text/language"

// Messages is one language's catalog.
type Messages struct {
	Tag string

	// Validation
	SelectCollection string
	EnterSearchTerm  string

	// Outcomes
	CriteriaNotFound   string
	SimilarityNotFound string
	InvalidRequest     string
	CriteriaFailed     string
	SimilarityFailed   string

	// Form
	CollectionLabel  string
	YearLabel        string
	StartYearLabel   string
	EndYearLabel     string
	QueryLabel       string
	QueryPlaceholder string
	SearchButton     string
	SimilarityButton string
	Loading          string
	ResultsLabel     string
	NoResults        string
	SelectArticle    string
	NoSummary        string
	PDFLabel         string
	PublishedLabel   string
}

var French = Messages{
	Tag: "fr",

	SelectCollection: "Veuillez sélectionner une collection.",
	EnterSearchTerm:  "Veuillez entrer un terme de recherche.",

	CriteriaNotFound:   "Aucun article trouvé pour ces critères.",
	SimilarityNotFound: "Aucun article similaire trouvé.",
	InvalidRequest:     "Format de requête invalide.",
	CriteriaFailed:     "Une erreur est survenue lors de la recherche des articles.",
	SimilarityFailed:   "Une erreur est survenue lors de la recherche par similarité.",

	CollectionLabel:  "Collection",
	YearLabel:        "Année",
	StartYearLabel:   "Année de début",
	EndYearLabel:     "Année de fin",
	QueryLabel:       "Recherche par similarité",
	QueryPlaceholder: "Terme de recherche...",
	SearchButton:     "Rechercher",
	SimilarityButton: "Rechercher des similaires",
	Loading:          "Chargement...",
	ResultsLabel:     "Articles",
	NoResults:        "Aucun article",
	SelectArticle:    "Sélectionnez un article",
	NoSummary:        "(Pas de résumé disponible)",
	PDFLabel:         "PDF",
	PublishedLabel:   "Publié le",
}

var English = Messages{
	Tag: "en",

	SelectCollection: "Please select a collection.",
	EnterSearchTerm:  "Please enter a search term.",

	CriteriaNotFound:   "No articles found for these criteria.",
	SimilarityNotFound: "No similar articles found.",
	InvalidRequest:     "Invalid request format.",
	CriteriaFailed:     "An error occurred while fetching articles.",
	SimilarityFailed:   "An error occurred during the similarity search.",

	CollectionLabel:  "Collection",
	YearLabel:        "Year",
	StartYearLabel:   "Start year",
	EndYearLabel:     "End year",
	QueryLabel:       "Similarity search",
	QueryPlaceholder: "Search term...",
	SearchButton:     "Search",
	SimilarityButton: "Find similar",
	Loading:          "Loading...",
	ResultsLabel:     "Articles",
	NoResults:        "No articles",
	SelectArticle:    "Select an article",
	NoSummary:        "(No summary available)",
	PDFLabel:         "PDF",
	PublishedLabel:   "Published",
}

// French is first: it is the fallback for unmatched tags.
var (
	catalogs = []Messages{French, English}
	matcher  = language.NewMatcher([]language.Tag{language.French, language.English})
)

// For returns the catalog best matching the given BCP 47 tags, such as a
// config value or a LANG-style locale.
func For(tags ...string) Messages {
	_, idx := language.MatchStrings(matcher, tags...)
	if idx < 0 || idx >= len(catalogs) {
		return French
	}
	return catalogs[idx]
}
