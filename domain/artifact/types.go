package artifact

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"maridash/domain/topic"
)

// Kind distinguishes plots from tabular artifacts
type Kind string

const (
	KindImage Kind = "image"
	KindTable Kind = "table"
)

// Extension returns the file suffix the artifact host uses for the kind
func (k Kind) Extension() string {
	if k == KindTable {
		return "csv"
	}
	return "png"
}

// Category identifies one analysis output. Name alone is ambiguous:
// extreme_sentiments exists as both a plot and a table.
type Category struct {
	Kind Kind
	Name string
}

func (c Category) String() string {
	return string(c.Kind) + "/" + c.Name
}

// Title is the section heading shown above the artifact
func (c Category) Title() string {
	if c.Kind == KindTable {
		if title, ok := tableTitles[c.Name]; ok {
			return title
		}
	}
	return capitalize(strings.ReplaceAll(c.Name, "_", " "))
}

// Image categories
var (
	Wordcloud           = Category{KindImage, "wordcloud"}
	Sentiments          = Category{KindImage, "sentiments"}
	ExtremeSentiments   = Category{KindImage, "extreme_sentiments"}
	KeywordDistribution = Category{KindImage, "keyword_distribution"}
	TrendingKeywords    = Category{KindImage, "trending_keywords"}
	Network             = Category{KindImage, "network"}
	CountryDistribution = Category{KindImage, "country_distribution"}
)

// Table categories
var (
	TopTopics              = Category{KindTable, "top_topics"}
	ExtremeSentimentsTable = Category{KindTable, "extreme_sentiments"}
	TokenSentiments        = Category{KindTable, "token_sentiments"}
	Results                = Category{KindTable, "results"}
)

var tableTitles = map[string]string{
	TopTopics.Name:              "Top Topics",
	ExtremeSentimentsTable.Name: "Extreme Sentiments (Tabelle)",
	TokenSentiments.Name:        "Token-Sentiments",
	Results.Name:                "Ergebnisse",
}

// Layout is the fixed presentation order of the dashboard
var Layout = []Category{
	Results,
	Wordcloud,
	Sentiments,
	TokenSentiments,
	ExtremeSentiments,
	ExtremeSentimentsTable,
	KeywordDistribution,
	TrendingKeywords,
	Network,
	CountryDistribution,
	TopTopics,
}

// ImageCategories returns the plot categories in layout order
func ImageCategories() []Category {
	return filter(KindImage)
}

// TableCategories returns the tabular categories in layout order
func TableCategories() []Category {
	return filter(KindTable)
}

// LookupTable finds a table category by name
func LookupTable(name string) (Category, bool) {
	for _, c := range TableCategories() {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

func filter(kind Kind) []Category {
	var out []Category
	for _, c := range Layout {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Reference is a derived, never stored, pointer to one artifact
type Reference struct {
	Category Category
	Topic    topic.Topic
	URL      string
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
