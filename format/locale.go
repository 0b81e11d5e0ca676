// Package format holds the pure helpers used to display repositories:
// relative dates, language colours and the localized texts of the panel.
package format

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale groups every user-facing text of the portfolio for one language
type Locale struct {
	Tag  language.Tag
	Code string

	NoDescription string
	LoadError     string
	Repositories  string
	ViewAll       string
	CopyLabel     string
	CopiedLabel   string
	Reviews       string

	Today      string
	OneDay     string
	ManyDays   string // printf format taking the number of days
	OneMonth   string
	ManyMonths string
	OneYear    string
	ManyYears  string
}

var English = Locale{
	Tag:           language.English,
	Code:          "en",
	NoDescription: "No description",
	LoadError:     "An error occurred while loading repositories",
	Repositories:  "Repositories",
	ViewAll:       "View All Repos",
	CopyLabel:     "Copy Mail",
	CopiedLabel:   "Copied!",
	Reviews:       "from %d+ reviews",
	Today:         "today",
	OneDay:        "1 day ago",
	ManyDays:      "%d days ago",
	OneMonth:      "1 month ago",
	ManyMonths:    "%d months ago",
	OneYear:       "1 year ago",
	ManyYears:     "%d years ago",
}

var Turkish = Locale{
	Tag:           language.Turkish,
	Code:          "tr",
	NoDescription: "Açıklama yok",
	LoadError:     "Repolar yüklenirken bir hata oluştu",
	Repositories:  "Repolar",
	ViewAll:       "Tüm Repoları Gör",
	CopyLabel:     "Maili Kopyala",
	CopiedLabel:   "Kopyalandı!",
	Reviews:       "%d+ yorumdan",
	Today:         "bugün",
	OneDay:        "1 gün önce",
	ManyDays:      "%d gün önce",
	OneMonth:      "1 ay önce",
	ManyMonths:    "%d ay önce",
	OneYear:       "1 yıl önce",
	ManyYears:     "%d yıl önce",
}

// supported order matters, the first one is the matcher default
var (
	supported = []Locale{English, Turkish}
	matcher   = language.NewMatcher([]language.Tag{English.Tag, Turkish.Tag})
)

// LookupLocale returns the locale for a code such as "en" or "tr-TR", English when unknown
func LookupLocale(code string) Locale {
	code = strings.TrimSpace(code)
	if code == "" {
		return English
	}

	tag, err := language.Parse(code)
	if err != nil {
		return English
	}

	base, _ := tag.Base()
	for _, l := range supported {
		if b, _ := l.Tag.Base(); b == base {
			return l
		}
	}

	return English
}

// MatchLocale negotiates the locale from an Accept-Language header value
// the fallback code is used when the header is empty, invalid or matches nothing
func MatchLocale(acceptLanguage string, fallback string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LookupLocale(fallback)
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LookupLocale(fallback)
	}

	return supported[index]
}
