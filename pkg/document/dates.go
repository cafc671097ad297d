package document

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/language"
)

// date layouts accepted on input. The store writes ISO dates, older records
// may carry non padded variants.
var inputLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02.01.2006",
	"2.1.2006",
	"01/02/2006",
}

// ParseDate parses a calendar date the same way everywhere in the document
// model. ok is false for empty or unparseable values.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

type shortDate struct {
	tag    language.Tag
	layout string
}

// short date layouts per locale. Kept deliberately small, the matcher falls
// back to the first entry.
var shortDates = []shortDate{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "02.01.2006"},
	{language.Dutch, "2-1-2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "02/01/2006"},
	{language.Danish, "02.01.2006"},
	{language.Swedish, "2006-01-02"},
	{language.Japanese, "2006/01/02"},
}

var dateMatcher = language.NewMatcher(lo.Map(shortDates,
	func(s shortDate, _ int) language.Tag { return s.tag }))

// ShortDateLayout resolves the short date layout for a BCP-47 tag.
func ShortDateLayout(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return shortDates[0].layout
	}
	_, idx, _ := dateMatcher.Match(tag)
	return shortDates[idx].layout
}

// FormatDate renders a raw date value using the given layout. Unparseable
// values are passed through verbatim, never dropped.
func FormatDate(raw, layout string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return t.Format(layout)
}

// SortedUniqueDates returns the dates deduplicated and sorted ascending by
// calendar date. Unparseable values sort last, ordered by raw string.
func SortedUniqueDates(dates []string) []string {
	out := lo.Uniq(dates)
	sort.SliceStable(out, func(i, j int) bool {
		return dateLess(out[i], out[j])
	})
	return out
}

func dateLess(a, b string) bool {
	ta, oka := ParseDate(a)
	tb, okb := ParseDate(b)
	switch {
	case oka && okb:
		return ta.Before(tb)
	case oka:
		return true
	case okb:
		return false
	default:
		return a < b
	}
}
