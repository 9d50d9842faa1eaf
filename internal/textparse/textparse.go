// Package textparse extracts dish name, portion weight and cooking method
// from free-form user messages like "паста карбонара 250г запеченная".
package textparse

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Description is a parsed free-form dish message. WeightGrams is 0 and
// CookingMethod is empty when the user did not mention them.
type Description struct {
	DishName      string
	WeightGrams   int
	CookingMethod string
}

// weightRe matches "300г", "300 гр" and "300 грамм(ов)". The trailing group
// guards against unit letters bleeding into the next word ("2 гриба").
var weightRe = regexp.MustCompile(`(\d+)\s*(?:грамм[а-яё]*|гр|г)(?:[^а-яё]|$)`)

// methodInflections maps colloquial forms users type to catalog cooking
// methods. Longer phrases are matched before their substrings.
var methodInflections = []struct {
	form   string
	method string
}{
	{"жарка на углях", "жарка на углях"},
	{"на углях", "жарка на углях"},
	{"на гриле", "гриль"},
	{"гриль", "гриль"},
	{"запеченная", "запекание"},
	{"запеченный", "запекание"},
	{"запечённая", "запекание"},
	{"запечённый", "запекание"},
	{"запекание", "запекание"},
	{"жареная", "жарка"},
	{"жареный", "жарка"},
	{"жарка", "жарка"},
	{"тушеная", "тушение"},
	{"тушеный", "тушение"},
	{"тушёная", "тушение"},
	{"тушение", "тушение"},
	{"варенная", "варка"},
	{"вареная", "варка"},
	{"вареный", "варка"},
	{"отварная", "варка"},
	{"отварной", "варка"},
	{"варка", "варка"},
	{"на пару", "на пару"},
	{"сырой", "сырой"},
	{"сырая", "сырой"},
}

// Parse pulls weight and cooking method out of a dish description and
// returns what is left as the dish name.
func Parse(text string) Description {
	d := Description{}
	rest := strings.ToLower(strings.TrimSpace(text))

	if loc := weightRe.FindStringSubmatchIndex(rest); loc != nil {
		if grams, err := strconv.Atoi(rest[loc[2]:loc[3]]); err == nil {
			d.WeightGrams = grams
		}
		rest = rest[:loc[0]] + " " + rest[loc[1]:]
	}

	for _, mi := range methodInflections {
		if idx := indexWord(rest, mi.form); idx >= 0 {
			d.CookingMethod = mi.method
			rest = rest[:idx] + " " + rest[idx+len(mi.form):]
			break
		}
	}

	d.DishName = CleanDishName(rest)
	return d
}

// indexWord finds phrase in s at a word boundary, so "варка" does not match
// inside "поварка".
func indexWord(s, phrase string) int {
	from := 0
	for {
		idx := strings.Index(s[from:], phrase)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(phrase)
		beforeOK := idx == 0 || s[idx-1] == ' ' || s[idx-1] == ','
		afterOK := end == len(s) || s[end] == ' ' || s[end] == ','
		if beforeOK && afterOK {
			return idx
		}
		from = end
	}
}

// CleanDishName collapses whitespace and strips stray punctuation left over
// after weight and method removal.
func CleanDishName(s string) string {
	s = strings.Trim(s, " ,.;:!?")
	return strings.Join(strings.Fields(s), " ")
}

// ExtractWeight returns the first weight mention in grams, or 0.
func ExtractWeight(text string) int {
	m := weightRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0
	}
	grams, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return grams
}

// ParseWeightReply parses a message that should be just a weight, accepting
// both "300" and "300г".
func ParseWeightReply(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if grams, err := strconv.Atoi(text); err == nil {
		return grams, true
	}
	if grams := ExtractWeight(text); grams > 0 {
		return grams, true
	}
	return 0, false
}

// FormatSources renders source URLs as a compact, human-readable domain
// list: "wikipedia.org, britannica.com".
func FormatSources(sources []string) string {
	seen := make(map[string]struct{}, len(sources))
	var hosts []string
	for _, s := range sources {
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		hosts = append(hosts, host)
	}
	return strings.Join(hosts, ", ")
}
