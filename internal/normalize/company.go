package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
)

// titleSeparators split page titles such as "Careers | Stripe" into parts.
var titleSeparators = []string{" | ", " - ", " – ", " — ", " · ", ": "}

var titlePrefixes = []string{
	"careers at ", "jobs at ", "working at ", "work at ", "join ", "life at ",
}

var titleSuffixes = []string{
	" careers page", " career page", " careers", " career", " jobs", " job openings",
	" open positions", " hiring", " recruiting", " staffing",
}

// corporateSuffixes are removed from company names, longest first.
var corporateSuffixes = []string{
	", inc.", " inc.", " inc", ", llc", " llc", ", ltd.", " ltd.", " ltd",
	" corporation", " corp.", " corp", " gmbh", " plc", " co.",
}

// uninformative titles say nothing about the company.
var uninformative = map[string]bool{
	"careers": true, "career": true, "jobs": true, "job": true, "home": true,
	"job search": true, "search jobs": true, "job openings": true,
	"open positions": true, "join us": true, "work with us": true,
	"careers page": true, "current openings": true, "linkedin": true,
	"indeed": true, "glassdoor": true, "wikipedia": true, "apply": true,
}

// CompanyFromTitle guesses a company name from a page title by splitting it
// on common separators and stripping career-page words and corporate
// suffixes. It returns "" when every part is uninformative.
func CompanyFromTitle(title string) string {
	parts := []string{CleanText(title)}
	for _, sep := range titleSeparators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	for _, p := range parts {
		name := stripAffixes(CleanText(p))
		if name == "" || uninformative[strings.ToLower(name)] {
			continue
		}
		return name
	}
	return ""
}

func stripAffixes(s string) string {
	lower := strings.ToLower(s)
	for _, p := range titlePrefixes {
		if strings.HasPrefix(lower, p) {
			s, lower = s[len(p):], lower[len(p):]
			break
		}
	}
	for _, suf := range titleSuffixes {
		if strings.HasSuffix(lower, suf) && len(lower) > len(suf) {
			s, lower = s[:len(s)-len(suf)], lower[:len(lower)-len(suf)]
			break
		}
	}
	return TrimCorporateSuffix(s)
}

// TrimCorporateSuffix removes one trailing legal-entity suffix such as
// "Inc." or "LLC".
func TrimCorporateSuffix(name string) string {
	name = CleanText(name)
	lower := strings.ToLower(name)
	for _, suf := range corporateSuffixes {
		if strings.HasSuffix(lower, suf) && len(lower) > len(suf) {
			return strings.TrimSpace(name[:len(name)-len(suf)])
		}
	}
	return name
}

// CompanyFromDomain derives a display name from a registrable domain:
// "stripe.com" -> "Stripe". Job boards and IP hosts yield "".
func CompanyFromDomain(domain string) string {
	if domain == "" || IsJobBoard(domain) {
		return ""
	}
	suffix, _ := publicsuffix.PublicSuffix(domain)
	label := strings.TrimSuffix(domain, "."+suffix)
	if label == "" || label == domain || strings.ContainsAny(label, ".:") {
		return ""
	}
	if strings.IndexFunc(label, unicode.IsLetter) < 0 {
		return ""
	}
	r := []rune(label)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// CompanyKey normalizes a company name for comparison: lower case, no
// punctuation, no legal-entity suffix.
func CompanyKey(name string) string {
	name = strings.ToLower(TrimCorporateSuffix(name))
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
