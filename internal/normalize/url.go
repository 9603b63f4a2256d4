package normalize

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// CanonicalURL validates raw as an absolute http(s) URL and returns it with
// a lower-cased scheme and host, no fragment, and tracking parameters
// removed. The second value is the bare hostname.
func CanonicalURL(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("parsing url: %w", err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("unsupported url %q", raw)
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return "", "", fmt.Errorf("url %q has no host", raw)
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	q := u.Query()
	for k := range q {
		if isTrackingParam(k) {
			q.Del(k)
		}
	}
	for k := range q {
		sort.Strings(q[k])
	}
	u.RawQuery = q.Encode()
	return u.String(), host, nil
}

func isTrackingParam(k string) bool {
	lk := strings.ToLower(k)
	if strings.HasPrefix(lk, "utm_") {
		return true
	}
	switch lk {
	case "gclid", "fbclid", "msclkid", "mc_cid", "mc_eid", "mkt_tok":
		return true
	}
	return false
}

// RegistrableDomain returns the lower-cased eTLD+1 of host, so that
// "Careers.Example.co.uk" and "example.co.uk" share "example.co.uk". IP
// addresses and hosts without a public suffix are returned as is.
func RegistrableDomain(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return host
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}

// jobBoards are registrable domains that host postings for many
// companies; they never name the company themselves.
var jobBoards = map[string]bool{
	"linkedin.com":        true,
	"indeed.com":          true,
	"glassdoor.com":       true,
	"ziprecruiter.com":    true,
	"monster.com":         true,
	"careerbuilder.com":   true,
	"simplyhired.com":     true,
	"builtin.com":         true,
	"levels.fyi":          true,
	"crunchbase.com":      true,
	"wikipedia.org":       true,
	"google.com":          true,
	"greenhouse.io":       true,
	"lever.co":            true,
	"myworkdayjobs.com":   true,
	"workday.com":         true,
	"smartrecruiters.com": true,
	"icims.com":           true,
	"jobvite.com":         true,
	"applytojob.com":      true,
	"ashbyhq.com":         true,
	"wellfound.com":       true,
	"dice.com":            true,
	"upwork.com":          true,
}

// IsJobBoard reports whether domain is a multi-company job board or ATS.
func IsJobBoard(domain string) bool {
	return jobBoards[strings.ToLower(domain)]
}
