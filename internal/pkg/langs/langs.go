// Package langs holds BCP 47 helpers shared by the read path and the HTTP
// language negotiation.
package langs

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Base returns the base language of code ("en" for "en-GB"), or "" when
// code is not a usable tag.
func Base(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// Negotiator picks the response language of a request from the languages
// the catalog is maintained in.
type Negotiator struct {
	supported []language.Tag
	matcher   language.Matcher
	fallback  string
}

// NewNegotiator builds a negotiator. The fallback is returned whenever no
// supported language matches; it is not required to be in supported.
func NewNegotiator(supported []string, fallback string) (*Negotiator, error) {
	if strings.TrimSpace(fallback) == "" {
		return nil, errors.New("langs: fallback language is required")
	}
	tags := make([]language.Tag, 0, len(supported)+1)
	fb, err := language.Parse(strings.TrimSpace(fallback))
	if err != nil {
		return nil, err
	}
	// The matcher returns its first tag when nothing matches.
	tags = append(tags, fb)
	for _, s := range supported {
		t, err := language.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		if t != fb {
			tags = append(tags, t)
		}
	}
	return &Negotiator{supported: tags, matcher: language.NewMatcher(tags), fallback: fb.String()}, nil
}

// Fallback is the language used when negotiation finds nothing.
func (n *Negotiator) Fallback() string {
	return n.fallback
}

// FromAcceptLanguage matches an Accept-Language header value.
func (n *Negotiator) FromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return n.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return n.fallback
	}
	_, idx, conf := n.matcher.Match(prefs...)
	if conf == language.No {
		return n.fallback
	}
	return n.supported[idx].String()
}
