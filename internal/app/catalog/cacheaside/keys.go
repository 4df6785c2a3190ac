package cacheaside

import (
	"strconv"
	"strings"

	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
)

// KeySeparator separates cache key segments. Every key starts with
// "<kind>::" so a whole kind can be dropped with one prefix delete.
const KeySeparator = "::"

const (
	opList = "list"
	opGet  = "get"
)

// Key joins kind, operation and parts into a cache key.
func Key(kind, operation string, parts ...string) string {
	segs := make([]string, 0, len(parts)+2)
	segs = append(segs, kind, operation)
	segs = append(segs, parts...)
	return strings.Join(segs, KeySeparator)
}

// ListKey builds the key of a canonical list query. Fields are written in a
// fixed order with explicit names so two criteria produce the same key only
// when they select the same page.
func ListKey(c dto.ListCriteria) string {
	return Key(c.Kind, opList,
		"lang="+c.LanguageCode,
		"q="+strconv.Quote(c.SearchTerm),
		"parent="+c.ParentID,
		"min="+priceKey(c.MinPrice),
		"max="+priceKey(c.MaxPrice),
		"sort="+string(c.Sort),
		"offset="+strconv.Itoa(c.Offset),
		"limit="+strconv.Itoa(c.Limit),
	)
}

// GetKey builds the key of a single entity projected into lang.
func GetKey(kind, id, lang string) string {
	return Key(kind, opGet, id, lang)
}

// namespaceOf returns the "<kind>::" prefix of key.
func namespaceOf(key string) string {
	if i := strings.Index(key, KeySeparator); i >= 0 {
		return key[:i+len(KeySeparator)]
	}
	return key
}

func priceKey(p *dto.Price) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(p.Numerator, 10) + "/" + strconv.FormatInt(p.Denominator, 10)
}
