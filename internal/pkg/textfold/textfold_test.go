package textfold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLower(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Widget", "widget"},
		{"\u00c7AYDANLIK \u00c9lite", "\u00e7aydanlik \u00e9lite"},
		{"\u00e7aydanl\u0131k", "\u00e7aydanlik"},
		{"\u0130STANBUL", "istanbul"},
		{"E\u0301LITE", "\u00e9lite"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Lower(tc.in), tc.in)
	}
}

func TestLower_SearchTermMatchesStoredName(t *testing.T) {
	stored := Lower("\u00c7AYDANLIK \u00c9lite")
	assert.Contains(t, stored, Lower("\u00e7aydanl\u0131k"))
	assert.Contains(t, stored, Lower("\u00c9LITE"))
}
