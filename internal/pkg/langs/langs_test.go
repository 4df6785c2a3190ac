package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase(t *testing.T) {
	assert.Equal(t, "en", Base("en-GB"))
	assert.Equal(t, "de", Base("de"))
	assert.Equal(t, "", Base(""))
	assert.Equal(t, "", Base("!!"))
}

func TestNegotiator(t *testing.T) {
	n, err := NewNegotiator([]string{"en", "de", "fr"}, "en")
	require.NoError(t, err)

	assert.Equal(t, "en", n.Fallback())
	assert.Equal(t, "de", n.FromAcceptLanguage("de-DE,de;q=0.9,en;q=0.5"))
	assert.Equal(t, "fr", n.FromAcceptLanguage("fr-CA"))
	assert.Equal(t, "en", n.FromAcceptLanguage("ja"))
	assert.Equal(t, "en", n.FromAcceptLanguage(""))
	assert.Equal(t, "en", n.FromAcceptLanguage(";;;"))
}

func TestNewNegotiator_RejectsBadTags(t *testing.T) {
	_, err := NewNegotiator([]string{"en", "!!"}, "en")
	assert.Error(t, err)
	_, err = NewNegotiator(nil, "")
	assert.Error(t, err)
}
