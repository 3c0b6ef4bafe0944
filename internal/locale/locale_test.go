package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	fr, ok := Lookup("fr")
	assert.True(t, ok)
	assert.Equal(t, 3, fr.Months["mars"])

	en, ok := Lookup("en")
	assert.True(t, ok)
	assert.Equal(t, 3, en.Months["march"])

	_, ok = Lookup("de")
	assert.False(t, ok)
}

func TestFrenchSubstitutions(t *testing.T) {
	for _, sub := range French.Substitutions {
		assert.NotNil(t, sub.Pattern)
		assert.NotEmpty(t, sub.Replacement)
	}
}
