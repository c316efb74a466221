package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Managing Chronic Pain":          "managing-chronic-pain",
		"  Leading & Trailing  ":         "leading-trailing",
		"What's New in 2026?":            "what-s-new-in-2026",
		"UPPER lower MiXeD":              "upper-lower-mixed",
		"multiple---separators___here!!": "multiple-separators-here",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestSlugSuffix(t *testing.T) {
	a := SlugSuffix()
	b := SlugSuffix()
	assert.Len(t, a, 6)
	assert.NotEqual(t, a, b)
}
