package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Water", "Water"},
		{"leading and trailing", "  Water  ", "Water"},
		{"inner runs", "Dry  Roasted\t\tPeanuts", "Dry Roasted Peanuts"},
		{"newlines", "Water,\nSalt,\nSugar", "Water, Salt, Sugar"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collapse(tt.in))
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"commas", "Water, Salt, Sugar", []string{"Water", "Salt", "Sugar"}},
		{"semicolons", "Water; Salt; Sugar", []string{"Water", "Salt", "Sugar"}},
		{"mixed", "Water, Salt; Sugar", []string{"Water", "Salt", "Sugar"}},
		{"single", "Water", []string{"Water"}},
		{"empty parts dropped", "Water,, ,Salt", []string{"Water", "Salt"}},
		{"empty input", "", nil},
		{"delimiters only", ",;,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestCutPrefixFold(t *testing.T) {
	got, ok := CutPrefixFold("Ingredients: Water", "ingredients:")
	assert.True(t, ok)
	assert.Equal(t, "Water", got)

	got, ok = CutPrefixFold("CONTAINS peanuts", "contains ")
	assert.True(t, ok)
	assert.Equal(t, "peanuts", got)

	got, ok = CutPrefixFold("Water", "ingredients:")
	assert.False(t, ok)
	assert.Equal(t, "Water", got)

	got, ok = CutPrefixFold("a", "ingredients:")
	assert.False(t, ok)
	assert.Equal(t, "a", got)
}
