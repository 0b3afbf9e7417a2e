package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBraceExtractor(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"wrapped in prose", `plan: {"a":{"b":2}} enjoy`, `{"a":{"b":2}}`, true},
		{"spans trailing braces", `{"a":1} and {"b":2}`, `{"a":1} and {"b":2}`, true},
		{"no object", "nothing here", "", false},
		{"unclosed", `{"a":1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BraceExtractor{}.Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBalancedExtractor(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"first of two", `{"a":1} and {"b":2}`, `{"a":1}`, true},
		{"braces in strings", `x {"a":"}{","b":"\"}"} y }`, `{"a":"}{","b":"\"}"}`, true},
		{"nested", `{"a":{"b":{"c":[1,{"d":2}]}}}tail}`, `{"a":{"b":{"c":[1,{"d":2}]}}}`, true},
		{"no object", "nothing", "", false},
		{"unbalanced outer", `{"a":{"b":1}`, `{"b":1}`, true},
		{"unbalanced", `{"a":{"b":1`, "", false},
		{"stray brace in prose", `x "{" {"a":1} y`, `{"a":1}`, true},
		{"stray open brace", `see { below: {"a":[1,2]}`, `{"a":[1,2]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BalancedExtractor{}.Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizerWithBalancedExtractor(t *testing.T) {
	n := NewNormalizer(BalancedExtractor{})

	plan, err := n.Parse(`{"title":"A","itinerary":[]} P.S. {"title":"B"}`)
	assert.NoError(t, err)
	assert.Equal(t, "A", plan.Title)

	_, err = NewNormalizer(nil).Parse(`{"title":"A","itinerary":[]} P.S. {"title":"B"}`)
	assert.ErrorIs(t, err, ErrUnparseable)
}
