package vos

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleAliases_List() {
	aliases := NewAliases(Alias{"ll", "ls"})
	aliases.Set("la", "ls")
	aliases.Set("ll", "ls.real")

	for _, a := range aliases.List() {
		fmt.Println(a)
	}

	// Output: ll='ls.real'
	// la='ls'
}

func TestParseAlias(t *testing.T) {
	cases := []struct {
		def      string
		expected Alias
		ok       bool
	}{
		{"ll=ls", Alias{"ll", "ls"}, true},
		{"eq=a=b", Alias{"eq", "a=b"}, true},
		{"empty=", Alias{"empty", ""}, true},
		{"bare", Alias{"bare", ""}, false},
	}

	for _, tc := range cases {
		t.Run(tc.def, func(t *testing.T) {
			alias, ok := ParseAlias(tc.def)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, alias)
		})
	}
}

func TestAliases(t *testing.T) {
	aliases := NewAliases()

	_, ok := aliases.Get("ll")
	assert.False(t, ok)

	assert.Nil(t, aliases.Set("ll", "ls"))
	val, ok := aliases.Get("ll")
	assert.True(t, ok)
	assert.Equal(t, "ls", val)

	assert.ErrorIs(t, aliases.Set("", "ls"), ErrInvalidName)

	assert.True(t, aliases.Delete("ll"))
	assert.False(t, aliases.Delete("ll"))
	assert.Empty(t, aliases.List())
}
