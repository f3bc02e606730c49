package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagStringTestcase struct {
	raw   string
	name  string
	attrs map[string]string
	keys  []string
	fails bool
}

var tagStringTests = []tagStringTestcase{
	{raw: "a", name: "a"},
	{raw: "a/", name: "a"},
	{raw: "rdf:RDF", name: "rdf:RDF"},
	{raw: "my-elem_1.b", name: "my-elem_1.b"},
	{raw: "café", name: "café"},
	{raw: `a href="x"`, name: "a",
		attrs: map[string]string{"href": "x"}, keys: []string{"href"}},
	{raw: `a x="1" y="2"/`, name: "a",
		attrs: map[string]string{"x": "1", "y": "2"}, keys: []string{"x", "y"}},
	{raw: `a x="1" x="2"`, name: "a",
		attrs: map[string]string{"x": "2"}, keys: []string{"x"}},
	{raw: `a empty=""`, name: "a",
		attrs: map[string]string{"empty": ""}, keys: []string{"empty"}},
	{raw: `link rel="alternate" type="text/html" href="http://example.com/?a=1&b=2"`,
		name: "link",
		attrs: map[string]string{
			"rel":  "alternate",
			"type": "text/html",
			"href": "http://example.com/?a=1&b=2",
		},
		keys: []string{"rel", "type", "href"}},
	{raw: `xml version="1.0" encoding="utf-8"`, name: "xml",
		attrs: map[string]string{"version": "1.0", "encoding": "utf-8"},
		keys:  []string{"version", "encoding"}},

	// unparseable names
	{raw: "", fails: true},
	{raw: "!DOCTYPE html", fails: true},
	{raw: `"quoted"`, fails: true},
	{raw: "=x", fails: true},
}

func TestParseTagString(t *testing.T) {
	for _, tt := range tagStringTests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			tag, err := parseTagString(tt.raw)
			if tt.fails {
				require.Error(t, err)
				assert.Equal(t, "", tag.Name)
				assert.Empty(t, tag.Attributes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, tag.Name)
			if tt.attrs == nil {
				tt.attrs = map[string]string{}
			}
			assert.Equal(t, tt.attrs, tag.Attributes)
			assert.Equal(t, tt.keys, tag.Keys)
		})
	}
}

// The attribute scan only accepts double-quoted values; anything else is
// skipped rather than guessed at.
func TestParseTagStringUnquotedValuesIgnored(t *testing.T) {
	tag, err := parseTagString(`a x=1 y="2"`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"y": "2"}, tag.Attributes)
}
