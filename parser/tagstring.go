package parser

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// The identifier class for tag/instruction/attribute names: letters
// (including Latin-1 accented ones), digits, ':', '_', '-', '.', '/'.
var (
	tagNamePattern   = regexp.MustCompile(`^([a-zA-Z0-9À-ÖØ-öø-ÿ:_\-./]+?)(?:\s|$)`)
	attributePattern = regexp.MustCompile(`([a-zA-Z0-9À-ÖØ-öø-ÿ:_\-./]+)="([^"]*?)"`)
)

// parseTagString extracts a tag or instruction name and its attribute
// mapping from a captured tag substring such as `a href="x"`. It never
// fails hard: an unrecognizable name yields an empty descriptor and an
// error for the caller to surface as an error event.
func parseTagString(raw string) (Tag, error) {
	tag := Tag{Attributes: map[string]string{}}

	m := tagNamePattern.FindStringSubmatch(raw)
	if m == nil {
		return tag, errors.Errorf("could not parse tag name in %q", raw)
	}

	// a self-closing delimiter captured inside the name match leaves a
	// trailing '/' artifact
	tag.Name = strings.TrimSuffix(m[1], "/")

	for _, kv := range attributePattern.FindAllStringSubmatch(raw[len(m[1]):], -1) {
		if _, seen := tag.Attributes[kv[1]]; !seen {
			tag.Keys = append(tag.Keys, kv[1])
		}
		tag.Attributes[kv[1]] = kv[2]
	}

	return tag, nil
}
