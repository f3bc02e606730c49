package parser

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherFansOutInOrder(t *testing.T) {
	first := &recordingHandler{}
	second := &recordingHandler{}
	d := NewDispatcher(first)
	d.Subscribe(second)

	tok := NewTokenizer(d)
	tok.Feed(`<a x="1">hi</a>`)

	require.NotEmpty(t, first.events)
	assert.Equal(t, first.events, second.events)
}

func TestDispatcherWithNoHandlers(t *testing.T) {
	tok := NewTokenizer(NewDispatcher())
	tok.Feed("<a>hi</a>")
	tok.End()
}

func TestHandlerFuncsSubset(t *testing.T) {
	var texts []string
	var opens []string
	h := HandlerFuncs{
		Text:    func(text string) { texts = append(texts, text) },
		OpenTag: func(tag Tag) { opens = append(opens, tag.Name) },
	}

	tok := NewTokenizer(h)
	tok.Feed(`<?xml version="1.0"?><a>one</a><b/><!-- skip --><>`)

	assert.Equal(t, []string{"one"}, texts)
	assert.Equal(t, []string{"a", "b", ""}, opens)
}

func TestHandlerFuncsNilFieldsAreSafe(t *testing.T) {
	var h HandlerFuncs
	h.HandleText("x")
	h.HandleInstruction(Tag{})
	h.HandleOpenTag(Tag{})
	h.HandleCloseTag(Tag{})
	h.HandleCData("x")
	h.HandleError(errors.New("x"))
}
