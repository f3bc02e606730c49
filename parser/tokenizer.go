// Package parser implements a single-pass, incremental XML tokenizer
// aimed at feed-like documents (ATOM/RSS/RDF). It emits structural
// events as tag, text, instruction and CDATA boundaries are recognized,
// without building a DOM or validating well-formedness.
package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Tokenizer consumes a character stream in arbitrary-sized chunks and
// reports structural events to its EventHandler. All state lives in the
// tokenizer, so chunk boundaries carry no semantic meaning: a tag or
// CDATA block may span any number of Feed calls.
//
// A Tokenizer must not be driven from more than one goroutine at a time;
// independent instances share nothing and are fully parallel-safe.
type Tokenizer struct {
	currentState tokenizerState
	curTagType   tagType
	rec          recorder
	handler      EventHandler
	log          logrus.FieldLogger
}

// NewTokenizer creates a tokenizer that delivers events to h. The
// handler must not be nil.
func NewTokenizer(h EventHandler) *Tokenizer {
	return &Tokenizer{
		currentState: textState,
		handler:      h,
	}
}

// SetLogger enables per-rune state-transition tracing. Logging is off
// while no logger is set.
func (t *Tokenizer) SetLogger(log logrus.FieldLogger) {
	t.log = log
}

// Feed processes a chunk of characters synchronously, emitting zero or
// more events per character. It never fails on malformed input; an
// unparseable tag or instruction name surfaces as an error event and
// processing continues.
func (t *Tokenizer) Feed(chunk string) {
	for _, c := range chunk {
		t.processRune(c)
	}
}

// End signals end of input. It is the explicit flush trigger for a
// trailing text run after the last tag: pending text is emitted (trimmed,
// only if non-empty), while an unterminated tag, comment or CDATA block
// is abandoned without an event. Calling End more than once is harmless.
func (t *Tokenizer) End() {
	if t.currentState != textState {
		return
	}
	if text := strings.TrimSpace(t.rec.flush()); text != "" {
		t.handler.HandleText(text)
	}
}

func (t *Tokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case textState:
		return t.textStateParser
	case tagNameState:
		return t.tagNameStateParser
	case instructionState:
		return t.instructionStateParser
	case cdataState:
		return t.cdataStateParser
	case ignoreCommentState:
		return t.ignoreCommentStateParser
	}

	return nil
}

func (t *Tokenizer) processRune(c rune) {
	t.rec.push(c)
	next := t.stateToParser(t.currentState)(c)
	if t.log != nil {
		t.log.Debugf("[TOKEN]rune: %q, mode: %s -> %s", c, t.currentState, next)
	}
	t.currentState = next
}

// a parserStateHandler consumes one rune in a given state and returns the
// state to transition to.
type parserStateHandler func(c rune) tokenizerState

func (t *Tokenizer) textStateParser(c rune) tokenizerState {
	if c != '<' {
		return textState
	}
	if text := strings.TrimSpace(t.rec.end(0)); text != "" {
		t.handler.HandleText(text)
	}
	t.curTagType = tagOpening
	return tagNameState
}

func (t *Tokenizer) tagNameStateParser(c rune) tokenizerState {
	prev, hasPrev := t.rec.lookbehind(1)
	prev2, hasPrev2 := t.rec.lookbehind(2)

	switch {
	case hasPrev && prev == '<' && c == '?':
		t.rec.begin()
		return instructionState
	case hasPrev && prev == '<' && c == '/':
		t.rec.end(0)
		t.curTagType = tagClosing
		return tagNameState
	case hasPrev2 && prev2 == '<' && prev == '!' && c == '[':
		t.rec.begin()
		return cdataState
	case hasPrev2 && prev2 == '<' && prev == '!' && c == '-':
		t.rec.begin()
		return ignoreCommentState
	case c == '>':
		if hasPrev && prev == '/' {
			t.curTagType = tagSelfClosing
		}
		t.finishTag(t.rec.end(0))
		return textState
	default:
		return tagNameState
	}
}

func (t *Tokenizer) instructionStateParser(c rune) tokenizerState {
	prev, hasPrev := t.rec.lookbehind(1)
	if hasPrev && prev == '?' && c == '>' {
		// drop the trailing '?' of the "?>" delimiter
		t.finishInstruction(t.rec.end(1))
		return textState
	}
	return instructionState
}

func (t *Tokenizer) cdataStateParser(c rune) tokenizerState {
	prev, hasPrev := t.rec.lookbehind(1)
	prev2, hasPrev2 := t.rec.lookbehind(2)
	if hasPrev2 && prev2 == ']' && hasPrev && prev == ']' && c == '>' {
		t.handler.HandleCData(stripCData(t.rec.end(0)))
		return textState
	}
	return cdataState
}

func (t *Tokenizer) ignoreCommentStateParser(c rune) tokenizerState {
	prev, hasPrev := t.rec.lookbehind(1)
	prev2, hasPrev2 := t.rec.lookbehind(2)
	if hasPrev2 && prev2 == '-' && hasPrev && prev == '-' && c == '>' {
		// comments produce no event
		t.rec.end(0)
		return textState
	}
	return ignoreCommentState
}

// finishTag parses the recorded tag string and emits the open/close
// event(s) for the current tag type. A parse failure is reported through
// the error event and the degraded descriptor is still emitted.
func (t *Tokenizer) finishTag(raw string) {
	tag, err := parseTagString(raw)
	if err != nil {
		t.handler.HandleError(err)
	}

	if t.curTagType == tagSelfClosing && len(tag.Attributes) == 0 {
		tag.Attributes[SelfClosingMarker] = "true"
		tag.Keys = append(tag.Keys, SelfClosingMarker)
	}

	switch t.curTagType {
	case tagOpening:
		t.handler.HandleOpenTag(tag)
	case tagClosing:
		t.handler.HandleCloseTag(tag)
	case tagSelfClosing:
		t.handler.HandleOpenTag(tag)
		t.handler.HandleCloseTag(tag)
	}

	t.curTagType = tagNone
}

func (t *Tokenizer) finishInstruction(raw string) {
	tag, err := parseTagString(raw)
	if err != nil {
		t.handler.HandleError(err)
	}
	t.handler.HandleInstruction(tag)
}

// stripCData removes the "CDATA[" lead-in and the "]]" of the closing
// "]]>" from a recorded CDATA section, leaving the literal content.
func stripCData(raw string) string {
	raw = strings.TrimPrefix(raw, "CDATA[")
	if len(raw) >= 2 && strings.HasSuffix(raw, "]]") {
		raw = raw[:len(raw)-2]
	}
	return raw
}
