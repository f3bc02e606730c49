package parser

// tokenizerState identifies which part of the document the tokenizer is
// currently reading. Exactly one state is active at a time.
type tokenizerState uint

const (
	textState tokenizerState = iota
	tagNameState
	instructionState
	cdataState
	ignoreCommentState
)

var stateNames = []string{
	"text",
	"tagName",
	"instruction",
	"cdata",
	"ignoreComment",
}

func (s tokenizerState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// tagType tracks what kind of tag is being accumulated while in the
// tagName state.
type tagType uint

const (
	tagNone tagType = iota
	tagOpening
	tagClosing
	tagSelfClosing
)

// SelfClosingMarker is the reserved attribute key added to a self-closing
// tag that carries no attributes of its own, so listeners can tell
// <tag/> apart from <tag></tag>. Self-closing tags with real attributes
// get no marker.
const SelfClosingMarker = "selfclosing"

// Tag is the descriptor produced for every open/close/instruction event:
// the parsed name plus its attributes. Attributes resolves duplicate keys
// last-wins; Keys preserves first-encounter order.
type Tag struct {
	Name       string
	Attributes map[string]string
	Keys       []string
}

// recorder is the rolling buffer the tokenizer accumulates characters in
// between state-transition boundaries. mark is the index of the first rune
// belonging to the current token; everything before it is lookback context
// retained from the previous token.
type recorder struct {
	buf  []rune
	mark int
}

func (r *recorder) push(c rune) {
	r.buf = append(r.buf, c)
}

// lookbehind returns the rune n positions before the most recently pushed
// rune. lookbehind(1) is the predecessor of the current rune.
func (r *recorder) lookbehind(n int) (rune, bool) {
	i := len(r.buf) - 1 - n
	if i < 0 {
		return 0, false
	}
	return r.buf[i], true
}

// begin marks the start of a fresh token at the current position, so the
// already-buffered delimiter runes stay out of the recorded text.
func (r *recorder) begin() {
	r.mark = len(r.buf)
}

// end closes the current recording: it slices out the token between mark
// and the just-pushed trigger rune (dropping trim extra runes before the
// trigger), then resets the buffer to the trigger rune alone so the next
// rune still has its predecessor available. This keeps memory bounded by
// the size of the in-flight token.
func (r *recorder) end(trim int) string {
	hi := len(r.buf) - 1 - trim
	if hi < r.mark {
		hi = r.mark
	}
	tok := string(r.buf[r.mark:hi])
	last := r.buf[len(r.buf)-1]
	r.buf = append(r.buf[:0], last)
	r.mark = 1
	return tok
}

// flush returns everything recorded since mark without a trigger rune to
// exclude, leaving the buffer with only its lookback rune.
func (r *recorder) flush() string {
	if len(r.buf) == 0 {
		return ""
	}
	tok := string(r.buf[r.mark:])
	last := r.buf[len(r.buf)-1]
	r.buf = append(r.buf[:0], last)
	r.mark = 1
	return tok
}
