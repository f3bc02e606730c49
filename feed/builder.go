// Package feed assembles channel metadata and items from a tokenized
// ATOM, RSS or RDF document. It consumes the parser's event stream and
// keeps only the handful of fields feed readers actually use; it is not
// a full feed object model.
package feed

import (
	"strings"

	"github.com/feedmill/sax/parser"
)

// Item is one entry of a feed.
type Item struct {
	Title     string
	Link      string
	GUID      string
	Published string
	Summary   string
}

// Feed is the channel-level metadata plus its items.
type Feed struct {
	Title       string
	Link        string
	Description string
	Items       []Item
}

// Builder implements parser.EventHandler and builds a Feed from the
// event stream. Drive it with a parser.Tokenizer or parser.Writer, then
// read the result with Feed.
type Builder struct {
	feed Feed
	item *Item
	path []string
	errs []error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Feed returns what has been assembled so far.
func (b *Builder) Feed() Feed {
	return b.feed
}

// Errs returns the tokenizer errors observed while building, in order.
func (b *Builder) Errs() []error {
	return b.errs
}

// local strips a namespace prefix: "dc:creator" -> "creator".
func local(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (b *Builder) HandleOpenTag(tag parser.Tag) {
	name := local(tag.Name)
	b.path = append(b.path, name)

	switch name {
	case "item", "entry":
		b.item = &Item{}
	case "link":
		// ATOM carries the link as an href attribute rather than text
		if href, ok := tag.Attributes["href"]; ok {
			b.setField("link", href)
		}
	}
}

func (b *Builder) HandleCloseTag(tag parser.Tag) {
	name := local(tag.Name)
	if name == "item" || name == "entry" {
		if b.item != nil {
			b.feed.Items = append(b.feed.Items, *b.item)
			b.item = nil
		}
	}
	if n := len(b.path); n > 0 && b.path[n-1] == name {
		b.path = b.path[:n-1]
	}
}

func (b *Builder) HandleText(text string) {
	b.setField(b.current(), text)
}

func (b *Builder) HandleCData(data string) {
	if data = strings.TrimSpace(data); data != "" {
		b.setField(b.current(), data)
	}
}

func (b *Builder) HandleInstruction(parser.Tag) {}

func (b *Builder) HandleError(err error) {
	b.errs = append(b.errs, err)
}

func (b *Builder) current() string {
	if len(b.path) == 0 {
		return ""
	}
	return b.path[len(b.path)-1]
}

func (b *Builder) parent() string {
	if len(b.path) < 2 {
		return ""
	}
	return b.path[len(b.path)-2]
}

func (b *Builder) setField(element, value string) {
	if b.item != nil {
		if p := b.parent(); p != "item" && p != "entry" {
			return
		}
		switch element {
		case "title":
			b.item.Title = value
		case "link":
			b.item.Link = value
		case "guid", "id":
			b.item.GUID = value
		case "pubDate", "published", "updated", "date":
			// first date wins; ATOM entries often carry several
			if b.item.Published == "" {
				b.item.Published = value
			}
		case "description", "summary", "content", "encoded":
			b.item.Summary = value
		}
		return
	}

	if p := b.parent(); p != "channel" && p != "feed" {
		return
	}
	switch element {
	case "title":
		b.feed.Title = value
	case "link":
		b.feed.Link = value
	case "description", "subtitle":
		b.feed.Description = value
	}
}
