// saxcat streams an XML document through the tokenizer and prints each
// event, or summarizes a feed with -feed.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/feedmill/sax/feed"
	"github.com/feedmill/sax/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("saxcat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	feedMode := fs.Bool("feed", false, "summarize the document as a feed instead of printing events")
	verbose := fs.Bool("v", false, "log tokenizer state transitions")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [file]\n\n", fs.Name())
		fmt.Fprintln(stderr, "Tokenizes an XML document and prints its structural events.")
		fmt.Fprintln(stderr, "Reads stdin when no file is given.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logrus.SetOutput(stderr)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	in := io.Reader(os.Stdin)
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, errors.Wrap(err, "open input"))
			return 1
		}
		defer f.Close()
		in = f
	}

	var handler parser.EventHandler
	var builder *feed.Builder
	if *feedMode {
		builder = feed.NewBuilder()
		handler = builder
	} else {
		handler = newEventPrinter(stdout)
	}

	w := parser.NewWriter(handler)
	if *verbose {
		w.Tokenizer().SetLogger(logrus.StandardLogger())
	}
	if _, err := w.ReadFrom(in); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	w.Close()

	if builder != nil {
		printFeed(stdout, builder)
	}
	return 0
}

type eventPrinter struct {
	out        io.Writer
	tagColor   *color.Color
	textColor  *color.Color
	instrColor *color.Color
	cdataColor *color.Color
	errorColor *color.Color
}

func newEventPrinter(out io.Writer) *eventPrinter {
	return &eventPrinter{
		out:        out,
		tagColor:   color.New(color.FgCyan),
		textColor:  color.New(color.FgWhite),
		instrColor: color.New(color.FgMagenta),
		cdataColor: color.New(color.FgYellow),
		errorColor: color.New(color.FgRed, color.Bold),
	}
}

func (p *eventPrinter) attrs(tag parser.Tag) string {
	s := ""
	for _, k := range tag.Keys {
		s += fmt.Sprintf(" %s=%q", k, tag.Attributes[k])
	}
	return s
}

func (p *eventPrinter) HandleText(text string) {
	p.textColor.Fprintf(p.out, "text        %q\n", text)
}

func (p *eventPrinter) HandleInstruction(tag parser.Tag) {
	p.instrColor.Fprintf(p.out, "instruction %s%s\n", tag.Name, p.attrs(tag))
}

func (p *eventPrinter) HandleOpenTag(tag parser.Tag) {
	p.tagColor.Fprintf(p.out, "opentag     %s%s\n", tag.Name, p.attrs(tag))
}

func (p *eventPrinter) HandleCloseTag(tag parser.Tag) {
	p.tagColor.Fprintf(p.out, "closetag    %s\n", tag.Name)
}

func (p *eventPrinter) HandleCData(data string) {
	p.cdataColor.Fprintf(p.out, "cdata       %q\n", data)
}

func (p *eventPrinter) HandleError(err error) {
	p.errorColor.Fprintf(p.out, "error       %v\n", err)
}

func printFeed(out io.Writer, b *feed.Builder) {
	f := b.Feed()
	fmt.Fprintf(out, "%s\n", f.Title)
	if f.Link != "" {
		fmt.Fprintf(out, "%s\n", f.Link)
	}
	if f.Description != "" {
		fmt.Fprintf(out, "%s\n", f.Description)
	}
	for _, item := range f.Items {
		fmt.Fprintf(out, "- %s (%s)\n", item.Title, item.Link)
	}
	for _, err := range b.Errs() {
		fmt.Fprintf(out, "! %v\n", err)
	}
}
