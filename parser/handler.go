package parser

// EventHandler is the sink the tokenizer reports structural events to,
// one method per event kind. Events arrive in document order,
// synchronously with Feed.
type EventHandler interface {
	// HandleText receives a non-empty, whitespace-trimmed text run.
	HandleText(text string)
	// HandleInstruction receives a <?...?> processing instruction.
	HandleInstruction(tag Tag)
	// HandleOpenTag receives an opening tag. A self-closing tag fires
	// HandleOpenTag and then HandleCloseTag with the same descriptor.
	HandleOpenTag(tag Tag)
	// HandleCloseTag receives a closing tag.
	HandleCloseTag(tag Tag)
	// HandleCData receives the literal content of a <![CDATA[...]]> block.
	HandleCData(data string)
	// HandleError receives a non-fatal tokenization error, such as an
	// unparseable tag name. The degraded tag event still follows.
	HandleError(err error)
}

// Dispatcher fans events out to any number of subscribed handlers, in
// subscription order.
type Dispatcher struct {
	handlers []EventHandler
}

func NewDispatcher(handlers ...EventHandler) *Dispatcher {
	return &Dispatcher{handlers: handlers}
}

// Subscribe adds a handler. Not safe to call while a Feed is in flight.
func (d *Dispatcher) Subscribe(h EventHandler) {
	d.handlers = append(d.handlers, h)
}

func (d *Dispatcher) HandleText(text string) {
	for _, h := range d.handlers {
		h.HandleText(text)
	}
}

func (d *Dispatcher) HandleInstruction(tag Tag) {
	for _, h := range d.handlers {
		h.HandleInstruction(tag)
	}
}

func (d *Dispatcher) HandleOpenTag(tag Tag) {
	for _, h := range d.handlers {
		h.HandleOpenTag(tag)
	}
}

func (d *Dispatcher) HandleCloseTag(tag Tag) {
	for _, h := range d.handlers {
		h.HandleCloseTag(tag)
	}
}

func (d *Dispatcher) HandleCData(data string) {
	for _, h := range d.handlers {
		h.HandleCData(data)
	}
}

func (d *Dispatcher) HandleError(err error) {
	for _, h := range d.handlers {
		h.HandleError(err)
	}
}

// HandlerFuncs adapts free functions to the EventHandler interface so a
// caller can subscribe to a subset of events. Nil fields drop the event.
type HandlerFuncs struct {
	Text        func(text string)
	Instruction func(tag Tag)
	OpenTag     func(tag Tag)
	CloseTag    func(tag Tag)
	CData       func(data string)
	Error       func(err error)
}

func (f HandlerFuncs) HandleText(text string) {
	if f.Text != nil {
		f.Text(text)
	}
}

func (f HandlerFuncs) HandleInstruction(tag Tag) {
	if f.Instruction != nil {
		f.Instruction(tag)
	}
}

func (f HandlerFuncs) HandleOpenTag(tag Tag) {
	if f.OpenTag != nil {
		f.OpenTag(tag)
	}
}

func (f HandlerFuncs) HandleCloseTag(tag Tag) {
	if f.CloseTag != nil {
		f.CloseTag(tag)
	}
}

func (f HandlerFuncs) HandleCData(data string) {
	if f.CData != nil {
		f.CData(data)
	}
}

func (f HandlerFuncs) HandleError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}
