// Package rotext implements a streaming, three-stage parser for the rotext
// lightweight markup language: a global lexing pass (escapes, comments,
// line breaks), a block-structure pass (containers and leaves), and an
// inline pass spliced into the block output by a blend mapper (§4.7).
//
// The whole pipeline is a single pull iterator: construct a Parser, then
// call Scan/Event/Err in a loop, exactly as the three stages it wraps do
// internally (§5's single-threaded cooperative pull-iterator model).
package rotext

import (
	"github.com/jcorbin/rotext/blend"
	"github.com/jcorbin/rotext/event"
)

// Options configures a Parser at construction time; see event.Options.
type Options = event.Options

// Event is one unit of parser output; see event.Event.
type Event = event.Event

// Kind discriminates Event; see event.Kind.
type Kind = event.Kind

// Parser is the top-level pipeline entry point (§6 External Interfaces).
// The zero value is not usable; use New.
type Parser struct {
	m *blend.Mapper
}

// New returns a Parser over input, starting at byte offset start (usually
// 0). input is not copied and must outlive the Parser and any byte ranges
// read from its events.
func New(input []byte, start int, opts Options) *Parser {
	return &Parser{m: blend.New(input, start, opts)}
}

// Scan advances to the next event, returning false at end of input or
// after the one recoverable error (OutOfStackSpace, §7) has surfaced.
func (p *Parser) Scan() bool { return p.m.Scan() }

// Event returns the event most recently produced by Scan.
func (p *Parser) Event() Event { return p.m.Event() }

// Err returns the error that ended the stream, if any.
func (p *Parser) Err() error { return p.m.Err() }
