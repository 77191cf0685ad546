// Package blend implements the pipeline's final stage (§4.7): it owns the
// block parser's iterator and, whenever a block event opens an inline
// phase, hands that iterator to a fresh inline parser until the phase
// closes, splicing the inline output into the unified event stream.
package blend

import (
	"github.com/jcorbin/rotext/block"
	"github.com/jcorbin/rotext/event"
	"github.com/jcorbin/rotext/inline"
)

// state is the mapper's own two-state machine (§4.7): Normal forwards
// block events directly, TakenOver defers to the active inline parser.
type state int

const (
	stateNormal state = iota
	stateTakenOver
)

// Mapper unifies the block and inline stages into one event.Scanner. The
// zero value is not usable; use New.
type Mapper struct {
	input []byte
	opts  event.Options

	block *block.Parser
	seg   *segmentView
	sub   *inline.Parser

	st  state
	cur event.Event
	err error
}

// New returns a Mapper reading input starting at start.
func New(input []byte, start int, opts event.Options) *Mapper {
	m := &Mapper{
		input: input,
		opts:  opts,
		block: block.New(input, start, opts),
	}
	m.seg = &segmentView{owner: m}
	return m
}

// Scan advances to the next blended event.
func (m *Mapper) Scan() bool {
	for {
		switch m.st {
		case stateNormal:
			if !m.block.Scan() {
				m.err = m.block.Err()
				return false
			}
			ev := m.block.Event()
			m.cur = ev
			if ev.Kind.OpensInlinePhase() {
				m.seg.exhausted = false
				m.sub = inline.New(m.seg, m.input, m.opts)
				m.st = stateTakenOver
			}
			return true

		case stateTakenOver:
			if !m.sub.Scan() {
				if err := m.sub.Err(); err != nil {
					m.err = err
					return false
				}
				m.st = stateNormal
				if m.seg.hasPend {
					// The segment view already pulled the event that
					// closed this inline phase (always ExitBlock, per
					// Kind.ClosesInlinePhase); hand it straight to the
					// consumer instead of re-pulling it from the block
					// iterator a second time.
					m.cur = m.seg.pending
					m.seg.hasPend = false
					return true
				}
				continue
			}
			m.cur = m.sub.Event()
			return true
		}
	}
}

// Event returns the event most recently produced by Scan.
func (m *Mapper) Event() event.Event { return m.cur }

// Err returns the error that ended the stream, if any (propagated from
// either the block stage or the active inline parser).
func (m *Mapper) Err() error { return m.err }

// segmentView is the "segment view" of §4.7: it peeks the shared block
// iterator and yields events to the active inline parser until one closes
// the inline phase, at which point it reports exhaustion and leaves that
// event for the Mapper to re-consume in Normal state.
type segmentView struct {
	owner     *Mapper
	exhausted bool
	pending   event.Event
	hasPend   bool
}

func (s *segmentView) Scan() bool {
	if s.exhausted {
		return false
	}
	if !s.owner.block.Scan() {
		s.exhausted = true
		return false
	}
	ev := s.owner.block.Event()
	if ev.Kind.ClosesInlinePhase() {
		s.pending, s.hasPend = ev, true
		s.exhausted = true
		return false
	}
	s.pending = ev
	return true
}

func (s *segmentView) Event() event.Event { return s.pending }
