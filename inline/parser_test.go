package inline_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/rotext/event"
	"github.com/jcorbin/rotext/inline"
	"github.com/jcorbin/rotext/stack"
)

// sliceScanner replays a fixed []event.Event, standing in for the segment
// view a blend mapper would otherwise hand an inline parser.
type sliceScanner struct {
	evs []event.Event
	cur event.Event
}

func (s *sliceScanner) Scan() bool {
	if len(s.evs) == 0 {
		return false
	}
	s.cur, s.evs = s.evs[0], s.evs[1:]
	return true
}
func (s *sliceScanner) Event() event.Event { return s.cur }

func scanAll(t *testing.T, input string, opts event.Options) []event.Event {
	t.Helper()
	src := &sliceScanner{evs: []event.Event{
		{Kind: event.Unparsed, Range: event.Range{Start: 0, End: len(input)}},
	}}
	p := inline.New(src, []byte(input), opts)
	var out []event.Event
	for p.Scan() {
		out = append(out, p.Event())
	}
	require.NoError(t, p.Err())
	return out
}

func kinds(evs []event.Event) []event.Kind {
	ks := make([]event.Kind, len(evs))
	for i, ev := range evs {
		ks[i] = ev.Kind
	}
	return ks
}

// requireKinds compares a full []event.Kind shape with cmp.Diff, reporting
// a structural diff on mismatch rather than just the unequal values.
func requireKinds(t *testing.T, want []event.Kind, evs []event.Event) {
	t.Helper()
	if diff := cmp.Diff(want, kinds(evs)); diff != "" {
		t.Fatalf("event kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestStrongSpan(t *testing.T) {
	input := "[*strong*]"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{event.EnterStrong, event.Text, event.ExitInline}, kinds(evs))
	assert.Equal(t, "strong", string(evs[1].Content([]byte(input))))
}

func TestRefLinkThenText(t *testing.T) {
	input := ">>TP.abc#123a"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{event.RefLink, event.Text}, kinds(evs))
	assert.Equal(t, "TP.abc#123", string(evs[0].Content([]byte(input))))
	assert.Equal(t, "a", string(evs[1].Content([]byte(input))))
}

func TestNestedEmphasisInStrong(t *testing.T) {
	input := "[*a[/b/]c*]"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterStrong, event.Text, event.EnterEmphasis, event.Text, event.ExitInline,
		event.Text, event.ExitInline,
	}, kinds(evs))
}

func TestWikiLinkWithContent(t *testing.T) {
	input := "[[Page|text [*b*] more]]"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterWikiLink, event.Text, event.EnterStrong, event.Text, event.ExitInline,
		event.Text, event.ExitInline,
	}, kinds(evs))
	assert.Equal(t, "Page", string(evs[0].Content([]byte(input))))
}

func TestCodeSpanNotRecognizedInside(t *testing.T) {
	input := "[`a[*b*]c`]"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{event.EnterCodeSpan, event.Text, event.ExitInline}, kinds(evs))
	assert.Equal(t, "a[*b*]c", string(evs[1].Content([]byte(input))))
}

func TestUnmatchedCloserIsLiteral(t *testing.T) {
	input := "a*] b"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{event.Text}, kinds(evs))
	assert.Equal(t, "a*] b", string(evs[0].Content([]byte(input))))
}

func TestForceCloseAtSegmentEnd(t *testing.T) {
	input := "[*never closed"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{event.EnterStrong, event.Text, event.ExitInline}, kinds(evs))
	assert.Equal(t, "never closed", string(evs[1].Content([]byte(input))))
}

func TestRubyWithText(t *testing.T) {
	input := "[;base:text]"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{
		event.EnterRuby, event.EnterRubyText, event.Text, event.ExitInline, event.ExitInline,
	}, evs)
	assert.Equal(t, "base", string(evs[0].Content([]byte(input))))
	assert.Equal(t, "text", string(evs[2].Content([]byte(input))))
}

func TestRubyWithoutText(t *testing.T) {
	input := "[;base]"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{event.EnterRuby, event.ExitInline}, evs)
	assert.Equal(t, "base", string(evs[0].Content([]byte(input))))
}

func TestDicexp(t *testing.T) {
	input := "[=1d6+2]"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{event.Dicexp}, evs)
	assert.Equal(t, "1d6+2", string(evs[0].Content([]byte(input))))
}

func TestInlineCallVerbatimArgument(t *testing.T) {
	input := "[{tmpl|`raw [*text*]`}]"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{
		event.EnterCallOnTemplate, event.IndicateCallVerbatimArgument, event.Text, event.ExitInline,
	}, evs)
	assert.Equal(t, "tmpl", string(evs[0].Content([]byte(input))))
	assert.Equal(t, "raw [*text*]", string(evs[2].Content([]byte(input))))
}

func TestInlineCallExtension(t *testing.T) {
	input := "[{#ext}]"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{event.EnterCallOnExtension, event.ExitInline}, evs)
	assert.True(t, evs[0].IsExtensionCall)
}

// TestInlineCallNormalArgumentIsInlineParsed guards against a normal call
// argument being passed through as a raw, unparsed event: its own nested
// constructs must flow through the inline scanner like any other
// inline-phase content (§4.6.3's "text/inline-parsed" argument kind).
func TestInlineCallNormalArgumentIsInlineParsed(t *testing.T) {
	input := "[{tmpl|a [*b*] c}]"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{
		event.EnterCallOnTemplate, event.IndicateCallNormalArgument,
		event.Text, event.EnterStrong, event.Text, event.ExitInline, event.Text,
		event.ExitInline,
	}, evs)
	for _, ev := range evs {
		assert.NotEqual(t, event.Unparsed, ev.Kind)
	}
}

func TestInlineStackCapacityExceeded(t *testing.T) {
	input := "[*[~[/x/]~]*]"
	src := &sliceScanner{evs: []event.Event{
		{Kind: event.Unparsed, Range: event.Range{Start: 0, End: len(input)}},
	}}
	p := inline.New(src, []byte(input), event.Options{StackCapacity: 2})
	var got []event.Kind
	for p.Scan() {
		got = append(got, p.Event().Kind)
	}
	assert.Equal(t, []event.Kind{event.EnterStrong, event.EnterStrikethrough}, got)
	assert.ErrorIs(t, p.Err(), stack.ErrOutOfSpace)
}
