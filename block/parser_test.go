package block_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/rotext/block"
	"github.com/jcorbin/rotext/event"
	"github.com/jcorbin/rotext/stack"
)

func scanAll(t *testing.T, input string, opts event.Options) []event.Event {
	t.Helper()
	p := block.New([]byte(input), 0, opts)
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

func contents(input string, evs []event.Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = string(ev.Content([]byte(input)))
	}
	return out
}

// requireKinds compares a full []event.Kind shape with cmp.Diff, reporting
// a structural diff on mismatch rather than just the unequal values.
func requireKinds(t *testing.T, want []event.Kind, evs []event.Event) {
	t.Helper()
	if diff := cmp.Diff(want, kinds(evs)); diff != "" {
		t.Fatalf("event kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadingLevel1(t *testing.T) {
	input := "= a ="
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{event.EnterHeading1, event.Unparsed, event.ExitBlock}, kinds(evs))
	assert.Equal(t, "a", string(evs[1].Content([]byte(input))))
}

func TestBlockQuoteContinuation(t *testing.T) {
	input := "> foo\n> bar"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterBlockQuote, event.EnterParagraph,
		event.Unparsed, event.NewLine, event.Unparsed,
		event.ExitBlock, event.ExitBlock,
	}, kinds(evs))
}

func TestThematicBreakThenParagraph(t *testing.T) {
	input := "---\na"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.ThematicBreak, event.EnterParagraph, event.Unparsed, event.ExitBlock,
	}, kinds(evs))
}

func TestFencedCodeBlock(t *testing.T) {
	input := "```rust\nprint\n```"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterCodeBlock, event.Text, event.IndicateCodeBlockCode,
		event.Text, event.NewLine, event.ExitBlock,
	}, kinds(evs))
	assert.Equal(t, []string{"", "rust", "", "print", "", ""}, contents(input, evs))
}

func TestVerbatimEscapeInsideParagraph(t *testing.T) {
	input := "a<` b `>c"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterParagraph, event.Unparsed, event.VerbatimEscaping, event.Unparsed, event.ExitBlock,
	}, kinds(evs))
	assert.Equal(t, []string{"", "a", "b", "c", ""}, contents(input, evs))
}

func TestStackCapacityExceeded(t *testing.T) {
	input := "> > >"
	p := block.New([]byte(input), 0, event.Options{StackCapacity: 2})
	var got []event.Kind
	for p.Scan() {
		got = append(got, p.Event().Kind)
	}
	assert.Equal(t, []event.Kind{event.EnterBlockQuote, event.EnterBlockQuote}, got)
	assert.ErrorIs(t, p.Err(), stack.ErrOutOfSpace)
}

func TestBlankLineSeparatesParagraphs(t *testing.T) {
	input := "a\n\nb"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterParagraph, event.Unparsed, event.ExitBlock,
		event.EnterParagraph, event.Unparsed, event.ExitBlock,
	}, kinds(evs))
}

func TestOrderedListSingleItem(t *testing.T) {
	input := "# a"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterOrderedList, event.EnterListItem, event.EnterParagraph, event.Unparsed,
		event.ExitBlock, event.ExitBlock, event.ExitBlock,
	}, kinds(evs))
}

func TestDescriptionTermThenDetails(t *testing.T) {
	input := "; term\n: details"
	evs := scanAll(t, input, event.Options{})
	// Each line opens its own item-like inside the shared description list:
	// the term's paragraph/item close before the details item opens.
	require.Equal(t, []event.Kind{
		event.EnterDescriptionList, event.EnterDescriptionTerm, event.EnterParagraph, event.Unparsed, event.ExitBlock, event.ExitBlock,
		event.EnterDescriptionDetails, event.EnterParagraph, event.Unparsed, event.ExitBlock, event.ExitBlock,
		event.ExitBlock,
	}, kinds(evs))
}

func TestBlockCallVerbatimArgument(t *testing.T) {
	input := "{{tmpl|`raw [*text*]`}}"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{
		event.EnterCallOnTemplate, event.IndicateCallVerbatimArgument, event.Text, event.ExitBlock,
	}, evs)
	assert.Equal(t, "tmpl", string(evs[0].Content([]byte(input))))
	assert.Equal(t, "raw [*text*]", string(evs[2].Content([]byte(input))))
}

func TestBlockCallExtension(t *testing.T) {
	input := "{{#ext}}"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{event.EnterCallOnExtension, event.ExitBlock}, evs)
	assert.True(t, evs[0].IsExtensionCall)
}

// TestBlockCallNormalArgumentIsInlineParsed guards against a block-level
// call's normal argument being forwarded as a raw, unparsed event: since
// EnterCallOnTemplate/EnterCallOnExtension never open an inline phase, this
// content would otherwise reach a consumer as an out-of-projection event
// with no further parsing (§4.6.3's inline-parsed argument semantics,
// applied at block level).
func TestBlockCallNormalArgumentIsInlineParsed(t *testing.T) {
	input := "{{tmpl|a [*b*] c}}"
	evs := scanAll(t, input, event.Options{})
	requireKinds(t, []event.Kind{
		event.EnterCallOnTemplate, event.IndicateCallNormalArgument,
		event.Text, event.EnterStrong, event.Text, event.ExitInline, event.Text,
		event.ExitBlock,
	}, evs)
	for _, ev := range evs {
		assert.NotEqual(t, event.Unparsed, ev.Kind)
	}
}

func TestBlockIDsAreMonotonic(t *testing.T) {
	input := "a\n\nb"
	evs := scanAll(t, input, event.Options{BlockID: true})
	require.Len(t, evs, 6)
	assert.Equal(t, 1, evs[0].ID) // EnterParagraph
	assert.Equal(t, 1, evs[2].ID) // matching ExitBlock
	assert.Equal(t, 2, evs[3].ID)
	assert.Equal(t, 2, evs[5].ID)
}
