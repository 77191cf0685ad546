package blend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/rotext/blend"
	"github.com/jcorbin/rotext/event"
)

func scanAll(t *testing.T, input string, opts event.Options) []event.Event {
	t.Helper()
	m := blend.New([]byte(input), 0, opts)
	var out []event.Event
	for m.Scan() {
		out = append(out, m.Event())
	}
	require.NoError(t, m.Err())
	return out
}

func kinds(evs []event.Event) []event.Kind {
	ks := make([]event.Kind, len(evs))
	for i, ev := range evs {
		ks[i] = ev.Kind
	}
	return ks
}

func TestHeadingLevel1(t *testing.T) {
	input := "= a ="
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{event.EnterHeading1, event.Text, event.ExitBlock}, kinds(evs))
	assert.Equal(t, "a", string(evs[1].Content([]byte(input))))
}

func TestBlockQuoteContinuation(t *testing.T) {
	input := "> foo\n> bar"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterBlockQuote, event.EnterParagraph,
		event.Text, event.NewLine, event.Text,
		event.ExitBlock, event.ExitBlock,
	}, kinds(evs))
}

func TestThematicBreakThenParagraph(t *testing.T) {
	input := "---\na"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.ThematicBreak, event.EnterParagraph, event.Text, event.ExitBlock,
	}, kinds(evs))
}

func TestVerbatimEscapeInsideParagraph(t *testing.T) {
	input := "a<` b `>c"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterParagraph, event.Text, event.VerbatimEscaping, event.Text, event.ExitBlock,
	}, kinds(evs))
	assert.False(t, evs[2].IsClosedForcedly)
}

func TestStrongSpanInParagraph(t *testing.T) {
	input := "[*strong*]"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterParagraph, event.EnterStrong, event.Text, event.ExitInline, event.ExitBlock,
	}, kinds(evs))
}

func TestRefLinkInParagraph(t *testing.T) {
	input := ">>TP.abc#123a"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterParagraph, event.RefLink, event.Text, event.ExitBlock,
	}, kinds(evs))
	assert.Equal(t, "TP.abc#123", string(evs[1].Content([]byte(input))))
}

func TestFencedCodeBlockSkipsInlinePhase(t *testing.T) {
	// Code block content is emitted as Text directly by the block stage and
	// never handed to the inline parser (Kind.OpensInlinePhase excludes
	// EnterCodeBlock), so markers like "[*" inside it stay literal.
	input := "```\n[*a*]\n```"
	evs := scanAll(t, input, event.Options{})
	require.Equal(t, []event.Kind{
		event.EnterCodeBlock, event.IndicateCodeBlockCode,
		event.Text, event.NewLine, event.ExitBlock,
	}, kinds(evs))
	assert.Equal(t, "[*a*]", string(evs[2].Content([]byte(input))))
}
