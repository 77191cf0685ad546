package rotext_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/rotext"
	"github.com/jcorbin/rotext/event"
)

func TestEndToEndSmoke(t *testing.T) {
	input := "= Title =\n\n[*bold*] and >>TP.a#1 text"
	p := rotext.New([]byte(input), 0, rotext.Options{BlockID: true, LineNumber: true})
	var kinds []event.Kind
	for p.Scan() {
		kinds = append(kinds, p.Event().Kind)
	}
	require.NoError(t, p.Err())
	require.Equal(t, []event.Kind{
		event.EnterHeading1, event.Text, event.ExitBlock,
		event.EnterParagraph,
		event.EnterStrong, event.Text, event.ExitInline,
		event.Text,
		event.RefLink, event.Text,
		event.ExitBlock,
	}, kinds)
}
