package event

// Kind is a stable numeric discriminant for Event, grouped by the stage
// each variant first appears in. Tests compare Kind values directly rather
// than full Event payloads when only event shape matters (mirrors
// scandown.BlockType's role as a comparable tag alongside the richer Block
// struct).
type Kind uint32

const (
	noKind Kind = iota // zero value must never be seen by a caller

	// Global-stage leaves, also carried through Block/Inline/Blend input.
	Unparsed         // {Global, BlockInput, InlineInput}: raw bytes needing further parsing
	VerbatimEscaping // {Global, Block, Inline, Blend}: `<backticks ... backticks>`
	NewLine          // {Global, Block, Inline, Blend}: one logical line break

	// Block/Inline/Blend text leaf.
	Text // {Block, Inline, Blend}: literal text span

	// Block structural.
	ThematicBreak
	EnterParagraph
	EnterHeading1
	EnterHeading2
	EnterHeading3
	EnterHeading4
	EnterHeading5
	EnterHeading6
	EnterBlockQuote
	EnterOrderedList
	EnterUnorderedList
	EnterListItem
	EnterDescriptionList
	EnterDescriptionTerm
	EnterDescriptionDetails
	EnterCodeBlock
	EnterTable
	ExitBlock

	// Block indicators.
	IndicateCodeBlockCode
	IndicateTableCaption
	IndicateTableRow
	IndicateTableHeaderCell
	IndicateTableDataCell

	// Inline structural.
	EnterCodeSpan
	EnterStrong
	EnterStrikethrough
	EnterEmphasis
	EnterWikiLink
	EnterRuby
	EnterRubyText
	ExitInline

	// Inline leaves.
	RefLink
	Dicexp

	// Call facility, shared shape between block- and inline-level calls.
	EnterCallOnTemplate
	EnterCallOnExtension
	IndicateCallNormalArgument
	IndicateCallVerbatimArgument
)

var kindNames = [...]string{
	noKind:                        "None",
	Unparsed:                      "Unparsed",
	VerbatimEscaping:              "VerbatimEscaping",
	NewLine:                       "NewLine",
	Text:                          "Text",
	ThematicBreak:                 "ThematicBreak",
	EnterParagraph:                "EnterParagraph",
	EnterHeading1:                 "EnterHeading1",
	EnterHeading2:                 "EnterHeading2",
	EnterHeading3:                 "EnterHeading3",
	EnterHeading4:                 "EnterHeading4",
	EnterHeading5:                 "EnterHeading5",
	EnterHeading6:                 "EnterHeading6",
	EnterBlockQuote:               "EnterBlockQuote",
	EnterOrderedList:              "EnterOrderedList",
	EnterUnorderedList:            "EnterUnorderedList",
	EnterListItem:                 "EnterListItem",
	EnterDescriptionList:          "EnterDescriptionList",
	EnterDescriptionTerm:          "EnterDescriptionTerm",
	EnterDescriptionDetails:       "EnterDescriptionDetails",
	EnterCodeBlock:                "EnterCodeBlock",
	EnterTable:                    "EnterTable",
	ExitBlock:                     "ExitBlock",
	IndicateCodeBlockCode:         "IndicateCodeBlockCode",
	IndicateTableCaption:          "IndicateTableCaption",
	IndicateTableRow:              "IndicateTableRow",
	IndicateTableHeaderCell:       "IndicateTableHeaderCell",
	IndicateTableDataCell:         "IndicateTableDataCell",
	EnterCodeSpan:                 "EnterCodeSpan",
	EnterStrong:                   "EnterStrong",
	EnterStrikethrough:            "EnterStrikethrough",
	EnterEmphasis:                 "EnterEmphasis",
	EnterWikiLink:                 "EnterWikiLink",
	EnterRuby:                     "EnterRuby",
	EnterRubyText:                 "EnterRubyText",
	ExitInline:                    "ExitInline",
	RefLink:                       "RefLink",
	Dicexp:                        "Dicexp",
	EnterCallOnTemplate:           "EnterCallOnTemplate",
	EnterCallOnExtension:          "EnterCallOnExtension",
	IndicateCallNormalArgument:    "IndicateCallNormalArgument",
	IndicateCallVerbatimArgument:  "IndicateCallVerbatimArgument",
}

// String renders the Kind's bare name, e.g. for use in %v.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "InvalidKind"
}

// InGlobal reports whether k can appear in the global-stage event stream.
func (k Kind) InGlobal() bool {
	switch k {
	case Unparsed, VerbatimEscaping, NewLine:
		return true
	default:
		return false
	}
}

// InBlockInput reports whether k can appear in the stream the block parser
// pulls from the global stage (whose VerbatimEscaping ranges the global
// parser has already trimmed).
func (k Kind) InBlockInput() bool { return k.InGlobal() }

// InBlockOutput reports whether k can appear in the block parser's own
// output stream: the full structural set, plus the Unparsed content of
// paragraphs and headings that the blend mapper hands to the inline stage.
func (k Kind) InBlockOutput() bool {
	switch k {
	case Unparsed, VerbatimEscaping, NewLine, Text:
		return true
	case ThematicBreak, EnterParagraph,
		EnterHeading1, EnterHeading2, EnterHeading3, EnterHeading4, EnterHeading5, EnterHeading6,
		EnterBlockQuote, EnterOrderedList, EnterUnorderedList, EnterListItem,
		EnterDescriptionList, EnterDescriptionTerm, EnterDescriptionDetails,
		EnterCodeBlock, EnterTable, ExitBlock,
		IndicateCodeBlockCode, IndicateTableCaption, IndicateTableRow,
		IndicateTableHeaderCell, IndicateTableDataCell,
		EnterCallOnTemplate, EnterCallOnExtension,
		IndicateCallNormalArgument, IndicateCallVerbatimArgument:
		return true
	default:
		return false
	}
}

// InInlineInput reports whether k can appear in the segment of block-output
// events handed to an inline parser (Unparsed | VerbatimEscaping | NewLine | Text).
func (k Kind) InInlineInput() bool {
	switch k {
	case Unparsed, VerbatimEscaping, NewLine, Text:
		return true
	default:
		return false
	}
}

// InInlineOutput reports whether k can appear in the inline parser's own
// output stream.
func (k Kind) InInlineOutput() bool {
	switch k {
	case VerbatimEscaping, NewLine, Text,
		EnterCodeSpan, EnterStrong, EnterStrikethrough, EnterEmphasis,
		EnterWikiLink, EnterRuby, EnterRubyText, ExitInline,
		RefLink, Dicexp,
		EnterCallOnTemplate, EnterCallOnExtension,
		IndicateCallNormalArgument, IndicateCallVerbatimArgument:
		return true
	default:
		return false
	}
}

// InBlend reports whether k can appear in the unified blend/output stream.
// Unparsed never does: the inline stage consumes it.
func (k Kind) InBlend() bool {
	return k != Unparsed && (k.InBlockOutput() || k.InInlineOutput())
}

// OpensInlinePhase reports whether a block-output event of kind k is
// immediately followed by inline-parseable content: the blend mapper hands
// control to a fresh inline parser right after emitting such an event.
//
// Code blocks are deliberately excluded: per §4.5.7 their content is emitted
// directly by the block parser as Text/VerbatimEscaping/NewLine events (no
// construct recognition applies inside a code fence), so there is nothing
// for an inline parser to do there. Table cells and descriptions are wrapped
// in their own contextual EnterParagraph/ExitBlock pair (§4.5.6), so the
// paragraph case below already covers them.
func (k Kind) OpensInlinePhase() bool {
	switch k {
	case EnterParagraph,
		EnterHeading1, EnterHeading2, EnterHeading3, EnterHeading4, EnterHeading5, EnterHeading6:
		return true
	default:
		return false
	}
}

// ClosesInlinePhase reports whether a block-output event of kind k ends the
// segment an active inline parser is consuming.
func (k Kind) ClosesInlinePhase() bool {
	return k == ExitBlock
}
