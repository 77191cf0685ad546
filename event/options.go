package event

// Options configures a parser at construction time (§6 Construction parameters).
type Options struct {
	// BlockID, when true, causes every Enter* and ThematicBreak event to
	// carry a unique, monotonically increasing ID.
	BlockID bool

	// LineNumber, when true, causes newline-bearing events to carry the
	// 1-based logical line number after the break, and ExitBlock to carry
	// its start/end line span.
	LineNumber bool

	// StackCapacity bounds the block and inline container/delimiter stacks.
	// Zero (the default) means unbounded (heap-growing), per stack.SetCap.
	StackCapacity int
}
