package event

// Scanner abstracts over every stage of the pipeline (global, block, inline,
// blend): Scan advances to the next event and reports whether one was
// produced, Event returns it. Grounded directly on scanio.Scanner, which
// plays the identical role for byte-oriented token scanners in the teacher
// repo.
type Scanner interface {
	Scan() bool
	Event() Event
}

// ErrScanner is a Scanner extension for stages that can fail: once Scan
// returns false, Err reports whether that was a clean end of stream (nil)
// or the one recoverable parser error, OutOfStackSpace (§7). Grounded on
// scanio.ErrScanner.
type ErrScanner interface {
	Scanner
	Err() error
}

// ScanError returns any error retained by sc, following scanio.ScanError.
func ScanError(sc Scanner) error {
	if esc, ok := sc.(ErrScanner); ok {
		return esc.Err()
	}
	return nil
}
