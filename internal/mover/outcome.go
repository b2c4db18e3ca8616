package mover

import (
	"time"

	"filesorter/internal/scanner"
)

// Kind classifies a move outcome.
type Kind int

const (
	KindMoved Kind = iota + 1
	KindSkipped
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindMoved:
		return "moved"
	case KindSkipped:
		return "skipped"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Skip reasons.
const (
	ReasonNoExtension       = "no extension"
	ReasonDestinationExists = "destination exists"
	ReasonAlreadyInPlace    = "already in place"
)

// Outcome is the result of attempting to relocate one entry.
type Outcome struct {
	Kind        Kind
	Entry       scanner.Entry
	Category    string
	CategoryDir string
	Destination string
	At          time.Time
	// Reason carries the skip reason or the failure detail written to the audit log.
	Reason string
	// Err is set for failed outcomes and wraps services.ErrCategoryFolder or services.ErrMove.
	Err error
	// Overwrote reports that an existing file at Destination was replaced.
	Overwrote bool
}

func moved(entry scanner.Entry, cat, dir, dest string, at time.Time, overwrote bool) Outcome {
	return Outcome{Kind: KindMoved, Entry: entry, Category: cat, CategoryDir: dir, Destination: dest, At: at, Overwrote: overwrote}
}

func skipped(entry scanner.Entry, cat, reason string) Outcome {
	return Outcome{Kind: KindSkipped, Entry: entry, Category: cat, Reason: reason}
}

func failed(entry scanner.Entry, cat, dir, reason string, err error) Outcome {
	return Outcome{Kind: KindFailed, Entry: entry, Category: cat, CategoryDir: dir, Reason: reason, Err: err}
}
