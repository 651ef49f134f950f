package search

import (
	"context"
	"regexp"
)

// EventKind distinguishes the two messages a committed search worker
// sends: an intermediate Progress batch and the final Done summary.
type EventKind int

const (
	EventProgress EventKind = iota
	EventDone
)

// Event is one message from a committed-search worker, carrying any
// matches found since the previous event and running totals. A worker
// that runs to completion sends zero or more EventProgress events
// followed by exactly one EventDone (spec §4.3 "Committed search" step
// 3); a cancelled worker closes its channel without sending EventDone.
type Event struct {
	Kind         EventKind
	NewMatches   []Match
	ScannedSoFar int
	TotalMatches int
	TotalScanned int
}

// progressStride is how many lines the worker scans between Progress
// batches (spec §4.3: "Every 10 000 lines").
const progressStride = 10000

// StartCommittedSearch launches a one-shot background worker that scans
// snapshot (an owned copy of the document's lines, detached per spec
// §4.1 "Snapshot for background work") and streams Match batches back
// over the returned channel in ascending (line, byte_start) order. The
// caller owns the channel: abandoning it (never draining it further) and
// calling the returned cancel is how a new search supersedes this one —
// any event the worker attempts to send after cancellation is dropped
// rather than blocking the goroutine forever (spec §4.3
// "Cancellation").
func StartCommittedSearch(snapshot []string, re *regexp.Regexp) (<-chan Event, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan Event)

	go func() {
		defer close(ch)

		var (
			pending      []Match
			totalMatches int
			scanned      int
		)

		send := func(kind EventKind) bool {
			evt := Event{
				Kind:         kind,
				NewMatches:   pending,
				ScannedSoFar: scanned,
				TotalMatches: totalMatches,
				TotalScanned: scanned,
			}
			pending = nil
			select {
			case ch <- evt:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for i, line := range snapshot {
			if i%1024 == 0 {
				select {
				case <-ctx.Done():
					return
				default:
				}
			}

			found := FindLineMatches(re, i, line)
			if len(found) > 0 {
				pending = append(pending, found...)
				totalMatches += len(found)
			}
			scanned++

			if scanned%progressStride == 0 {
				if !send(EventProgress) {
					return
				}
			}
		}

		send(EventDone)
	}()

	return ch, cancel
}
