// Package report summarizes the event journal: how many sessions started,
// how many reached the handoff, and where the rest stopped.
package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/underground-music/intake/internal/log"
)

// Report holds the aggregated statistics of a journal.
type Report struct {
	Sessions  int
	Handoffs  int
	Abandoned int
	// Participants counts people across handoffs.
	Participants int
	// ByClass counts handoffs per class type.
	ByClass map[string]int
	// ByChannel counts started sessions per front end.
	ByChannel map[string]int
	// DropOff counts abandoned sessions by the last step they reached.
	DropOff map[string]int
	Resets  int
	First   time.Time
	Last    time.Time
}

type sessionState struct {
	lastStep string
	handoff  bool
}

// Build aggregates events. Events without a session id are ignored.
func Build(events []log.LogEvent) *Report {
	r := &Report{
		ByClass:   map[string]int{},
		ByChannel: map[string]int{},
		DropOff:   map[string]int{},
	}
	sessions := map[string]*sessionState{}
	var order []string

	for _, e := range events {
		if e.Session == "" {
			continue
		}
		if !e.Time.IsZero() {
			if r.First.IsZero() || e.Time.Before(r.First) {
				r.First = e.Time
			}
			if e.Time.After(r.Last) {
				r.Last = e.Time
			}
		}

		s, ok := sessions[e.Session]
		if !ok {
			s = &sessionState{}
			sessions[e.Session] = s
			order = append(order, e.Session)
		}

		switch e.Event {
		case log.EventSessionStarted:
			r.ByChannel[e.Channel]++
		case log.EventHandoff:
			// Repeated handoffs of one session count once.
			if !s.handoff {
				s.handoff = true
				r.Handoffs++
				r.Participants += e.Participants
				r.ByClass[e.ClassType]++
			}
		case log.EventFlowReset:
			r.Resets++
		}
		if e.Step != "" {
			s.lastStep = e.Step
		}
	}

	r.Sessions = len(order)
	for _, id := range order {
		s := sessions[id]
		if s.handoff {
			continue
		}
		r.Abandoned++
		step := s.lastStep
		if step == "" {
			step = "choose_class_type"
		}
		r.DropOff[step]++
	}
	return r
}

// Conversion returns the share of sessions that reached the handoff.
func (r *Report) Conversion() float64 {
	if r.Sessions == 0 {
		return 0
	}
	return float64(r.Handoffs) / float64(r.Sessions)
}

// FormatReport produces a terminal-friendly, human-readable summary string.
func FormatReport(r *Report) string {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString("  Intake Report\n")
	b.WriteString("========================================\n")
	b.WriteString("\n")

	if !r.First.IsZero() {
		fmt.Fprintf(&b, "Period:      %s to %s\n", r.First.Format("2006-01-02 15:04"), r.Last.Format("2006-01-02 15:04"))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Sessions:    %d\n", r.Sessions)
	fmt.Fprintf(&b, "  Handoffs:  %d (%.0f%%)\n", r.Handoffs, r.Conversion()*100)
	fmt.Fprintf(&b, "  Abandoned: %d\n", r.Abandoned)
	fmt.Fprintf(&b, "  Resets:    %d\n", r.Resets)
	if r.Participants > 0 {
		fmt.Fprintf(&b, "People:      %d\n", r.Participants)
	}
	b.WriteString("\n")

	writeCounts(&b, "By class:", r.ByClass)
	writeCounts(&b, "By channel:", r.ByChannel)
	writeCounts(&b, "Stopped at:", r.DropOff)

	b.WriteString("========================================\n")

	return b.String()
}

// writeCounts prints counts sorted by descending value, then key.
func writeCounts(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, c string) int {
		if counts[a] != counts[c] {
			return counts[c] - counts[a]
		}
		return strings.Compare(a, c)
	})

	b.WriteString(title + "\n")
	for _, k := range keys {
		name := k
		if name == "" {
			name = "(unknown)"
		}
		fmt.Fprintf(b, "  %-20s %d\n", name, counts[k])
	}
	b.WriteString("\n")
}
