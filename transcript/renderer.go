// Package transcript renders normalized entries into the downloadable
// transcript document and derives its participant-based naming.
package transcript

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"chat-archive/domain"
	"chat-archive/errors"

	"github.com/samber/lo"
)

const dateLayout = "2 January 2006"

// Render builds the transcript document for a non-empty entry list.
// The caller must not invoke a download when there is nothing to
// render; an empty list returns errors.ErrEmptyTranscript.
//
// The author of the first entry is considered the customer. Every
// other distinct named author except the concierge is an agent, in
// first-seen order.
func Render(entries []domain.TranscriptEntry) (domain.RenderedTranscript, error) {
	if len(entries) == 0 {
		return domain.RenderedTranscript{}, errors.ErrEmptyTranscript
	}

	customer := entries[0].DisplayAuthor
	agents := agentNames(entries, customer)

	title := "Conversation with " + customer
	stem := "chat with " + customer
	for _, agent := range agents {
		title += " and " + agent
		stem += " and " + agent
	}

	startDate := entries[0].At.Format(dateLayout)
	span := entries[len(entries)-1].At.Sub(entries[0].At)

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(startDate + "\n")
	b.WriteString("Duration: " + formatSpan(span) + "\n")
	for _, e := range entries {
		b.WriteString("\n" + entryLine(e, customer) + "\n")
	}

	return domain.RenderedTranscript{
		Title:    title,
		Text:     b.String(),
		FileStem: Slugify(stem + "-" + startDate),
	}, nil
}

func agentNames(entries []domain.TranscriptEntry, customer string) []string {
	named := lo.FilterMap(entries, func(e domain.TranscriptEntry, _ int) (string, bool) {
		name := e.DisplayAuthor
		keep := e.HasAuthor() && name != customer && name != domain.ConciergeAuthor
		return name, keep
	})
	return lo.Uniq(named)
}

// entryLine formats one message line. Only the customer gets the "*"
// bullet; the concierge and agents get "+". When a message carries
// attachments only the first filename is surfaced in the marker.
func entryLine(e domain.TranscriptEntry, customer string) string {
	bullet := "+"
	if e.DisplayAuthor == customer {
		bullet = "*"
	}
	line := fmt.Sprintf("%s %s  ", bullet, e.At.Format("15:04"))
	if e.HasAuthor() {
		line += e.DisplayAuthor + ": "
	}
	line += e.Body
	if len(e.Media) > 0 {
		line += fmt.Sprintf(" (** Attached file %s **)", e.Media[0].Filename)
	}
	return line
}

// formatSpan renders the first-to-last delta at the coarsest unit that
// fits. Negative spans are clamped to zero.
func formatSpan(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return plural(int(d.Seconds()), "second")
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	default:
		return plural(int(d.Hours()), "hour")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Slugify lowers the input and collapses every run of non-alphanumeric
// characters into a single separator, with no leading or trailing one.
func Slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
