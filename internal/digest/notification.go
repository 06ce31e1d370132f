package digest

import (
	"fmt"
	"strings"

	"github.com/ppiankov/billtrack/internal/model"
)

// Kind is the digest cadence.
type Kind string

const (
	Daily  Kind = "daily"
	Weekly Kind = "weekly"
)

// ParseKind accepts "daily" or "weekly".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Daily, Weekly:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown digest cadence %q", model.ErrConfiguration, s)
	}
}

// ID is the stable notification identifier; a new digest of the same kind
// replaces the previous one.
func (k Kind) ID() string {
	return string(k) + "-digest"
}

// Title is the notification headline.
func (k Kind) Title() string {
	if k == Weekly {
		return "Weekly Congress Roundup"
	}
	return "Today in Congress"
}

// Entry is one bill in a digest.
type Entry struct {
	BillID  string
	Title   string
	Excerpt string
}

// Notification is the rendered digest content.
type Notification struct {
	ID      string
	Kind    Kind
	Title   string
	Body    string
	Entries []Entry
}

// Empty reports whether the digest has nothing to announce.
func (n Notification) Empty() bool {
	return len(n.Entries) == 0
}

// Build selects the digest bills and renders the notification. The body has
// one "• title" line per bill.
func Build(kind Kind, candidates []model.BillRecord, interests []string, maxCount int) Notification {
	selected := Select(candidates, interests, maxCount)

	n := Notification{
		ID:      kind.ID(),
		Kind:    kind,
		Title:   kind.Title(),
		Entries: make([]Entry, 0, len(selected)),
	}

	lines := make([]string, 0, len(selected))
	for _, b := range selected {
		title := PlainText(b.Title)
		lines = append(lines, "• "+title)
		n.Entries = append(n.Entries, Entry{
			BillID:  b.ID,
			Title:   title,
			Excerpt: Excerpt(PlainText(b.Summary), 160),
		})
	}
	n.Body = strings.Join(lines, "\n")
	return n
}
