package llm

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/ppiankov/billtrack/internal/model"
)

// OfflineProvider answers from the bill record itself using keyword rules.
// It never leaves the process and is always available.
type OfflineProvider struct{}

// NewOfflineProvider creates the canned responder.
func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

// Name returns the provider name
func (p *OfflineProvider) Name() string {
	return "offline"
}

// IsAvailable always reports true
func (p *OfflineProvider) IsAvailable(context.Context) bool {
	return true
}

// Ask picks a canned reply from the question's keywords.
func (p *OfflineProvider) Ask(ctx context.Context, bill *model.BillRecord, question string) (*Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(question)
	var text string
	if bill != nil {
		text = aboutBill(*bill, q)
	} else {
		text = general(q)
	}
	return &Answer{Text: text, Model: p.Name()}, nil
}

// Compare lists the two bills side by side.
func (p *OfflineProvider) Compare(ctx context.Context, a, b model.BillRecord) (*Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Comparison between %q and %q:\n", a.Title, b.Title)
	fmt.Fprintf(&sb, "\nTitles:\n- Bill 1: %s\n- Bill 2: %s\n", a.Title, b.Title)
	fmt.Fprintf(&sb, "\nSponsors:\n- Bill 1: %s\n- Bill 2: %s\n", a.Sponsor, b.Sponsor)
	fmt.Fprintf(&sb, "\nSummary:\n- Bill 1: %s\n- Bill 2: %s\n", a.Summary, b.Summary)
	fmt.Fprintf(&sb, "\nFull Text Excerpt Differences (first 100 chars):\n- Bill 1: %s\n- Bill 2: %s",
		fullTextPrefix(a, 100), fullTextPrefix(b, 100))

	return &Answer{Text: sb.String(), Model: p.Name()}, nil
}

func aboutBill(b model.BillRecord, q string) string {
	switch {
	case containsAny(q, "what is", "summary"):
		return fmt.Sprintf("The %s is %s", b.Title, b.Summary)
	case containsAny(q, "who sponsor", "who introduced"):
		return fmt.Sprintf("The bill was sponsored by %s.", b.Sponsor)
	case containsAny(q, "when", "date"):
		if b.DateIntroduced == nil {
			return "The bill's introduction date is not available."
		}
		return fmt.Sprintf("The bill was introduced on %s.", b.DateIntroduced.Format("Jan 2, 2006"))
	case containsAny(q, "democrat", "republican", "party"):
		if b.RelevanceScore == nil {
			return "Relevance score is not available for this bill."
		}
		score := *b.RelevanceScore
		party := "Republican"
		if score > 0 {
			party = "Democratic"
		}
		strength := "somewhat"
		if math.Abs(score) > 0.7 {
			strength = "strongly"
		}
		return fmt.Sprintf("This bill is %s aligned with %s values, with a relevance score of %.2f.", strength, party, score)
	default:
		return fmt.Sprintf("I don't have specific information about that aspect of the %s. "+
			"Would you like to know about its summary, sponsor, or introduction date?", b.Title)
	}
}

func general(q string) string {
	words := strings.FieldsFunc(q, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	})
	switch {
	case strings.Contains(q, "hello") || slices.Contains(words, "hi"):
		return "Hello! I can help you understand U.S. bills and legislation. Is there a specific bill you'd like to discuss?"
	case strings.Contains(q, "how are you"):
		return "I'm just a digital assistant, but I'm ready to help you understand legislation! What would you like to know?"
	case containsAny(q, "what can you do", "help"):
		return "I can help you understand U.S. bills and legislation. You can ask me about specific bills, " +
			"their summaries, sponsors, or other details. Pass --bill with a bill id to ask about one."
	case containsAny(q, "bill", "legislation"):
		return "I'd be happy to discuss bills and legislation with you. To provide specific information, " +
			"I'll need to know which bill you're interested in. Run 'billtrack bills list' to browse them."
	default:
		return "I'm designed to help with questions about U.S. legislation and bills. " +
			"If you have a specific bill in mind, I can provide information about it."
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func fullTextPrefix(b model.BillRecord, n int) string {
	if b.FullText == nil || *b.FullText == "" {
		return "N/A"
	}
	r := []rune(*b.FullText)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
