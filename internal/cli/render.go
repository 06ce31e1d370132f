package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/billtrack/internal/digest"
	"github.com/ppiankov/billtrack/internal/model"
)

var (
	// Adaptive colors for dark/light terminals
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	idStyle = lipgloss.NewStyle().
		Foreground(colorDim)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	stateStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// stateBadges renders the local flags of a bill, e.g. "★ liked · subscribed".
func stateBadges(b model.BillRecord) string {
	var parts []string
	switch {
	case b.IsLiked:
		parts = append(parts, "★ liked")
	case b.IsDisliked:
		parts = append(parts, "✗ disliked")
	}
	if b.IsSubscribed {
		parts = append(parts, "subscribed")
	}
	return strings.Join(parts, " · ")
}

// billDates returns the display dates, deriving placeholders when the record
// carries none.
func billDates(b model.BillRecord, now time.Time) (introduced, updated time.Time) {
	pi, pu := model.PseudoDates(b.ID, now)
	introduced, updated = pi, pu
	if b.DateIntroduced != nil {
		introduced = b.DateIntroduced.Time
	}
	if b.LastUpdated != nil {
		updated = b.LastUpdated.Time
	}
	return introduced, updated
}

func renderBillLine(w io.Writer, b model.BillRecord) {
	line := fmt.Sprintf("%s  %s", idStyle.Render(b.ID), titleStyle.Render(b.Title))
	if badges := stateBadges(b); badges != "" {
		line += "  " + stateStyle.Render(badges)
	}
	fmt.Fprintln(w, line)
}

func renderBillList(w io.Writer, heading string, bills []model.BillRecord) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d)", heading, len(bills))))
	for _, b := range bills {
		renderBillLine(w, b)
	}
}

func renderBillDetail(w io.Writer, b model.BillRecord, now time.Time) {
	introduced, updated := billDates(b, now)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(b.Title))
	sb.WriteString("\n")
	sb.WriteString(metaStyle.Render(fmt.Sprintf("%s · sponsor: %s", b.ID, orDash(b.Sponsor))))
	sb.WriteString("\n")
	sb.WriteString(metaStyle.Render(fmt.Sprintf("introduced %s · updated %s",
		introduced.Format("Jan 2, 2006"), updated.Format("Jan 2, 2006"))))
	if b.LatestAction != nil && *b.LatestAction != "" {
		sb.WriteString("\n")
		sb.WriteString(metaStyle.Render("latest action: " + *b.LatestAction))
	}
	if badges := stateBadges(b); badges != "" {
		sb.WriteString("\n")
		sb.WriteString(stateStyle.Render(badges))
	}
	if summary := digest.PlainText(b.Summary); summary != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().Width(76).Render(summary))
	}

	fmt.Fprintln(w, panelStyle.Render(sb.String()))
}

func renderNotification(w io.Writer, n digest.Notification) {
	fmt.Fprintln(w, headerStyle.Render(n.Title))
	if n.Empty() {
		fmt.Fprintln(w, metaStyle.Render("Nothing new to report."))
		return
	}
	for _, e := range n.Entries {
		fmt.Fprintf(w, "• %s  %s\n", titleStyle.Render(e.Title), idStyle.Render(e.BillID))
		if e.Excerpt != "" {
			fmt.Fprintf(w, "  %s\n", metaStyle.Render(e.Excerpt))
		}
	}
}

func renderProfile(w io.Writer, p model.UserProfile) {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(metaStyle.Render(fmt.Sprintf("%s · age %d · %s", p.ID, p.Age, orDash(p.Location))))
	if p.Occupation != nil && *p.Occupation != "" {
		sb.WriteString("\n")
		sb.WriteString(metaStyle.Render("occupation: " + *p.Occupation))
	}
	sb.WriteString("\n")
	sb.WriteString("interests: " + orDash(strings.Join(p.Interests, ", ")))
	sb.WriteString(fmt.Sprintf("\nfriends: %d · subscriptions: %d", len(p.Friends), len(p.Subscriptions)))
	fmt.Fprintln(w, panelStyle.Render(sb.String()))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
