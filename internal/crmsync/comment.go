package crmsync

import (
	"strings"

	"github.com/kreditline/leadbridge/internal/intake"
)

// DealComment builds the free-text comment attached to a deal: a header
// naming the lead source, followed by the UTM block when any mark is set.
func DealComment(leadSource string, utm intake.UTM) string {
	var b strings.Builder
	b.WriteString("Источник заявки: ")
	b.WriteString(leadSource)
	b.WriteString("\n\n")

	var labels []string
	if utm.Source != "" {
		labels = append(labels, "Source: "+utm.Source)
	}
	if utm.Medium != "" {
		labels = append(labels, "Medium: "+utm.Medium)
	}
	if utm.Campaign != "" {
		labels = append(labels, "Campaign: "+utm.Campaign)
	}
	if utm.Content != "" {
		labels = append(labels, "Content: "+utm.Content)
	}
	if utm.Term != "" {
		labels = append(labels, "Term: "+utm.Term)
	}

	if len(labels) > 0 {
		b.WriteString("=== UTM МЕТКИ ===\n")
		b.WriteString(strings.Join(labels, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}
