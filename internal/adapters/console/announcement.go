package console

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"lottery/internal/domain/entities"
)

const bannerWidth = 50

// FormatAnnouncement renders the results block shown after a draw.
func FormatAnnouncement(d *entities.Draw) string {
	stars := strings.Repeat("*", bannerWidth)
	dashes := strings.Repeat("-", bannerWidth)

	lines := []string{
		"",
		stars,
		center("LOTTERY RESULTS", bannerWidth),
		stars,
		"Total Participants: " + strconv.Itoa(len(d.Participants)),
		"Participants: " + strings.Join(d.Participants, ", "),
		dashes,
		center("WINNER:", bannerWidth),
		center(d.Winner, bannerWidth),
		stars,
	}
	return strings.Join(lines, "\n") + "\n"
}

// center pads s with spaces to width. When the padding is odd the extra space
// goes left only if width is odd as well, which keeps columns aligned with the
// historical output.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	margin := width - n
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
}
