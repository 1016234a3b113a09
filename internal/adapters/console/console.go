package console

import (
	"io"
	"sync"
	"time"

	"github.com/gookit/color"

	"lottery/internal/domain"
	"lottery/internal/domain/entities"
	"lottery/internal/ports/output"
)

var _ output.Notifier = (*Console)(nil)

// Console writes operator-facing text. Writes from the input loop and the
// countdown are serialised so progress lines never tear a reply.
type Console struct {
	out        io.Writer
	translator output.T
	locale     string
	colour     bool
	mu         sync.Mutex
}

func New(out io.Writer, translator output.T, locale string, colour bool) *Console {
	return &Console{out: out, translator: translator, locale: locale, colour: colour}
}

func (c *Console) t(key string, data map[string]any) string {
	return c.translator.T(c.locale, key, data)
}

func (c *Console) print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, s)
}

func wholeSeconds(d time.Duration) int {
	return int(d / time.Second)
}

func (c *Console) Welcome(window time.Duration) {
	c.print(c.t("welcome", nil) + "\n" +
		c.t("welcome_instructions", map[string]any{"Seconds": wholeSeconds(window)}) + "\n")
}

func (c *Console) Prompt() {
	c.print("\n" + c.t("prompt", nil))
}

// Reply prints the outcome of a registration attempt.
func (c *Console) Reply(msg string, err error) {
	if c.colour {
		if err != nil {
			msg = color.FgRed.Render(msg)
		} else {
			msg = color.FgGreen.Render(msg)
		}
	}
	c.print(msg + "\n")
}

func (c *Console) Progress(phase domain.Phase, remaining time.Duration, participants int) {
	key := "progress_primary"
	if phase == domain.PhaseExtension {
		key = "progress_extension"
	}
	c.print("\r" + c.t(key, map[string]any{
		"Seconds": wholeSeconds(remaining),
		"Count":   participants,
	}))
}

func (c *Console) ExtensionStarted(window time.Duration, minParticipants int) {
	c.print("\n" + c.t("extension_started", map[string]any{
		"Min":     minParticipants,
		"Seconds": wholeSeconds(window),
	}) + "\n")
}

func (c *Console) RegistrationClosed() {
	c.print("\n\n" + c.t("registration_closed_notice", nil) + "\n")
}

func (c *Console) LotteryCancelled() {
	c.print("\n" + c.t("lottery_cancelled", nil) + "\n")
}

func (c *Console) Interrupted() {
	c.print("\n\n" + c.t("interrupted", nil) + "\n")
}

// Message prints a catalogue message on its own line.
func (c *Console) Message(key string) {
	c.print(c.t(key, nil) + "\n")
}

func (c *Console) Announce(d *entities.Draw) {
	text := FormatAnnouncement(d)
	if c.colour {
		text = color.Bold.Render(text)
	}
	c.print(text)
}
