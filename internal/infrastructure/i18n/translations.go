package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"lottery/internal/ports/output"
)

//go:embed active.*.toml
var catalogueFS embed.FS

var _ output.T = (*Translator)(nil)

// Translator renders operator messages from the embedded catalogues.
type Translator struct {
	bundle   *i18n.Bundle
	fallback language.Tag
	logger   *slog.Logger
}

// NewTranslator loads every embedded catalogue and checks that locale has one.
// Messages missing from another locale fall back to it.
func NewTranslator(locale string, logger *slog.Logger) (*Translator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("i18n: invalid locale %q: %w", locale, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(catalogueFS, "active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("i18n: %w", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(catalogueFS, file); err != nil {
			return nil, fmt.Errorf("i18n: catalogue %s: %w", file, err)
		}
	}

	if !slices.Contains(bundle.LanguageTags(), tag) {
		return nil, fmt.Errorf("i18n: no catalogue for locale %q (have %v)", locale, bundle.LanguageTags())
	}

	return &Translator{bundle: bundle, fallback: tag, logger: logger}, nil
}

// Locales lists the languages a catalogue exists for.
func (t *Translator) Locales() []string {
	tags := t.bundle.LanguageTags()
	locales := make([]string, 0, len(tags))
	for _, tag := range tags {
		locales = append(locales, tag.String())
	}
	return locales
}

// T renders key for locale. Unknown locales use the fallback catalogue and an
// unknown key is returned as is.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	localizer := i18n.NewLocalizer(t.bundle, locale, t.fallback.String())
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Warn("i18n: localize failed", "key", key, "locale", locale, "error", err)
		return key
	}
	return msg
}
