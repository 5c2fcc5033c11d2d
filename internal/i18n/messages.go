package i18n

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_messages.yaml
var defaultMessagesYAML []byte

// DefaultLanguage is consulted when a key is missing in the requested language.
const DefaultLanguage = "en"

// Translator resolves an opaque key to display text.
type Translator interface {
	Translate(key string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key string) string

func (f TranslatorFunc) Translate(key string) string { return f(key) }

// Messages holds display strings per language.
type Messages struct {
	byLang map[string]map[string]string
}

// Default returns the messages compiled into the binary.
func Default() *Messages {
	m, err := Parse(defaultMessagesYAML)
	if err != nil {
		panic(err)
	}
	return m
}

// Parse reads a YAML document of the form {lang: {key: text}}.
func Parse(data []byte) (*Messages, error) {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse messages: %w", err)
	}
	m := &Messages{byLang: make(map[string]map[string]string, len(doc))}
	m.Merge(doc)
	return m, nil
}

// LoadInto merges the YAML file at path over m.
func (m *Messages) LoadInto(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read messages: %w", err)
	}
	extra, err := Parse(data)
	if err != nil {
		return err
	}
	m.Merge(extra.byLang)
	return nil
}

// Merge overlays doc on top of the existing messages.
func (m *Messages) Merge(doc map[string]map[string]string) {
	for lang, entries := range doc {
		lang = normalize(lang)
		if m.byLang[lang] == nil {
			m.byLang[lang] = make(map[string]string, len(entries))
		}
		for key, text := range entries {
			m.byLang[lang][key] = text
		}
	}
}

// For binds a language. Lookups fall back to the base language, then
// DefaultLanguage, then the key itself.
func (m *Messages) For(lang string) Translator {
	chain := fallbackChain(normalize(lang))
	return TranslatorFunc(func(key string) string {
		for _, l := range chain {
			if text, ok := m.byLang[l][key]; ok {
				return text
			}
		}
		return key
	})
}

func fallbackChain(lang string) []string {
	chain := make([]string, 0, 3)
	if lang != "" {
		chain = append(chain, lang)
		if base, _, ok := strings.Cut(lang, "-"); ok {
			chain = append(chain, base)
		}
	}
	if lang != DefaultLanguage {
		chain = append(chain, DefaultLanguage)
	}
	return chain
}

func normalize(lang string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), "_", "-"))
}
