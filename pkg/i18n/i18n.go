// Package i18n renders user-visible messages in the deployment language.
package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{language.Azerbaijani, language.English, language.Russian}

var matcher = language.NewMatcher(supported)

var (
	mu      sync.RWMutex
	current = language.Azerbaijani
	printer = message.NewPrinter(language.Azerbaijani)
)

// SetLanguage switches the deployment language. Only az, en and ru are accepted.
func SetLanguage(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("i18n: parse language %q: %w", lang, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return fmt.Errorf("i18n: unsupported language %q", lang)
	}

	mu.Lock()
	current = supported[idx]
	printer = message.NewPrinter(current)
	mu.Unlock()
	return nil
}

// Lang returns the base code of the deployment language ("az", "en" or "ru").
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	base, _ := current.Base()
	return base.String()
}

// T renders key with args. Unknown keys are rendered as the key itself.
func T(key string, args ...any) string {
	mu.RLock()
	p := printer
	mu.RUnlock()
	return p.Sprintf(key, args...)
}

// In renders key in an explicit language regardless of the deployment setting.
func In(lang, key string, args ...any) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return T(key, args...)
	}
	_, idx, _ := matcher.Match(tag)
	return message.NewPrinter(supported[idx]).Sprintf(key, args...)
}
