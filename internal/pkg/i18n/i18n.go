package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

const fallbackLocale = "en"

type Translations map[string]string

var (
	locales       = make(map[string]Translations)
	defaultLocale = fallbackLocale
	mu            sync.RWMutex
	loadOnce      sync.Once
)

// LoadTranslations reads every <locale>.yaml in fsys. Later calls merge over
// earlier ones.
func LoadTranslations(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".yaml")

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return err
		}

		var file struct {
			Notifications Translations `yaml:"NOTIFICATIONS"`
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}

		if locales[locale] == nil {
			locales[locale] = make(Translations)
		}
		for k, v := range file.Notifications {
			locales[locale][k] = v
		}
	}

	return nil
}

func ensureLoaded() {
	loadOnce.Do(func() {
		sub, err := fs.Sub(embedded, "locales")
		if err != nil {
			panic(err)
		}
		if err := LoadTranslations(sub); err != nil {
			panic(err)
		}
	})
}

// SetDefaultLocale picks the locale used by T. Unknown locales fall back to en.
func SetDefaultLocale(locale string) {
	ensureLoaded()

	mu.Lock()
	defer mu.Unlock()
	if _, ok := locales[locale]; ok {
		defaultLocale = locale
	} else {
		defaultLocale = fallbackLocale
	}
}

func DefaultLocale() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLocale
}

func Translate(locale, key string) string {
	if val, ok := lookup(locale, key); ok {
		return val
	}
	return key
}

func lookup(locale, key string) (string, bool) {
	ensureLoaded()

	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val, true
		}
	}

	if locale != fallbackLocale {
		if val, ok := locales[fallbackLocale][key]; ok {
			return val, true
		}
	}

	return "", false
}

// T formats the message for key in the default locale. Unknown keys are
// returned as-is and never used as a format.
func T(key string, args ...interface{}) string {
	format, ok := lookup(DefaultLocale(), key)
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
