package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

var (
	ErrContentRootRequired     = errors.New("newsroom config: content root is required")
	ErrDefaultLocaleRequired   = errors.New("newsroom config: default locale is required")
	ErrDefaultLocaleUnlisted   = errors.New("newsroom config: default locale must be one of the configured locales")
	ErrReadingSpeedInvalid     = errors.New("newsroom config: reading speed must be zero or positive")
	ErrCacheTTLInvalid         = errors.New("newsroom config: cache ttl must be zero or positive")
	ErrHTTPAddrRequired        = errors.New("newsroom config: http address is required")
	ErrSectionNameRequired     = errors.New("newsroom config: section name is required")
	ErrSectionNameDuplicate    = errors.New("newsroom config: section name is duplicated")
	ErrSectionAudienceEmpty    = errors.New("newsroom config: section audience is required")
	ErrLoggingProviderRequired = errors.New("newsroom config: logging provider is required")
	ErrLoggingProviderUnknown  = errors.New("newsroom config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("newsroom config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("newsroom config: logging format is invalid")
	ErrEnvironmentUnknown      = errors.New("newsroom config: environment is invalid")
	ErrRevalidateTimeout       = errors.New("newsroom config: revalidate timeout must be zero or positive")
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Config aggregates the runtime settings of the news site.
type Config struct {
	// Environment selects caching behaviour: the index is cached only in production.
	Environment   string
	ContentRoot   string
	DefaultLocale string
	Locales       []string
	// ReadingWPM is the words-per-minute rate used for reading time. Zero uses the default.
	ReadingWPM int
	Cache      CacheConfig
	Index      IndexConfig
	HTTP       HTTPConfig
	Markdown   interfaces.ParseOptions
	Sections   Sections
	Logging    LoggingConfig
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	// DefaultTTL bounds index cache entries. Zero keeps them until invalidated.
	DefaultTTL time.Duration
	// Components enables caching of rendered custom elements that declare a cache ttl.
	Components bool
}

// IndexConfig configures the content index cache tag.
type IndexConfig struct {
	Tag string
	// RevalidateTimeout bounds one revalidation. Zero uses the command default.
	RevalidateTimeout time.Duration
}

// HTTPConfig captures the HTTP listener settings.
type HTTPConfig struct {
	Addr string
	// RevalidateToken, when set, must be presented in the X-Revalidate-Token header.
	RevalidateToken string
}

// SectionConfig describes one audience landing page under /<locale>/news/<name>.
type SectionConfig struct {
	Name        string
	Title       string
	Description string
	Audience    string
	// EnglishOnly lists English articles regardless of the requested locale.
	EnglishOnly bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// IsProduction reports whether the index should be cached.
func (cfg Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(cfg.Environment), EnvironmentProduction)
}

// Sections is the ordered list of audience landing pages.
type Sections []SectionConfig

// Lookup returns the section configured under name, matched case-insensitively.
func (sections Sections) Lookup(name string) (SectionConfig, bool) {
	name = strings.TrimSpace(name)
	for _, section := range sections {
		if strings.EqualFold(section.Name, name) {
			return section, true
		}
	}
	return SectionConfig{}, false
}

// DefaultConfig returns defaults suitable for local development.
func DefaultConfig() Config {
	return Config{
		Environment:   EnvironmentDevelopment,
		ContentRoot:   "content",
		DefaultLocale: "en",
		Locales:       []string{"en"},
		ReadingWPM:    200,
		Cache: CacheConfig{
			Components: true,
		},
		Index: IndexConfig{
			Tag: "news-index",
		},
		HTTP: HTTPConfig{
			Addr: ":3000",
		},
		Markdown: interfaces.ParseOptions{
			Extensions: []string{"gfm"},
			SafeMode:   true,
		},
		Sections: Sections{
			{Name: "developers", Title: "Developers", Description: "Articles for developers.", Audience: "developers", EnglishOnly: true},
			{Name: "governance", Title: "Governance", Description: "Articles for governance.", Audience: "governance", EnglishOnly: true},
			{Name: "finance", Title: "Finance", Description: "Articles for finance.", Audience: "finance", EnglishOnly: true},
			{Name: "upgrades", Title: "Upgrades", Description: "Articles for upgrades.", Audience: "upgrades", EnglishOnly: true},
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(cfg.Environment)) {
	case "", EnvironmentDevelopment, EnvironmentProduction:
	default:
		return fmt.Errorf("%w: %s", ErrEnvironmentUnknown, cfg.Environment)
	}
	if strings.TrimSpace(cfg.ContentRoot) == "" {
		return ErrContentRootRequired
	}
	defaultLocale := strings.TrimSpace(cfg.DefaultLocale)
	if defaultLocale == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.Locales) > 0 && !containsFold(cfg.Locales, defaultLocale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnlisted, defaultLocale)
	}
	if cfg.ReadingWPM < 0 {
		return ErrReadingSpeedInvalid
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Index.RevalidateTimeout < 0 {
		return ErrRevalidateTimeout
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}

	seen := make(map[string]struct{}, len(cfg.Sections))
	for _, section := range cfg.Sections {
		name := strings.ToLower(strings.TrimSpace(section.Name))
		if name == "" {
			return ErrSectionNameRequired
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrSectionNameDuplicate, name)
		}
		seen[name] = struct{}{}
		if strings.TrimSpace(section.Audience) == "" {
			return fmt.Errorf("%w: %s", ErrSectionAudienceEmpty, name)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if provider != "gologger" {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
