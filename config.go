package newsroom

import "github.com/goliatone/go-newsroom/internal/runtimeconfig"

var (
	ErrContentRootRequired     = runtimeconfig.ErrContentRootRequired
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleUnlisted   = runtimeconfig.ErrDefaultLocaleUnlisted
	ErrReadingSpeedInvalid     = runtimeconfig.ErrReadingSpeedInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrHTTPAddrRequired        = runtimeconfig.ErrHTTPAddrRequired
	ErrSectionNameRequired     = runtimeconfig.ErrSectionNameRequired
	ErrSectionNameDuplicate    = runtimeconfig.ErrSectionNameDuplicate
	ErrSectionAudienceEmpty    = runtimeconfig.ErrSectionAudienceEmpty
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrEnvironmentUnknown      = runtimeconfig.ErrEnvironmentUnknown
	ErrRevalidateTimeout       = runtimeconfig.ErrRevalidateTimeout
)

const (
	EnvironmentDevelopment = runtimeconfig.EnvironmentDevelopment
	EnvironmentProduction  = runtimeconfig.EnvironmentProduction
)

type (
	Config        = runtimeconfig.Config
	CacheConfig   = runtimeconfig.CacheConfig
	IndexConfig   = runtimeconfig.IndexConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
	SectionConfig = runtimeconfig.SectionConfig
	Sections      = runtimeconfig.Sections
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
