package notes

import "github.com/goliatone/go-notes/internal/runtimeconfig"

var (
	ErrServerAddressRequired  = runtimeconfig.ErrServerAddressRequired
	ErrServerAddressInvalid   = runtimeconfig.ErrServerAddressInvalid
	ErrServerTimeoutInvalid   = runtimeconfig.ErrServerTimeoutInvalid
	ErrDocumentsRootRequired  = runtimeconfig.ErrDocumentsRootRequired
	ErrStaticIndexRequired    = runtimeconfig.ErrStaticIndexRequired
	ErrStaticIndexInvalid     = runtimeconfig.ErrStaticIndexInvalid
	ErrManifestOutputRequired = runtimeconfig.ErrManifestOutputRequired
	ErrMetricsPathInvalid     = runtimeconfig.ErrMetricsPathInvalid
	ErrMetricsPathReserved    = runtimeconfig.ErrMetricsPathReserved
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ServerConfig    = runtimeconfig.ServerConfig
	DocumentsConfig = runtimeconfig.DocumentsConfig
	StaticConfig    = runtimeconfig.StaticConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	ManifestConfig  = runtimeconfig.ManifestConfig
	MetricsConfig   = runtimeconfig.MetricsConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
