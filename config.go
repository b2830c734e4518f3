package notionmd

import "github.com/mikecat1024/notion-to-markdown/internal/runtimeconfig"

var (
	ErrNotionTokenRequired    = runtimeconfig.ErrNotionTokenRequired
	ErrNotionBaseURLRequired  = runtimeconfig.ErrNotionBaseURLRequired
	ErrPageSizeInvalid        = runtimeconfig.ErrPageSizeInvalid
	ErrRetryIntervalInvalid   = runtimeconfig.ErrRetryIntervalInvalid
	ErrTimeoutInvalid         = runtimeconfig.ErrTimeoutInvalid
	ErrLinkTargetInvalid      = runtimeconfig.ErrLinkTargetInvalid
	ErrTableWidthInvalid      = runtimeconfig.ErrTableWidthInvalid
	ErrExportFormatInvalid    = runtimeconfig.ErrExportFormatInvalid
	ErrOutputDirRequired      = runtimeconfig.ErrOutputDirRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	NotionConfig  = runtimeconfig.NotionConfig
	RenderConfig  = runtimeconfig.RenderConfig
	ExportConfig  = runtimeconfig.ExportConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
