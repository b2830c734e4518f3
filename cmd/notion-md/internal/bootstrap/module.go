package bootstrap

import (
	"fmt"

	notionmd "github.com/mikecat1024/notion-to-markdown"
	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

// Module bundles the converter with the CLI logger.
type Module struct {
	Module *notionmd.Module
	Logger interfaces.Logger
}

// BuildModule validates cfg and constructs the converter. With requireAPI set
// a Notion token must be configured.
func BuildModule(cfg notionmd.Config, requireAPI bool, opts ...notionmd.Option) (*Module, error) {
	validate := cfg.Validate
	if requireAPI {
		validate = cfg.ValidateForAPI
	}
	if err := validate(); err != nil {
		return nil, err
	}

	module, err := notionmd.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialise notion-md module: %w", err)
	}
	return &Module{
		Module: module,
		Logger: logging.CommandsLogger(module.Container().LoggerProvider()),
	}, nil
}
