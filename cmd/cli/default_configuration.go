package cli

import (
	"bytes"
	_ "embed"
)

// default_config.yaml mirrors ApplicationConfiguration and authors.DefaultCommandConfiguration.
//
//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in configuration and its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(embeddedDefaultConfigurationContent), configurationTypeConstant
}
