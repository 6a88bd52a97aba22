package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	pathutils "github.com/temirov/gitaudit/internal/utils/path"
)

const (
	configurationKeySeparatorConstant      = "."
	environmentKeySeparatorConstant        = "_"
	listValueSeparatorConstant             = ","
	embeddedMergeErrorTemplateConstant     = "failed to merge embedded configuration: %w"
	configurationReadErrorTemplateConstant = "failed to read configuration: %w"
	configurationDecodeErrorTemplate       = "failed to parse configuration: %w"
)

// ConfigurationLoader layers configuration sources with Viper. In increasing
// precedence: default values, the embedded configuration, the first
// configuration file found (an explicit path or the search paths), and
// environment variables named PREFIX_SECTION_KEY.
type ConfigurationLoader struct {
	configurationName     string
	configurationType     string
	environmentPrefix     string
	searchPaths           []string
	homeExpander          *pathutils.HomeExpander
	embeddedConfiguration []byte
	embeddedType          string
}

// LoadedConfiguration describes where the configuration came from.
type LoadedConfiguration struct {
	// ConfigFileUsed is empty when only defaults, embedded data and the environment applied.
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader; search paths may start with "~".
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	homeExpander := pathutils.NewHomeExpander()
	loader := &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		homeExpander:      homeExpander,
	}
	for _, searchPath := range searchPaths {
		if trimmedPath := strings.TrimSpace(searchPath); len(trimmedPath) > 0 {
			loader.searchPaths = append(loader.searchPaths, homeExpander.Expand(trimmedPath))
		}
	}
	return loader
}

// SetEmbeddedConfiguration registers built-in configuration merged beneath files and environment.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}
	loader.embeddedConfiguration = bytes.Clone(configurationData)
	loader.embeddedType = strings.TrimSpace(configurationType)
}

// LoadConfiguration decodes all sources into targetConfiguration. An explicit
// configurationFilePath must exist; the search paths are optional. Comma
// separated environment values decode into string slices.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if mergeError := loader.mergeEmbeddedConfiguration(viperInstance); mergeError != nil {
		return LoadedConfiguration{}, mergeError
	}
	if readError := loader.mergeConfigurationFile(viperInstance, configurationFilePath); readError != nil {
		return LoadedConfiguration{}, readError
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(configurationKeySeparatorConstant, environmentKeySeparatorConstant))
	viperInstance.AutomaticEnv()

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(listValueSeparatorConstant),
	))
	if decodeError := viperInstance.Unmarshal(targetConfiguration, decodeHook); decodeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplate, decodeError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

func (loader *ConfigurationLoader) mergeEmbeddedConfiguration(viperInstance *viper.Viper) error {
	if len(loader.embeddedConfiguration) == 0 {
		return nil
	}
	embeddedType := loader.configurationType
	if len(loader.embeddedType) > 0 {
		embeddedType = loader.embeddedType
	}
	viperInstance.SetConfigType(embeddedType)
	if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration)); mergeError != nil {
		return fmt.Errorf(embeddedMergeErrorTemplateConstant, mergeError)
	}
	return nil
}

func (loader *ConfigurationLoader) mergeConfigurationFile(viperInstance *viper.Viper, configurationFilePath string) error {
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)
	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}
	if explicitPath := strings.TrimSpace(configurationFilePath); len(explicitPath) > 0 {
		viperInstance.SetConfigFile(loader.homeExpander.Expand(explicitPath))
	}

	readError := viperInstance.MergeInConfig()
	var notFoundError viper.ConfigFileNotFoundError
	if readError == nil || errors.As(readError, &notFoundError) {
		return nil
	}
	return fmt.Errorf(configurationReadErrorTemplateConstant, readError)
}
