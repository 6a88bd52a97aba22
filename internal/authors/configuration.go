package authors

import (
	"strings"
)

const (
	defaultRootConstant              = "."
	defaultMinimumConfidenceConstant = 60
	defaultIncludeStatisticsConstant = true
	rootsConfigurationKeyConstant    = "roots"
	minimumConfidenceKeyConstant     = "min_confidence"
	formatConfigurationKeyConstant   = "format"
	statsConfigurationKeyConstant    = "stats"
	preferHumanKeyConstant           = "prefer_human_canonical"
	mailmapPathKeyConstant           = "mailmap_path"
	mailmapModeKeyConstant           = "mailmap_mode"
	configurationKeySeparator        = "."
)

// CommandConfiguration captures persistent settings for the authors command.
type CommandConfiguration struct {
	Roots                []string `mapstructure:"roots"`
	MinimumConfidence    int      `mapstructure:"min_confidence"`
	Format               string   `mapstructure:"format"`
	Stats                bool     `mapstructure:"stats"`
	PreferHumanCanonical bool     `mapstructure:"prefer_human_canonical"`
	MailmapPath          string   `mapstructure:"mailmap_path"`
	MailmapMode          string   `mapstructure:"mailmap_mode"`
}

// DefaultCommandConfiguration returns baseline configuration values for the authors command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:                []string{defaultRootConstant},
		MinimumConfidence:    defaultMinimumConfidenceConstant,
		Format:               string(ReportFormatTable),
		Stats:                defaultIncludeStatisticsConstant,
		PreferHumanCanonical: false,
		MailmapPath:          "",
		MailmapMode:          string(MailmapModeAppend),
	}
}

// DefaultConfigurationValues exposes the defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		joinConfigurationKey(prefix, rootsConfigurationKeyConstant):  defaults.Roots,
		joinConfigurationKey(prefix, minimumConfidenceKeyConstant):   defaults.MinimumConfidence,
		joinConfigurationKey(prefix, formatConfigurationKeyConstant): defaults.Format,
		joinConfigurationKey(prefix, statsConfigurationKeyConstant):  defaults.Stats,
		joinConfigurationKey(prefix, preferHumanKeyConstant):         defaults.PreferHumanCanonical,
		joinConfigurationKey(prefix, mailmapPathKeyConstant):         defaults.MailmapPath,
		joinConfigurationKey(prefix, mailmapModeKeyConstant):         defaults.MailmapMode,
	}
}

// sanitize trims whitespace and drops blank roots without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Roots = sanitizeRoots(configuration.Roots)
	sanitized.Format = strings.TrimSpace(configuration.Format)
	sanitized.MailmapPath = strings.TrimSpace(configuration.MailmapPath)
	sanitized.MailmapMode = strings.TrimSpace(configuration.MailmapMode)

	return sanitized
}

func sanitizeRoots(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

func joinConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparator + key
}
