package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_install.yaml
var defaultInstall []byte

// PluginInfo is the identity block of the install settings.
type PluginInfo struct {
	Name        string `yaml:"name" json:"name"`
	ShortName   string `yaml:"short_name" json:"short_name"`
	Description string `yaml:"description" json:"description"`
	Version     string `yaml:"version" json:"version"`
	HostVersion string `yaml:"host_version" json:"host_version"`
}

// JournalSetting is a default applied to every imported journal that
// does not set it explicitly.
type JournalSetting struct {
	Group string `yaml:"group"`
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// CustomField is a journal-level custom metadata field provisioned on import.
type CustomField struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Order    int    `yaml:"order"`
	HelpText string `yaml:"help_text"`
	Required bool   `yaml:"required"`
}

// Install is the settings document consumed when the transporter is installed
// against a host database.
type Install struct {
	Plugin          PluginInfo       `yaml:"plugin"`
	JournalSettings []JournalSetting `yaml:"journal_settings"`
	CustomFields    []CustomField    `yaml:"custom_fields"`
}

// LoadInstall parses the install settings at path, or the embedded defaults
// when path is empty.
func LoadInstall(path string) (*Install, error) {
	data := defaultInstall
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read install settings: %w", err)
		}
		data = raw
	}
	return ParseInstall(data)
}

// ParseInstall decodes an install settings document.
func ParseInstall(data []byte) (*Install, error) {
	var inst Install
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("failed to parse install settings: %w", err)
	}
	if inst.Plugin.ShortName == "" {
		return nil, fmt.Errorf("install settings: plugin.short_name is required")
	}
	for i, f := range inst.CustomFields {
		if f.Name == "" {
			return nil, fmt.Errorf("install settings: custom_fields[%d] has no name", i)
		}
		if f.Kind == "" {
			inst.CustomFields[i].Kind = "text"
		}
	}
	return &inst, nil
}
