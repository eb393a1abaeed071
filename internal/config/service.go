package config

import "github.com/wekeepgrowing/gov-budget-request-form/pkg/logger"

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	ClientURL   string `yaml:"client_url"`
}

type StorageConfig struct {
	// UploadDir is the root directory for attachment bytes.
	UploadDir string `yaml:"upload_dir"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	FilePath    string `yaml:"file_path"`
	Development bool   `yaml:"development"`
}

// Logger converts the section into a logger.Config.
func (c LogConfig) Logger() logger.Config {
	return logger.Config{
		Level:       c.Level,
		Format:      c.Format,
		Output:      c.Output,
		FilePath:    c.FilePath,
		Development: c.Development,
	}
}

type PolicyConfig struct {
	// StrictMetadata forbids request metadata edits once a request leaves
	// the editable statuses.
	StrictMetadata bool `yaml:"strict_metadata"`
}
