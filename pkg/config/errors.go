package config

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when the config file extension is neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ConfigError reports a config source that could not be read or is malformed.
// It is fatal: the panel never starts with a partially loaded config.
type ConfigError struct {
	// Source identifies the config source, usually the file path.
	Source string
	// Section is the offending section name, empty when the error is not section specific.
	Section string
	// Err is the underlying cause.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("config %s: section %q: %v", e.Source, e.Section, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// sectionError 构造带配置节信息的错误
// Source 由 Load 在返回前统一填充
func sectionError(section string, format string, args ...any) *ConfigError {
	return &ConfigError{Section: section, Err: fmt.Errorf(format, args...)}
}

// withSource 为错误补充配置来源；非 ConfigError 会被包装成 ConfigError
func withSource(source string, err error) error {
	if err == nil {
		return nil
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		if cfgErr.Source == "" {
			cfgErr.Source = source
		}
		return cfgErr
	}
	return &ConfigError{Source: source, Err: err}
}
