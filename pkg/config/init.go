package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigTemplate = `# actionctl configuration file
server:
  namespace: /fibonacci
  pub_queue_size: 50
  sub_queue_size: 0
  status_frequency_hz: 5.0
  status_list_timeout: 5s

logging:
  level: INFO
  format: text
  output: stdout

telemetry:
  enabled: false
  endpoint: localhost:4317
  insecure: true
  sample_rate: 1.0
  profiling:
    enabled: false
    endpoint: http://localhost:4040

metrics:
  enabled: false
  port: 9090

debug_api:
  enabled: false
  port: 8088

shutdown_timeout: 30s
`

// InitConfig writes a commented default config file to the default
// location, returning the path written. It fails if a file already
// exists there unless force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a commented default config file to path,
// failing if it already exists unless force is set.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
