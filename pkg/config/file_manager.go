package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/convert"
	"github.com/htekdev/azure-ai-foundry-starter-sub001/pkg/osutil"
)

// ErrNotFound is returned when the configuration file does not exist at the
// requested path.
var ErrNotFound = errors.New("configuration file not found")

// FileManager loads, parses and saves starter configuration files.
type FileManager struct {
	clock clock.Clock
}

func NewFileManager() *FileManager {
	return &FileManager{clock: clock.New()}
}

// NewFileManagerWithClock is used by tests to control the backup and
// lastModified timestamps.
func NewFileManagerWithClock(clk clock.Clock) *FileManager {
	return &FileManager{clock: clk}
}

// Load reads and parses the configuration document, applying defaults for
// unset fields. A missing file returns ErrNotFound rather than a raw fs error
// so callers can distinguish "not initialized" from "unreadable".
func (m *FileManager) Load(filePath string) (*DeploymentConfig, error) {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}

	var cfg DeploymentConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %w", filePath, err)
	}

	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the whole configuration document back to disk, refreshing the
// lastModified timestamp. When the file already exists a timestamped .backup
// sibling is written first.
func (m *FileManager) Save(cfg *DeploymentConfig, filePath string) error {
	if err := m.backup(filePath); err != nil {
		return err
	}

	cfg.Metadata.SchemaVersion = SchemaVersion
	cfg.Metadata.LastModified = m.clock.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filePath, data, osutil.PermissionFile); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}

	return nil
}

// SetValue mutates a single leaf of the configuration document addressed by a
// dotted path (e.g. azure.location) and saves the result.
func (m *FileManager) SetValue(filePath string, path string, value string) error {
	cfg, err := m.Load(filePath)
	if err != nil {
		return err
	}

	doc, err := convert.ToMap(cfg)
	if err != nil {
		return fmt.Errorf("reshaping configuration: %w", err)
	}

	if err := setPath(doc, path, value); err != nil {
		return err
	}

	reshaped, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	var updated DeploymentConfig
	if err := json.Unmarshal(reshaped, &updated); err != nil {
		return fmt.Errorf("configuration path %s does not fit the schema: %w", path, err)
	}

	return m.Save(&updated, filePath)
}

func (m *FileManager) backup(filePath string) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading configuration file for backup: %w", err)
	}

	backupPath := fmt.Sprintf("%s.backup-%s", filePath, m.clock.Now().UTC().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, data, osutil.PermissionFile); err != nil {
		return fmt.Errorf("writing configuration backup: %w", err)
	}

	return nil
}

func setPath(doc map[string]any, path string, value string) error {
	keys := splitPath(path)
	if len(keys) == 0 {
		return fmt.Errorf("empty configuration path")
	}

	current := doc
	for _, key := range keys[:len(keys)-1] {
		child, ok := current[key].(map[string]any)
		if !ok {
			child = map[string]any{}
			current[key] = child
		}
		current = child
	}

	current[keys[len(keys)-1]] = value
	return nil
}

func splitPath(path string) []string {
	var keys []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if i > start {
				keys = append(keys, path[start:i])
			}
			start = i + 1
		}
	}
	return keys
}
