package production

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/fsmx"
)

// ParseConfig decodes a config document. Documents starting with '{' are
// read as JSON, anything else as YAML. Unknown fields are rejected at every
// level. An empty document yields fsmx.ErrConfigMissing.
func ParseConfig(data []byte) (*fsmx.Config, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document: %w", fsmx.ErrConfigMissing)
	}
	if trimmed[0] == '{' {
		return parseJSON(trimmed)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (*fsmx.Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg fsmx.Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("json decode: unexpected data after config")
	}
	return &cfg, nil
}

func parseYAML(data []byte) (*fsmx.Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg fsmx.Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document: %w", fsmx.ErrConfigMissing)
		}
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return &cfg, nil
}

// Load reads a whole config document from r and parses it with ParseConfig.
func Load(r io.Reader) (*fsmx.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// LoadFile reads a config from path. Files ending in .json are always parsed
// as JSON. A missing file wraps os.ErrNotExist.
func LoadFile(path string) (*fsmx.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config %q: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg *fsmx.Config
	if isJSON(path) && len(bytes.TrimSpace(data)) > 0 {
		cfg, err = parseJSON(data)
	} else {
		cfg, err = ParseConfig(data)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// SaveFile writes cfg to path, creating parent directories. Files ending in
// .json are written as JSON, anything else as YAML.
func SaveFile(path string, cfg *fsmx.Config) error {
	if cfg == nil {
		return fsmx.ErrConfigMissing
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
