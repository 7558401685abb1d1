package physics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadJSON loads a scene from JSON reader.
func LoadJSON(r io.Reader) (*SceneConfig, error) {
	var c SceneConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML loads a scene from YAML reader.
func LoadYAML(r io.Reader) (*SceneConfig, error) {
	var c SceneConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile picks the decoder from the file extension: .json, or .yaml / .yml.
func LoadFile(path string) (*SceneConfig, error) {
	var load func(io.Reader) (*SceneConfig, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		load = LoadJSON
	case ".yaml", ".yml":
		load = LoadYAML
	default:
		return nil, fmt.Errorf("%w: unsupported scene file extension %q", ErrInvalidConfig, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}
