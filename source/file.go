package source

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	goPermit "github.com/MrEthical07/goPermit"
)

// FileSource loads a configuration from a JSON, JSONC, or YAML file. The
// format is chosen by extension: .json and .jsonc (comments and trailing
// commas allowed), .yaml and .yml.
type FileSource struct {
	path string
	fs   afero.Fs
}

// FileOption configures a [FileSource].
type FileOption func(*FileSource)

// WithFs substitutes the filesystem, typically afero.NewMemMapFs in tests.
// The default is the OS filesystem.
func WithFs(fs afero.Fs) FileOption {
	return func(s *FileSource) {
		s.fs = fs
	}
}

// NewFileSource creates a source reading from path.
func NewFileSource(path string, opts ...FileOption) *FileSource {
	s := &FileSource{
		path: path,
		fs:   afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path the source reads from.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads and decodes the file.
func (s *FileSource) Load() (goPermit.Config, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return goPermit.Config{}, fmt.Errorf("read config %s: %w", s.path, err)
	}

	var cfg goPermit.Config

	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return goPermit.Config{}, fmt.Errorf("decode config %s: %w", s.path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return goPermit.Config{}, fmt.Errorf("decode config %s: %w", s.path, err)
		}
	default:
		return goPermit.Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return cfg, nil
}
