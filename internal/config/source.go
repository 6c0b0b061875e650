package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Source is a policy file that can be re-read on demand or whenever it
// changes on disk. Every read builds its own viper instance, so Load and
// Watch callbacks may run concurrently.
type Source struct {
	path string
}

// NewSource returns a Source for the YAML policy at path. An empty path
// yields a Source that always returns the defaults plus environment
// overrides.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the policy file path, empty for the built-in defaults.
func (s *Source) Path() string {
	return s.path
}

// Load reads the policy file again and decodes it on top of the defaults.
func (s *Source) Load() (*Configuration, error) {
	return LoadConfiguration(s.path)
}

// Watch calls onChange with the freshly loaded configuration, or the load
// error, every time the policy file is written. It is a no-op for a Source
// without a file.
func (s *Source) Watch(onChange func(*Configuration, error)) {
	if s.path == "" {
		return
	}
	// The watcher's own viper only signals changes and is never decoded.
	watcher := viper.New()
	watcher.SetConfigType("yaml")
	watcher.SetConfigFile(s.path)
	watcher.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		onChange(s.Load())
	})
	watcher.WatchConfig()
}

// LoadDotEnv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}
