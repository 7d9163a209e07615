package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadError is a recoverable per-file configuration error: an unreadable
// or malformed source. The loader always logs and skips the file; only in
// strict mode does Load also return the first such error as a hard failure.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// readTOMLFile parses a TOML file into a generic map. A missing file is
// not an error here — callers check existence first via os.Stat so that
// "file not present" and "file present but malformed" are distinguished.
func readTOMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return raw, nil
}
