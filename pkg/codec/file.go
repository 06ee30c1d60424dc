package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"prioq/pkg/util/log"
)

// Save writes v to path in the given format. The content goes to a temporary
// file in the same directory which then replaces path, so a failed save
// leaves any previous file intact.
func Save(path string, v any, format Format) error {
	data, err := Marshal(v, format)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".prioq-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file error: %v", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file error: %v", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file error: %v", err)
	}
	log.Debug("saved %d bytes to %s as %s", len(data), path, format)
	return nil
}

// Load reads path into v, inferring the format from the file extension.
func Load(path string, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	return LoadFormat(path, v, format)
}

func LoadFormat(path string, v any, format Format) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	log.Debug("loading %d bytes from %s as %s", len(data), path, format)
	return Unmarshal(data, v, format)
}
