package manifest

import (
	"github.com/quantmind-br/ucmpurge/internal/utils"
)

// Loader loads manifest files from disk
type Loader struct{}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load verifies the file is a readable non-empty regular file and returns its lines
func (l *Loader) Load(path string) ([]string, error) {
	if err := utils.CheckFile(path); err != nil {
		return nil, err
	}

	text, err := utils.ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(text), nil
}
