package stamp

import (
	"fmt"

	"github.com/andyballingall/gitstamp/internal/version"
)

// InvalidStampError is returned when a stamp file is malformed.
type InvalidStampError struct {
	Path   string
	Reason string
}

func (e *InvalidStampError) Error() string {
	return fmt.Sprintf("stamp file %s is invalid: %s", e.Path, e.Reason)
}

// StaleStampError is returned when a stamp file does not match the repository.
type StaleStampError struct {
	Path    string
	Stored  version.Info
	Current version.Info
}

func (e *StaleStampError) Error() string {
	return fmt.Sprintf("stamp file %s is stale: has %s, repository is at %s", e.Path, e.Stored, e.Current)
}
