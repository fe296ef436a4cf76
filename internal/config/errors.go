package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

type InvalidYAMLError struct {
	Wrapped error
	Path    string
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not a valid yaml document: %v", e.Path, e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error {
	return e.Wrapped
}

type InvalidTagSortError struct {
	Value     string
	Supported []TagSort
}

func (e *InvalidTagSortError) Error() string {
	return fmt.Sprintf("config property tagSort has invalid value '%s'. Supported values are: %v", e.Value, e.Supported)
}

type InvalidTimeoutError struct {
	Wrapped error
	Value   string
}

func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("config property timeout has invalid duration '%s': %v", e.Value, e.Wrapped)
}

type InvalidLDFlagsVarError struct {
	Property string
	Value    string
}

func (e *InvalidLDFlagsVarError) Error() string {
	return fmt.Sprintf(
		"config property %s has invalid value '%s': expected a package-qualified variable such as main.version",
		e.Property,
		e.Value,
	)
}
