// Package stamp persists a resolved version.Info to a JSON file that builds
// can embed, and detects when that file no longer matches the repository.
package stamp

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/gitstamp/internal/version"
)

const schemaURL = "https://github.com/andyballingall/gitstamp/stamp.schema.json"

//go:embed stamp.schema.json
var schemaData []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err = c.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// Write stores info at path, replacing any existing file atomically.
func Write(path string, info version.Info) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".gitstamp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	//nolint:gosec // stamp files are meant to be world readable
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Read loads and validates the stamp file at path.
func Read(path string) (version.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return version.Info{}, err
	}

	if !gjson.ValidBytes(data) {
		return version.Info{}, &InvalidStampError{Path: path, Reason: "not valid JSON"}
	}

	sch, err := compileSchema()
	if err != nil {
		return version.Info{}, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return version.Info{}, &InvalidStampError{Path: path, Reason: err.Error()}
	}
	if vErr := sch.Validate(doc); vErr != nil {
		return version.Info{}, &InvalidStampError{Path: path, Reason: vErr.Error()}
	}

	fields := gjson.GetManyBytes(data, "version", "commit", "dirty")
	return version.Info{
		Version: fields[0].String(),
		Commit:  fields[1].String(),
		Dirty:   fields[2].Bool(),
	}, nil
}

// Check compares the stamp file at path with current. It returns a
// *StaleStampError when the stored version or commit differ.
func Check(path string, current version.Info) error {
	stored, err := Read(path)
	if err != nil {
		return err
	}
	if stored.Version != current.Version || stored.Commit != current.Commit {
		return &StaleStampError{Path: path, Stored: stored, Current: current}
	}
	return nil
}
