package version

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Format selects how Render prints an Info.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatEnv     Format = "env"
	FormatLDFlags Format = "ldflags"
	FormatTable   Format = "table"
)

// SupportedFormats lists the accepted output formats.
var SupportedFormats = []Format{FormatText, FormatJSON, FormatEnv, FormatLDFlags, FormatTable}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range SupportedFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", &UnknownFormatError{Value: s}
}

// LDFlags names the package-qualified variables targeted by FormatLDFlags.
type LDFlags struct {
	VersionVar string
	CommitVar  string
}

// Render writes info to w in the given format.
func Render(w io.Writer, info Info, f Format, ld LDFlags) error {
	switch f {
	case FormatText, "":
		_, err := fmt.Fprintln(w, info.String())
		return err

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)

	case FormatEnv:
		_, err := fmt.Fprintf(w, "VERSION=%s\nCOMMIT=%s\nDIRTY=%t\n",
			shellQuote(info.Version), shellQuote(info.Commit), info.Dirty)
		return err

	case FormatLDFlags:
		_, err := fmt.Fprintln(w, LDFlagsString(info, ld))
		return err

	case FormatTable:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Version", "Commit", "Dirty"})
		t.AppendRow(table.Row{info.Version, info.Commit, info.Dirty})
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil

	default:
		return &UnknownFormatError{Value: string(f)}
	}
}

// LDFlagsString returns the -X assignments for 'go build -ldflags'.
func LDFlagsString(info Info, ld LDFlags) string {
	return fmt.Sprintf("-X %s=%s -X %s=%s", ld.VersionVar, info.Version, ld.CommitVar, info.Commit)
}

// shellQuote single-quotes s when it contains anything a POSIX shell would
// interpret, so env output can be sourced safely.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r == '.' || r == '-' || r == '_' || r == '/' || r == '+' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// UnknownFormatError is returned for an unsupported output format.
type UnknownFormatError struct {
	Value string
}

func (e *UnknownFormatError) Error() string {
	names := make([]string, len(SupportedFormats))
	for i, f := range SupportedFormats {
		names[i] = strconv.Quote(string(f))
	}
	return fmt.Sprintf("unknown format '%s': must be one of %s", e.Value, strings.Join(names, ", "))
}
