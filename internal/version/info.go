// Package version resolves a repository's release version and commit and
// renders them for consumption by build tooling.
package version

// Info is the result of resolving a repository.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Dirty   bool   `json:"dirty"`
}

// String returns "<version> <commit>", the form typically embedded in a
// program's --version output.
func (i Info) String() string {
	return i.Version + " " + i.Commit
}
