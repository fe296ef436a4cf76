package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFile is looked up in the repository directory when no explicit path is given.
	ConfigFile = ".gitstamp.yml"
	// ConfigEnvVar names an explicit config file path.
	ConfigEnvVar = "GITSTAMP_CONFIG"

	DefaultTimeout    = 10 * time.Second
	DefaultVersionVar = "main.version"
	DefaultCommitVar  = "main.commit"
	DefaultStampFile  = "version.json"
)

const DefaultConfigContent = `# gitstamp configuration

# TAG ORDERING
#
# Which tag counts as "latest" is the last line of 'git tag' output. By default
# gitstamp leaves the ordering to git (and so to your tag.sort setting).
# - git          git's own ordering (Default)
# - version      'git tag --sort=v:refname', treats tag names as versions
# - creatordate  'git tag --sort=creatordate', most recently created tag wins
tagSort: git

# Maximum time a single git invocation may take.
timeout: 10s

# Also report whether the working tree has uncommitted changes.
detectDirty: false

# Package-qualified variables set by 'gitstamp resolve --format ldflags'.
ldflags:
  versionVar: main.version
  commitVar: main.commit

# File written by 'gitstamp write' and read by 'gitstamp check'.
stampFile: version.json
`

// TagSort selects how 'git tag' orders its output.
type TagSort string

const (
	TagSortGit         TagSort = "git"
	TagSortVersion     TagSort = "version"
	TagSortCreatorDate TagSort = "creatordate"
)

// SupportedTagSorts lists the accepted tagSort values.
var SupportedTagSorts = []TagSort{TagSortGit, TagSortVersion, TagSortCreatorDate}

type LDFlagsConfig struct {
	VersionVar string `yaml:"versionVar"`
	CommitVar  string `yaml:"commitVar"`
}

type Config struct {
	TagSort     TagSort       `yaml:"tagSort"`
	RawTimeout  string        `yaml:"timeout"`
	DetectDirty bool          `yaml:"detectDirty"`
	LDFlags     LDFlagsConfig `yaml:"ldflags"`
	StampFile   string        `yaml:"stampFile"`
	Timeout     time.Duration `yaml:"-"` // parsed from RawTimeout by Validate.
	Path        string        `yaml:"-"` // file the config was read from, empty for defaults.
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	c := &Config{}
	// Validate only fills defaults on an empty config.
	_ = c.Validate()
	return c
}

// New reads the config file at path. When required is false a missing file
// yields the defaults rather than a *MissingConfigError.
func New(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if required {
				return nil, &MissingConfigError{Path: path}
			}
			return Default(), nil
		}
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}

	if vErr := config.Validate(); vErr != nil {
		return nil, vErr
	}
	config.Path = path

	return &config, nil
}

// Locate picks the config file path. An explicit path (from a flag) wins over
// the environment, which wins over the file in dir. The bool reports whether
// the path was requested explicitly and must therefore exist.
func Locate(explicit, fromEnv, dir string) (string, bool) {
	switch {
	case explicit != "":
		return explicit, true
	case fromEnv != "":
		return fromEnv, true
	default:
		return filepath.Join(dir, ConfigFile), false
	}
}

// Validate fills in defaults and checks every property.
func (c *Config) Validate() error {
	if c.TagSort == "" {
		c.TagSort = TagSortGit
	}
	if !c.TagSort.IsValid() {
		return &InvalidTagSortError{Value: string(c.TagSort), Supported: SupportedTagSorts}
	}

	c.Timeout = DefaultTimeout
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err != nil {
			return &InvalidTimeoutError{Value: c.RawTimeout, Wrapped: err}
		}
		if d < 0 {
			return &InvalidTimeoutError{Value: c.RawTimeout, Wrapped: fmt.Errorf("must not be negative")}
		}
		c.Timeout = d
	}

	if c.LDFlags.VersionVar == "" {
		c.LDFlags.VersionVar = DefaultVersionVar
	}
	if c.LDFlags.CommitVar == "" {
		c.LDFlags.CommitVar = DefaultCommitVar
	}
	if err := validateVarName("ldflags.versionVar", c.LDFlags.VersionVar); err != nil {
		return err
	}
	if err := validateVarName("ldflags.commitVar", c.LDFlags.CommitVar); err != nil {
		return err
	}

	if c.StampFile == "" {
		c.StampFile = DefaultStampFile
	}

	return nil
}

func (s TagSort) IsValid() bool {
	for _, v := range SupportedTagSorts {
		if s == v {
			return true
		}
	}
	return false
}

// validateVarName requires an import-path-qualified name such as main.version
// or github.com/org/app/internal/app.Version, as accepted by 'go build -ldflags -X'.
func validateVarName(prop, val string) error {
	i := strings.LastIndex(val, ".")
	if i <= 0 || i == len(val)-1 || strings.ContainsAny(val, " \t=") {
		return &InvalidLDFlagsVarError{Property: prop, Value: val}
	}
	return nil
}
