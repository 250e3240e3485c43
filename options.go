package tetracull

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/solarlune/tetracull/log"
)

// WorldOptions controls how a World maintains its BVH and answers visibility queries.
type WorldOptions struct {
	// UseBVH selects whether Cull() walks the BVH (true) or tests every mesh node in turn (false). Defaults to true.
	UseBVH bool `toml:"use_bvh"`
	// AlwaysRebuild makes UpdateBVH() rebuild the tree from scratch every time rather than refitting it when the set of entities
	// hasn't changed. Refitting is faster, but the tree's quality degrades as entities move far from where they were at build time.
	AlwaysRebuild bool `toml:"always_rebuild"`
	// LogLevel is the verbosity to set the log package to when the options are applied with Apply(). An empty LogLevel leaves
	// the current verbosity alone.
	LogLevel string `toml:"log_level"`
}

// DefaultWorldOptions creates an instance of WorldOptions with some sensible defaults.
func DefaultWorldOptions() WorldOptions {
	return WorldOptions{
		UseBVH: true,
	}
}

// ParseWorldOptions reads WorldOptions from TOML data. Fields absent from the data keep their default values.
func ParseWorldOptions(data []byte) (WorldOptions, error) {

	options := DefaultWorldOptions()

	if err := toml.Unmarshal(data, &options); err != nil {
		return options, fmt.Errorf("parsing world options: %w", err)
	}

	if options.LogLevel != "" {
		if _, err := log.ParseLevel(options.LogLevel); err != nil {
			return options, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
	}

	return options, nil

}

// LoadWorldOptions reads WorldOptions from the TOML file at the path given.
func LoadWorldOptions(path string) (WorldOptions, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return DefaultWorldOptions(), fmt.Errorf("loading world options: %w", err)
	}

	return ParseWorldOptions(data)

}

// Marshal returns the WorldOptions encoded as TOML.
func (options WorldOptions) Marshal() ([]byte, error) {
	return toml.Marshal(options)
}

// Apply applies the process-wide settings held in the WorldOptions (currently only the log level).
func (options WorldOptions) Apply() {
	if options.LogLevel == "" {
		return
	}
	if level, err := log.ParseLevel(options.LogLevel); err == nil {
		log.SetLevel(level)
	}
}
