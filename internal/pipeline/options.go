package pipeline

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures how CodegenProcessor lowers a Module, loaded from
// an optional YAML sidecar the driver points at — the same ambient-config
// shape as the teacher's own project config loading (funvibe-funxy reads
// lib/yaml at runtime for script-facing decode/encode; here the same
// library backs the driver-facing config instead).
type Options struct {
	// TargetTriple overrides the LLVM module's target triple (e.g.
	// "x86_64-unknown-linux-gnu"); empty leaves llir/llvm's default.
	TargetTriple string `yaml:"targetTriple"`
}

// DefaultOptions returns the options a Context uses when the driver
// supplies no sidecar file.
func DefaultOptions() *Options {
	return &Options{}
}

// LoadOptions reads and parses a YAML options sidecar from path.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, err
	}
	return opts, nil
}
