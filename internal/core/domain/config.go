package domain

import "runtime"

// Log formats accepted by Config.LogFormat.
const (
	LogFormatAuto   = "auto"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Config holds the resolved settings of a run.
type Config struct {
	// Root is the directory the relative paths below are resolved against.
	Root           string
	Input          string
	Output         string
	DomainPattern  string
	ProblemPattern string
	Workers        int
	LogFormat      string
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:           root,
		Input:          DefaultInputDir,
		Output:         DefaultOutputDir,
		DomainPattern:  DefaultDomainPattern,
		ProblemPattern: DefaultProblemPattern,
		Workers:        runtime.NumCPU(),
		LogFormat:      LogFormatAuto,
	}
}
