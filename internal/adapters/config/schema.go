package config

// Masqfile represents the structure of the masq.yaml configuration file.
type Masqfile struct {
	Version        string `yaml:"version"`
	Root           string `yaml:"root"`
	Input          string `yaml:"input"`
	Output         string `yaml:"output"`
	DomainPattern  string `yaml:"domainPattern"`
	ProblemPattern string `yaml:"problemPattern"`
	Workers        *int   `yaml:"workers"`
	LogFormat      string `yaml:"logFormat"`
}
