package models

// Settings mirrors the optional configuration file. Every field may be left
// empty, in which case environment variables and built-in defaults apply.
type Settings struct {
	HydraURL    string `yaml:"hydraUrl"`
	Project     string `yaml:"project"`
	Jobset      string `yaml:"jobset"`
	Input       string `yaml:"input"`
	HistoryFile string `yaml:"historyFile"`
}
