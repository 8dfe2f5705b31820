package status

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// Configuration
	GlobalConfigPath   string
	GlobalConfigExists bool
	ConfigFiles        []string
	ConfigValid        bool
	ConfigErrors       []string

	// Effective settings
	Prompt      string
	ContPrompt  string
	AppName     string
	LogLevel    string
	Words       int
	Greeting    bool

	// History
	HistoryFile   string
	HistoryExists bool
	HistorySize   int64
	HistoryLimit  int
}
