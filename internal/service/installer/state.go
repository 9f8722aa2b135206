package installer

// Settings is what the wizard collects. Fields are strings so that an
// explicit "false" still lands in the .env file.
type Settings struct {
	DefaultMode     string `env:"ORAC_DEFAULT_MODE"`
	EnableTUI       string `env:"ORAC_ENABLE_TUI"`
	EnableTelegram  string `env:"ORAC_ENABLE_TELEGRAM"`
	EnableHTTP      string `env:"ORAC_ENABLE_HTTP"`
	TelegramToken   string `env:"ORAC_TELEGRAM_TOKEN"`
	TelegramOwnerID string `env:"ORAC_TELEGRAM_OWNER_ID"`
	HTTPAddr        string `env:"ORAC_HTTP_ADDR"`
	Debug           string `env:"ORAC_DEBUG"`
}

type InstallState struct {
	Settings Settings

	// Interfaces selected on the interface step
	Interfaces map[string]bool
}

func NewInstallState() *InstallState {
	return &InstallState{
		Interfaces: map[string]bool{InterfaceDashboard: true},
	}
}
