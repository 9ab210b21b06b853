package config

const (
	defaultScanCSV      = "~/.local/share/scanmatch/scan-id.csv"
	defaultContactsDB   = "~/.local/share/scanmatch/contacts.db"
	defaultLogDir       = "~/.local/share/scanmatch/logs"
	defaultPollInterval = 2000
	defaultPageSize     = 50
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScanCSV:    defaultScanCSV,
			ContactsDB: defaultContactsDB,
			LogDir:     defaultLogDir,
		},
		Watcher: Watcher{
			PollInterval: defaultPollInterval,
		},
		Search: Search{
			PageSize: defaultPageSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
