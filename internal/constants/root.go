package constants

const (
	AppName            = "famcal"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/famcal"
	DefaultConfigFile  = "config.yaml"
	DefaultDBFile      = "famcal.db"
	DefaultJSONFile    = "famcal.json"
	Version            = "v0.1.0"

	// EnvDBConnection holds a PostgreSQL connection string and takes
	// precedence over the keyring.
	EnvDBConnection = "FAMCAL_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat combines DateFormat and TimeFormat
	DateTimeFormat = "2006-01-02 15:04"

	// Storage backends
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageJSON     = "json"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "famcal-"
	BackupFileSuffix = ".db"

	// LogDirName and LogFileName locate the rotating log under the config directory
	LogDirName  = "logs"
	LogFileName = "famcal.log"
)
