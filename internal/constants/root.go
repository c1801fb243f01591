package constants

const (
	AppName            = "readtrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/readtrack/readtrack.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the calendar-month prefix format (YYYY-MM)
	MonthFormat = "2006-01"

	// MaxBatchOps is the per-commit operation limit of the document store.
	// The import orchestrator never puts more than this many writes in one batch.
	MaxBatchOps = 500

	// RecentLogLimit is the number of entries shown by `log recent`
	RecentLogLimit = 10

	// InProgressLimit is the number of next-up achievements shown
	InProgressLimit = 3

	// PreviewLimit is the number of parsed records shown in a dry run
	PreviewLimit = 5
)
