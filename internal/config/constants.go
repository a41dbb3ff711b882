package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./library.db"

	// DefaultTasksDatabaseName is used for the task queue when the main store is not a SQLite file
	DefaultTasksDatabaseName = "library-tasks.db"

	// DefaultPageLimit is applied when a list request has no limit parameter
	DefaultPageLimit = 100
)
