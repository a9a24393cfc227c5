package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./catalog.db"

	// DefaultUploadFolder is where uploaded cover images are stored
	DefaultUploadFolder = "./static/pic"

	// DefaultPageSize is the number of books shown per catalog page
	DefaultPageSize = 21
)
