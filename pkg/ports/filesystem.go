package ports

// FileSystem abstracts the file access the CLI and orchestrator need.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories.
	// Readers never observe a partially written file.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Glob returns the files matching pattern, sorted by name.
	// A pattern without meta characters matches itself if it exists.
	Glob(pattern string) ([]string, error)
}
