package storage

// APIRecord represents one extracted API signature (function or class).
type APIRecord struct {
	ID         int64
	Name       string
	Docstring  string
	Parameters string // JSON-encoded parameter list
	ReturnType string
	FilePath   string
}

// EnvVariable represents one environment variable declared by the repository.
type EnvVariable struct {
	ID           int64
	Name         string
	Description  string
	IsRequired   bool
	DefaultValue string
}
