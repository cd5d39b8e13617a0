package config

// NewCatalogForTest creates a Catalog config pointing at path
func NewCatalogForTest(path string) *Catalog {
	return &Catalog{path: path}
}

// NewOutputForTest creates an Output config for target
func NewOutputForTest(target string) *Output {
	return &Output{target: target}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewFixtureForTest creates a Fixture config pointing at path
func NewFixtureForTest(path string) *Fixture {
	return &Fixture{path: path}
}

// NewRepositoryForTest creates a Repository config for the backend
func NewRepositoryForTest(backend string) *Repository {
	return &Repository{backend: backend}
}
