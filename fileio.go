package nconf

import "os"

// FileReader is the sole I/O capability the import resolver needs,
// injected rather than hard-coded so callers can test import resolution
// against an in-memory file source.
type FileReader interface {
	ReadFile(path string) (string, error)
}

// osFileReader is the default FileReader, backed by the OS filesystem.
type osFileReader struct{}

func (osFileReader) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
