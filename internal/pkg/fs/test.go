package fs

import (
	"os"
	"time"
)

type MockFileInfo struct {
	IsDirValue bool
}

func (m MockFileInfo) IsDir() bool        { return m.IsDirValue }
func (m MockFileInfo) ModTime() time.Time { return time.Now() }
func (m MockFileInfo) Mode() os.FileMode  { return 0 }
func (m MockFileInfo) Name() string       { return "" }
func (m MockFileInfo) Size() int64        { return 1 }
func (m MockFileInfo) Sys() interface{}   { return nil }

// MockFS keeps written files in memory. Stat and Open answer from Info and
// Err only.
type MockFS struct {
	Info  MockFileInfo
	Err   error
	Files map[string][]byte
	Dirs  []string
}

func NewMockFS() *MockFS {
	return &MockFS{Files: make(map[string][]byte)}
}

func (fs *MockFS) Open(name string) (*os.File, error)    { return nil, fs.Err }
func (fs *MockFS) Stat(name string) (os.FileInfo, error) { return fs.Info, fs.Err }
func (fs *MockFS) Getwd() (string, error)                { return "", fs.Err }

func (fs *MockFS) ReadFile(name string) ([]byte, error) {
	if fs.Err != nil {
		return nil, fs.Err
	}

	data, ok := fs.Files[name]
	if !ok {
		return nil, os.ErrNotExist
	}

	return data, nil
}

func (fs *MockFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	if fs.Err != nil {
		return fs.Err
	}

	fs.Files[name] = data
	return nil
}

func (fs *MockFS) MkdirAll(path string, perm os.FileMode) error {
	if fs.Err != nil {
		return fs.Err
	}

	fs.Dirs = append(fs.Dirs, path)
	return nil
}
