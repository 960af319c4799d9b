package persistance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entq/internal/pkg/fs"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/exp/slices"
)

const (
	StateFile  = "~/.config/entq/state"
	MaxVisited = 10
)

type AppInfo struct {
	ID          string    `json:"id"`
	Endpoint    string    `json:"endpoint"`
	LastVisited time.Time `json:"lastVisited"`
}

type state struct {
	Visited []*AppInfo `json:"visited,omitempty"`
}

type PersistanceRepo interface {
	AddVisited(appID string, endpoint string) error
	GetVisited() ([]*AppInfo, error)
}

var now = time.Now

// XDGPersistanceRepo keeps recently used applications in a JSON state file.
type XDGPersistanceRepo struct {
	fs   fs.Filesystem
	path string
	s    *state
}

func NewXDGPersistanceRepo(fsys fs.Filesystem, path string) *XDGPersistanceRepo {
	return &XDGPersistanceRepo{fs: fsys, path: path, s: &state{}}
}

func (repo *XDGPersistanceRepo) statePath() (string, error) {
	return homedir.Expand(repo.path)
}

func (repo *XDGPersistanceRepo) load() error {
	path, err := repo.statePath()
	if err != nil {
		return err
	}

	data, err := repo.fs.ReadFile(path)
	if os.IsNotExist(err) {
		repo.s = &state{}
		return nil
	}
	if err != nil {
		return err
	}

	s := &state{}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("cannot load state file: %v", err)
	}
	repo.s = s

	return nil
}

func (repo *XDGPersistanceRepo) save() error {
	path, err := repo.statePath()
	if err != nil {
		return err
	}

	if err := repo.fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(repo.s, "", "  ")
	if err != nil {
		return err
	}

	return repo.fs.WriteFile(path, data, 0644)
}

// GetVisited returns applications, most recently visited first.
func (repo *XDGPersistanceRepo) GetVisited() ([]*AppInfo, error) {
	if err := repo.load(); err != nil {
		return nil, err
	}

	return repo.s.Visited, nil
}

func (repo *XDGPersistanceRepo) AddVisited(appID string, endpoint string) error {
	if err := repo.load(); err != nil {
		return err
	}

	index := slices.IndexFunc(repo.s.Visited, func(v *AppInfo) bool {
		return v.ID == appID && v.Endpoint == endpoint
	})
	if index != -1 {
		repo.s.Visited = slices.Delete(repo.s.Visited, index, index+1)
	}

	repo.s.Visited = slices.Insert(repo.s.Visited, 0, &AppInfo{
		ID:          appID,
		Endpoint:    endpoint,
		LastVisited: now(),
	})
	if len(repo.s.Visited) > MaxVisited {
		repo.s.Visited = repo.s.Visited[:MaxVisited]
	}

	return repo.save()
}

var persistanceRepo PersistanceRepo = NewXDGPersistanceRepo(fs.OS{}, StateFile)

func GetRepo() PersistanceRepo {
	return persistanceRepo
}
