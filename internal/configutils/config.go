package configutils

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"entq/internal/pkg/fs"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigDir       = "~/.config/entq"
	LocalConfigName = ".entqcfg"

	DefaultNotificationTimeout = 5 * time.Second
)

type FlagSet interface {
	GetString(string) (string, error)
	GetBool(string) (bool, error)
}

type configMerger interface {
	MergeConfig(io.Reader) error
}

var (
	ErrHomeDirNotFound = errors.New("unable to determine the home directory")
	ErrConfigFileIsDir = errors.New("configuration file is a directory")
)

var filetypes = []string{"yaml", "json", "toml"}

var mergeConfig = func(in io.Reader, cm configMerger) error {
	return cm.MergeConfig(in)
}

var fileExists = func(filename string, fsys fs.Filesystem) error {
	info, err := fsys.Stat(filename)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return ErrConfigFileIsDir
	}

	return nil
}

var loadFile = func(filename string, fsys fs.Filesystem) (io.ReadCloser, error) {
	err := fileExists(filename, fsys)
	if err != nil {
		return nil, err
	}

	f, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}

	return f, nil
}

var loadConfig = func(filename string, v *viper.Viper) error {
	f, err := loadFile(filename, fs.OS{})
	if err != nil {
		return err
	}
	defer f.Close()

	return mergeConfig(f, v)
}

var getConfigDir = func() (string, error) {
	return homedir.Expand(ConfigDir)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.notificationTimeout", DefaultNotificationTimeout)
	v.SetDefault("general.useNerdFontIcons", false)
	v.SetDefault("log.level", "warn")
}

// mergeAnyType merges the first of filename's candidate encodings that
// parses. Returns the last error when none did.
func mergeAnyType(v *viper.Viper, filename string) error {
	var err error
	for _, ft := range filetypes {
		v.SetConfigType(ft)
		err = loadConfig(filename, v)
		if err == nil {
			return nil
		}
		log.Debug().
			Msgf("config loading of %s failed for type %s, skipping to next filetype", filename, ft)
	}

	return err
}

// DefaultConfig reads config.{yaml,json,toml} from the entq config
// directory. A missing file is not an error.
func DefaultConfig() (*viper.Viper, error) {
	cfgDir, err := getConfigDir()
	if err != nil {
		return nil, ErrHomeDirNotFound
	}

	v := viper.New()
	setDefaults(v)
	for _, ft := range filetypes {
		f := filepath.Join(cfgDir, fmt.Sprintf("config.%s", ft))
		if fileExists(f, fs.OS{}) != nil {
			continue
		}

		v.SetConfigType(ft)
		err = loadConfig(f, v)
		if err != nil {
			return nil, errors.Wrap(err, "could not load config")
		}

		return v, nil
	}

	return v, nil
}

// LoadGlobal builds the configuration from path, or from the default
// location when path is empty.
func LoadGlobal(path string) (*viper.Viper, error) {
	if path == "" {
		return DefaultConfig()
	}

	p, err := homedir.Expand(path)
	if err != nil {
		return nil, ErrHomeDirNotFound
	}

	v := viper.New()
	setDefaults(v)
	err = mergeAnyType(v, p)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load config %s", p)
	}

	return v, nil
}

func MergeLocalConfig(v *viper.Viper, dir string) error {
	f := filepath.Join(dir, LocalConfigName)
	if fileExists(f, fs.OS{}) != nil {
		return nil
	}

	return mergeAnyType(v, f)
}

func LoadConfigForPath(globalPath, dir string) (*viper.Viper, error) {
	v, err := LoadGlobal(globalPath)
	if err != nil {
		return nil, err
	}

	err = MergeLocalConfig(v, dir)
	if err != nil {
		return nil, errors.Wrap(err, "could not load local config")
	}

	return v, nil
}

func GetBoolFlagOrDefault(fs FlagSet, flag string, d bool) bool {
	v, err := fs.GetBool(flag)
	if err != nil {
		return d
	}

	return v
}

func GetStringFlagOrDefault(fs FlagSet, flag, d string) string {
	s, err := fs.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}
