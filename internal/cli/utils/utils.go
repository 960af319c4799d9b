package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"entq/internal/cli/paramutils"
	"entq/internal/configutils"
	"entq/internal/errcodes"
	"entq/internal/persistance"
	"entq/internal/systemcodes"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const DefaultLogFile = "~/.config/entq/entq.log"

type runCommandError func(*cobra.Command, []string) error
type runCommandNoError func(*cobra.Command, []string)

var exit = os.Exit

func ExitCode(err error) int {
	switch {
	case errors.Is(err, errcodes.ErrMissingServerURL),
		errors.Is(err, errcodes.ErrMissingServerToken),
		errors.Is(err, configutils.ErrConfigFileIsDir),
		errors.Is(err, configutils.ErrHomeDirNotFound):
		return systemcodes.ErrorCodeConfig
	case errors.Is(err, errcodes.ErrMissingApplication),
		errors.Is(err, errcodes.ErrMissingRepository),
		errors.Is(err, errcodes.ErrMissingDisplayName),
		errors.Is(err, errcodes.ErrRepositoryMustBeInFormOwnerRepo),
		errors.Is(err, errcodes.ErrUnknownSortDirection):
		return systemcodes.ErrorCodeUsage
	default:
		return systemcodes.ErrorCodeGeneric
	}
}

func RunCommandWrapper(fn runCommandError) runCommandNoError {
	return func(cmd *cobra.Command, args []string) {
		err := fn(cmd, args)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			exit(ExitCode(err))
		}
	}
}

var getWorkingDir = os.Getwd

// LoadConfig reads the global config (or --config) and merges the local
// config of the working directory on top.
func LoadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	path, _ := cmd.Flags().GetString("config")
	wd, err := getWorkingDir()
	if err != nil {
		return nil, err
	}

	return configutils.LoadConfigForPath(path, wd)
}

var openLogFile = func(path string) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// SetupLogging points zerolog and logrus at log.file. The terminal belongs
// to the TUI, so nothing is logged to stderr.
func SetupLogging(v *viper.Viper) error {
	path := v.GetString("log.file")
	if path == "" {
		path = DefaultLogFile
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	w, err := openLogFile(path)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(v.GetString("log.level"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if l, err := logrus.ParseLevel(v.GetString("log.level")); err == nil {
		logrus.SetLevel(l)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	return nil
}

var askOne = func(p survey.Prompt, response interface{}) error {
	return survey.AskOne(p, response)
}

// PromptSelect asks the user to pick one of options.
func PromptSelect(message string, options []string) (string, error) {
	var answer string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 10,
	}
	if err := askOne(prompt, &answer); err != nil {
		return "", err
	}

	return answer, nil
}

// PromptApplication offers the recently used applications of endpoint.
func PromptApplication(repo persistance.PersistanceRepo, endpoint string) (string, error) {
	visited, err := repo.GetVisited()
	if err != nil {
		return "", err
	}

	var options []string
	for _, v := range visited {
		if v.Endpoint == endpoint {
			options = append(options, v.ID)
		}
	}
	if len(options) == 0 {
		return "", errcodes.ErrMissingApplication
	}

	return PromptSelect("Application", options)
}

// ResolveApp fills the application parameters from flags and config. When
// no application is set, it prompts among the recently used ones. The
// chosen application is remembered.
func ResolveApp(flags paramutils.FlagRepo, v *viper.Viper, repo persistance.PersistanceRepo) (*paramutils.AppParams, error) {
	params := &paramutils.AppParams{}
	paramutils.FillAppParams(flags, v, params)

	if params.AppID == "" && params.Endpoint != "" {
		id, err := PromptApplication(repo, params.Endpoint)
		if err != nil {
			return nil, err
		}
		params.AppID = id
	}

	if err := paramutils.ValidateAppParams(params); err != nil {
		return nil, err
	}

	if err := repo.AddVisited(params.AppID, params.Endpoint); err != nil {
		log.Warn().Err(err).Msg("could not save recent applications")
	}

	return params, nil
}
