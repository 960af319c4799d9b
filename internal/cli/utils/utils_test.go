package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"entq/internal/cli/paramutils"
	"entq/internal/errcodes"
	"entq/internal/persistance"
	"entq/internal/systemcodes"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errcodes.ErrMissingServerURL, systemcodes.ErrorCodeConfig},
		{fmt.Errorf("x: %w", errcodes.ErrMissingServerToken), systemcodes.ErrorCodeConfig},
		{errcodes.ErrMissingApplication, systemcodes.ErrorCodeUsage},
		{errcodes.ErrRepositoryMustBeInFormOwnerRepo, systemcodes.ErrorCodeUsage},
		{errors.New("other"), systemcodes.ErrorCodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestRunCommandWrapper(t *testing.T) {
	old := exit
	defer func() { exit = old }()

	t.Run("prints the error and exits with its code", func(t *testing.T) {
		code := -1
		exit = func(c int) { code = c }
		cmd := &cobra.Command{}
		out := &bytes.Buffer{}
		cmd.SetErr(out)

		RunCommandWrapper(func(*cobra.Command, []string) error {
			return errcodes.ErrMissingApplication
		})(cmd, nil)

		assert.Equal(t, systemcodes.ErrorCodeUsage, code)
		assert.Equal(t, "application is missing\n", out.String())
	})

	t.Run("does not exit on success", func(t *testing.T) {
		called := false
		exit = func(int) { called = true }

		RunCommandWrapper(func(*cobra.Command, []string) error { return nil })(&cobra.Command{}, nil)

		assert.False(t, called)
	})
}

func TestSetupLogging(t *testing.T) {
	t.Run("fails when the log file cannot be opened", func(t *testing.T) {
		old := openLogFile
		defer func() { openLogFile = old }()
		vErr := errors.New("open err")
		openLogFile = func(string) (io.Writer, error) { return nil, vErr }

		err := SetupLogging(viper.New())
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("writes to the configured file", func(t *testing.T) {
		old := openLogFile
		defer func() { openLogFile = old }()
		var opened string
		openLogFile = func(p string) (io.Writer, error) {
			opened = p
			return io.Discard, nil
		}
		v := viper.New()
		v.Set("log.file", "/tmp/entq-test.log")
		v.Set("log.level", "debug")

		require.NoError(t, SetupLogging(v))
		assert.Equal(t, "/tmp/entq-test.log", opened)
	})
}

type mockPersistance struct {
	visited []*persistance.AppInfo
	err     error
}

func (m *mockPersistance) AddVisited(string, string) error { return m.err }
func (m *mockPersistance) GetVisited() ([]*persistance.AppInfo, error) {
	return m.visited, m.err
}

func TestPromptApplication(t *testing.T) {
	old := askOne
	defer func() { askOne = old }()

	t.Run("fails without recent applications", func(t *testing.T) {
		_, err := PromptApplication(&mockPersistance{}, "e")
		assert.ErrorIs(t, err, errcodes.ErrMissingApplication)
	})

	t.Run("offers applications of the endpoint only", func(t *testing.T) {
		var offered []string
		askOne = func(p survey.Prompt, response interface{}) error {
			offered = p.(*survey.Select).Options
			*(response.(*string)) = offered[0]
			return nil
		}

		id, err := PromptApplication(&mockPersistance{visited: []*persistance.AppInfo{
			{ID: "a", Endpoint: "e"},
			{ID: "b", Endpoint: "other"},
			{ID: "c", Endpoint: "e"},
		}}, "e")

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, offered)
		assert.Equal(t, "a", id)
	})
}

func TestResolveApp(t *testing.T) {
	v := viper.New()
	v.Set("server.url", "e")

	t.Run("uses the configured application", func(t *testing.T) {
		v := viper.New()
		v.Set("server.url", "e")
		v.Set("default.app", "app-1")

		params, err := ResolveApp(&paramutils.MockFlagSet{}, v, &mockPersistance{})
		require.NoError(t, err)
		assert.Equal(t, "app-1", params.AppID)
	})

	t.Run("prompts when no application is set", func(t *testing.T) {
		old := askOne
		defer func() { askOne = old }()
		askOne = func(p survey.Prompt, response interface{}) error {
			*(response.(*string)) = "recent"
			return nil
		}

		params, err := ResolveApp(&paramutils.MockFlagSet{}, v, &mockPersistance{
			visited: []*persistance.AppInfo{{ID: "recent", Endpoint: "e"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "recent", params.AppID)
	})

	t.Run("fails without endpoint", func(t *testing.T) {
		_, err := ResolveApp(&paramutils.MockFlagSet{}, viper.New(), &mockPersistance{})
		assert.ErrorIs(t, err, errcodes.ErrMissingServerURL)
	})
}
