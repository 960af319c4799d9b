package paramutils

import (
	"entq/internal/configutils"
	"entq/internal/errcodes"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type FlagRepo interface {
	GetStringOrDefault(flag, d string) string
	GetBoolOrDefault(flag string, d bool) bool
}

func NewFlagRepo(flags *pflag.FlagSet) FlagRepo {
	return &PFlagSetWrapper{Flags: flags}
}

type PFlagSetWrapper struct {
	Flags *pflag.FlagSet
}

func (fs *PFlagSetWrapper) GetStringOrDefault(flag, d string) string {
	return configutils.GetStringFlagOrDefault(fs.Flags, flag, d)
}

func (fs *PFlagSetWrapper) GetBoolOrDefault(flag string, d bool) bool {
	return configutils.GetBoolFlagOrDefault(fs.Flags, flag, d)
}

// AppParams selects the application and the backend serving it.
type AppParams struct {
	AppID    string
	Endpoint string
}

// FillAppParams takes --app and --endpoint, falling back to default.app and
// server.url.
func FillAppParams(flags FlagRepo, v *viper.Viper, params *AppParams) {
	params.AppID = flags.GetStringOrDefault("app", v.GetString("default.app"))
	params.Endpoint = flags.GetStringOrDefault("endpoint", v.GetString("server.url"))
}

func ValidateAppParams(params *AppParams) error {
	if params.Endpoint == "" {
		return errcodes.ErrMissingServerURL
	}
	if params.AppID == "" {
		return errcodes.ErrMissingApplication
	}

	return nil
}

func ParseIDArg(args []string) string {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	return id
}
