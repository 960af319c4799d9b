package cli

import (
	"fmt"
	"os"

	createcmd "entq/internal/cli/create"
	listcmd "entq/internal/cli/list"
	"entq/internal/cli/paramutils"
	synccmd "entq/internal/cli/sync"
	"entq/internal/cli/utils"
	"entq/internal/clientutils"
	"entq/internal/domain/gitsync"
	"entq/internal/listview"
	"entq/internal/persistance"
	"entq/internal/systemcodes"
	"entq/internal/tui"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func runTui(cmd *cobra.Command, args []string) error {
	v, err := utils.LoadConfig(cmd)
	if err != nil {
		return err
	}

	flags := paramutils.NewFlagRepo(cmd.Flags())
	app, err := utils.ResolveApp(flags, v, persistance.GetRepo())
	if err != nil {
		return err
	}

	c, err := clientutils.ClientFactory{}.Backend(v, app.Endpoint)
	if err != nil {
		return err
	}

	gh, err := clientutils.ClientFactory{}.Github(v)
	if err != nil {
		return err
	}

	var repos gitsync.RepositoryLister
	if gh != nil {
		repos = gh
	}

	log.Info().Str("app", app.AppID).Str("endpoint", app.Endpoint).Msg("starting")

	return tui.New(&tui.Options{
		AppID:        app.AppID,
		Config:       v,
		Query:        listview.QueryFunc(c.List),
		Creator:      c,
		Enabler:      c,
		Repositories: repos,
	}).Start(cmd.Context())
}

var rootCmd = &cobra.Command{
	Use:     "entq",
	Short:   "entq terminal client for application entities",
	Long:    `Browse, search and create the entities of an application and link it to GitHub.`,
	Version: fmt.Sprintf("%v, commit %v, built at %v", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		v, err := utils.LoadConfig(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(systemcodes.ErrorCodeConfig)
		}

		if err := utils.SetupLogging(v); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(systemcodes.ErrorCodeConfig)
		}
	},
	Run: utils.RunCommandWrapper(runTui),
}

func Execute() {
	rootCmd.AddCommand(
		listcmd.New(),
		synccmd.New(),
		createcmd.New(),
	)

	rootCmd.PersistentFlags().StringP("app", "a", "", "application id (default: default.app)")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "GraphQL endpoint (default: server.url)")
	rootCmd.PersistentFlags().String("config", "", "config path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(systemcodes.ErrorCodeUsage)
	}
}
