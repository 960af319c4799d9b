package create

import (
	"context"
	"fmt"
	"io"

	"entq/internal/cli/paramutils"
	"entq/internal/cli/utils"
	"entq/internal/clientutils"
	"entq/internal/domain/entity"
	"entq/internal/listview"
	"entq/internal/persistance"

	"github.com/spf13/cobra"
)

func runCmd(cmd *cobra.Command, args []string) error {
	a := parseArgs(args)
	if err := validateArgs(a); err != nil {
		return err
	}

	flags := paramutils.NewFlagRepo(cmd.Flags())
	v, err := utils.LoadConfig(cmd)
	if err != nil {
		return err
	}

	app, err := utils.ResolveApp(flags, v, persistance.GetRepo())
	if err != nil {
		return err
	}

	c, err := clientutils.ClientFactory{}.Backend(v, app.Endpoint)
	if err != nil {
		return err
	}

	return execute(cmd.Context(), entity.NewCreateService(c), app.AppID, a, cmd.OutOrStdout())
}

func execute(
	ctx context.Context,
	cs *entity.CreateService,
	appID string,
	a *createCmdArgs,
	out io.Writer,
) error {
	e, err := cs.Create(ctx, entity.NewCreateOptions(appID, a.DisplayName))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s (%s)\n%s\n", e.DisplayName, e.Name, listview.EntityLink(appID, e.ID))
	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <display name>",
		Short: "Create an entity",
		Long:  `Creates an entity in the application. Its name and plural display name are derived from the display name.`,
		Args:  cobra.MinimumNArgs(1),
		Run:   utils.RunCommandWrapper(runCmd),
	}

	return cmd
}
