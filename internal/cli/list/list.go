package list

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"entq/internal/cli/paramutils"
	"entq/internal/cli/utils"
	"entq/internal/clientutils"
	"entq/internal/domain/entity"
	"entq/internal/listview"
	"entq/internal/persistance"

	"github.com/gosuri/uilive"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

const timeFormat = "2006-01-02 15:04"

func runCmd(cmd *cobra.Command, args []string) error {
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

	params := &listCmdParams{}
	fillListCmdParams(flags, params)

	if params.Watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return watch(ctx, listview.QueryFunc(c.List), app.AppID, params, cmd.OutOrStdout())
	}

	return execute(cmd.Context(), c, app.AppID, params, cmd.OutOrStdout())
}

func execute(
	ctx context.Context,
	c entity.Lister,
	appID string,
	params *listCmdParams,
	out io.Writer,
) error {
	entities, err := c.List(ctx, entity.BuildQueryVariables(appID, params.Sort, params.Search))
	if err != nil {
		return err
	}

	rows := make([]*listview.Row, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, listview.NewRow(appID, e))
	}

	fmt.Fprintln(out, renderTable(rows))
	return nil
}

// watch redraws the table in place on every poll until ctx is done.
func watch(
	ctx context.Context,
	q listview.QueryClient,
	appID string,
	params *listCmdParams,
	out io.Writer,
) error {
	writer := uilive.New()
	writer.Out = out
	writer.Start()
	defer writer.Stop()

	var lc *listview.Controller
	lc = listview.NewController(appID, q,
		listview.WithSort(params.Sort),
		listview.WithSearch(params.Search),
		listview.WithOnChange(func() {
			fmt.Fprintln(writer, renderWatch(lc))
		}),
	)

	lc.Mount(ctx)
	defer lc.Unmount()

	<-ctx.Done()
	return nil
}

func renderWatch(lc *listview.Controller) string {
	s := renderTable(lc.Rows())
	if n := lc.Notification(); n != nil {
		s += "\n" + n.Message
	}

	return s
}

func avatarName(a *listview.Avatar) string {
	if a == nil {
		return ""
	}

	return a.Name
}

func renderTable(rows []*listview.Row) string {
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("NAME", "DESCRIPTION", "VERSION", "LOCKED BY", "LAST COMMIT", "LINK")
	table.AddRow("----", "-----------", "-------", "---------", "-----------", "----")

	for _, r := range rows {
		commit := ""
		if r.Commit != nil {
			parts := []string{r.Commit.CreatedAt.Local().Format(timeFormat)}
			if name := avatarName(r.Commit.Author); name != "" {
				parts = append(parts, name)
			}
			parts = append(parts, strings.TrimSpace(firstLine(r.Commit.Message)))
			commit = strings.Join(parts, " ")
		}

		table.AddRow(r.Name, r.Description, r.Version, avatarName(r.LockedBy), commit, r.Link)
	}

	return table.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entities",
		Long:    `Lists the entities of an application`,
		Run:     utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().String("sort", entity.DefaultSortField, "field to sort by")
	cmd.Flags().Bool("desc", false, "sort in descending order")
	cmd.Flags().StringP("search", "s", "", "only entities whose name contains this text")
	cmd.Flags().BoolP("watch", "w", false, "keep polling and redraw the list")

	return cmd
}
