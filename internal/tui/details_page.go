package tui

import (
	"fmt"
	"strings"

	"entq/internal/domain/entity"
	"entq/internal/listview"

	"github.com/rivo/tview"
)

type detailsPage struct {
	View   *tview.TextView
	webURL string
}

func newDetailsPage(webURL string) *detailsPage {
	v := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	v.SetBorder(true).SetBorderPadding(0, 0, 1, 1)

	return &detailsPage{View: v, webURL: strings.TrimRight(webURL, "/")}
}

func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "[yellow]%s[-]\n%s\n\n", label, tview.Escape(value))
}

func (dp *detailsPage) SetEntity(appID string, e *entity.Entity) {
	dp.View.SetTitle(fmt.Sprintf(" %s ", tview.Escape(e.DisplayName)))

	link := listview.EntityLink(appID, e.ID)
	if dp.webURL != "" {
		link = dp.webURL + link
	}

	b := &strings.Builder{}
	field(b, "ID", string(e.ID))
	field(b, "Name", e.Name)
	field(b, "Display name", e.DisplayName)
	field(b, "Description", e.Description)
	field(b, "Link", link)

	if e.IsLocked() {
		field(b, "Locked by", fmt.Sprintf("%s since %s", e.LockedByUser.FullName(), e.LockedAt.Local().Format(timeFormat)))
	}

	if v := e.LatestVersion(); v != nil {
		field(b, "Version", listview.VersionLabel(v))
		if c := v.Commit; c != nil {
			author := c.User.FullName()
			if author == "" {
				author = "unknown"
			}
			field(b, "Last commit", fmt.Sprintf("%s by %s\n%s", c.CreatedAt.Local().Format(timeFormat), author, c.Message))
		}
	}

	dp.View.SetText(b.String()).ScrollToBeginning()
}
