package tui

import (
	"fmt"
	"strings"

	"entq/internal/domain/entity"
	"entq/internal/listview"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const timeFormat = "2006-01-02 15:04"

type column struct {
	icon string
	// Empty when the column cannot be sorted on.
	field string
}

var columns = []column{
	{"Lock", ""},
	{"Name", "displayName"},
	{"Description", "description"},
	{"Version", ""},
	{"Commit", ""},
}

// SortFields are the fields the list can be sorted by, in cycling order.
var SortFields = []string{"displayName", "name", "description"}

func nextSortField(current string) string {
	for i, f := range SortFields {
		if f == current {
			return SortFields[(i+1)%len(SortFields)]
		}
	}

	return SortFields[0]
}

type entityTable struct {
	View  *tview.Table
	icons map[string]string
	rows  []*listview.Row
}

func pad(input string) string {
	return fmt.Sprintf(" %s ", input)
}

func newEntityTable(icons map[string]string) *entityTable {
	table := tview.NewTable()
	table.
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false).
		SetBorder(true)

	return &entityTable{View: table, icons: icons}
}

func (et *entityTable) header(c column, sort entity.SortSpec) string {
	h := et.icons[c.icon]
	if c.field != "" && c.field == sort.Field {
		h = fmt.Sprintf("%s %s", h, et.icons[string(sort.Direction)])
	}

	return h
}

// SetRows redraws the table and keeps the selection on the same entity
// when it is still listed.
func (et *entityTable) SetRows(rows []*listview.Row, sort entity.SortSpec) {
	var selectedID entity.EntityID
	if r := et.SelectedRow(); r != nil {
		selectedID = r.ID
	}

	et.rows = rows
	et.View.Clear()

	for i, c := range columns {
		et.View.SetCell(0, i,
			tview.NewTableCell(pad(et.header(c, sort))).
				SetSelectable(false).
				SetTextColor(HeaderColor).
				SetAttributes(tcell.AttrBold),
		)
	}

	selected := 1
	for i, r := range rows {
		et.addRow(i+1, r)
		if r.ID == selectedID {
			selected = i + 1
		}
	}

	et.View.SetTitle(fmt.Sprintf(
		" Entities (%d) sorted by %s %s ",
		len(rows), sort.Field, strings.ToLower(string(sort.Direction)),
	))

	if len(rows) > 0 {
		et.View.Select(selected, 0)
	}
}

func (et *entityTable) addRow(rowID int, r *listview.Row) {
	lock := ""
	color := NormalColor
	if r.LockedBy != nil {
		lock = fmt.Sprintf("%s %s", et.icons["Lock"], r.LockedBy.Initials)
		color = LockedColor
	}

	commit := ""
	if r.Commit != nil {
		parts := []string{r.Commit.CreatedAt.Local().Format(timeFormat)}
		if r.Commit.Author != nil {
			parts = append(parts, r.Commit.Author.Initials)
		}
		parts = append(parts, firstLine(r.Commit.Message))
		commit = strings.Join(parts, " ")
	}

	values := []string{lock, r.Name, r.Description, r.Version, commit}
	for i, v := range values {
		cell := tview.NewTableCell(pad(tview.Escape(v))).SetTextColor(color)
		if i == 2 || i == 4 {
			cell.SetExpansion(1).SetMaxWidth(60)
		}
		et.View.SetCell(rowID, i, cell)
	}
}

func (et *entityTable) SelectedRow() *listview.Row {
	row, _ := et.View.GetSelection()
	i := row - 1
	if i < 0 || i >= len(et.rows) {
		return nil
	}

	return et.rows[i]
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
