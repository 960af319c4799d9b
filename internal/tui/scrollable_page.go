package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type ScrollablePageLine struct {
	Text      string
	Reference interface{}
}

// ScrollablePage draws a list of lines with one highlighted line and keeps
// the highlight inside the visible window.
type ScrollablePage struct {
	*tview.Box
	height        int
	pageOffset    int
	selectedIndex int
	content       []*ScrollablePageLine
	changed       func(index int)
}

// Lines kept between the highlight and the window edge while scrolling.
const scrollMargin = 2

func NewScrollablePage() *ScrollablePage {
	return &ScrollablePage{Box: tview.NewBox()}
}

func (sp *ScrollablePage) SetSelectionChangedFunc(changed func(index int)) {
	sp.changed = changed
}

func (sp *ScrollablePage) SetContent(lines []*ScrollablePageLine) *ScrollablePage {
	sp.content = lines
	sp.pageOffset = 0
	sp.selectedIndex = 0

	return sp
}

func (sp *ScrollablePage) Len() int {
	return len(sp.content)
}

func (sp *ScrollablePage) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return sp.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyRune:
			switch event.Rune() {
			case 'j':
				sp.ScrollDown()
			case 'k':
				sp.ScrollUp()
			}
		case tcell.KeyUp:
			sp.ScrollUp()
		case tcell.KeyDown:
			sp.ScrollDown()
		case tcell.KeyPgDn:
			sp.move(sp.height / 2)
		case tcell.KeyPgUp:
			sp.move(-sp.height / 2)
		}
	})
}

func (sp *ScrollablePage) GetSelectedReference() interface{} {
	if sp.selectedIndex < 0 || sp.selectedIndex >= len(sp.content) {
		return nil
	}

	return sp.content[sp.selectedIndex].Reference
}

func (sp *ScrollablePage) move(n int) {
	old := sp.selectedIndex
	sp.selectedIndex = clamp(sp.selectedIndex+n, 0, len(sp.content)-1)

	if sp.height > 0 {
		if sp.selectedIndex < sp.pageOffset+scrollMargin {
			sp.pageOffset = sp.selectedIndex - scrollMargin
		}
		if sp.selectedIndex >= sp.pageOffset+sp.height-scrollMargin {
			sp.pageOffset = sp.selectedIndex - sp.height + scrollMargin + 1
		}
		sp.pageOffset = clamp(sp.pageOffset, 0, len(sp.content)-sp.height)
	}

	if old != sp.selectedIndex && sp.changed != nil {
		sp.changed(sp.selectedIndex)
	}
}

func (sp *ScrollablePage) ScrollDown() { sp.move(1) }
func (sp *ScrollablePage) ScrollUp()   { sp.move(-1) }

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}

	return v
}

func (sp *ScrollablePage) Draw(screen tcell.Screen) {
	sp.Box.DrawForSubclass(screen, sp)
	x, y, width, height := sp.GetInnerRect()
	sp.height = height

	for row := 0; row < height && sp.pageOffset+row < len(sp.content); row++ {
		i := sp.pageOffset + row
		prefix := ""
		if i == sp.selectedIndex {
			prefix = "[:gray]"
			tview.Print(screen, prefix+strings.Repeat(" ", width), x, y+row, width, tview.AlignLeft, tview.Styles.PrimaryTextColor)
		}

		tview.Print(screen, prefix+tview.Escape(sp.content[i].Text), x, y+row, width, tview.AlignLeft, tview.Styles.PrimaryTextColor)
	}
}
