package tui

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type FilterModalItem struct {
	Line string
	Ref  interface{}
}

// FilterModal is a centered picker: an input that narrows a list of items.
// The callback gets the picked item, or nil when the modal was closed.
type FilterModal struct {
	*tview.Flex
	frame    *tview.Flex
	input    *tview.InputField
	items    []*ScrollablePageLine
	list     *ScrollablePage
	callback func(i *FilterModalItem)
}

func (m *FilterModal) Clear() {
	m.input.SetText("")
	m.items = nil
	m.list.SetContent(nil)
}

func (m *FilterModal) SetTitle(title string) *FilterModal {
	m.frame.SetTitle(title)
	return m
}

func (m *FilterModal) SetData(data []*FilterModalItem, cb func(item *FilterModalItem)) {
	items := make([]*ScrollablePageLine, 0, len(data))
	for _, item := range data {
		items = append(items, &ScrollablePageLine{Text: item.Line, Reference: item})
	}

	m.items = items
	m.list.SetContent(items)
	m.callback = cb
}

func (m *FilterModal) filter(input string) {
	li := strings.ToLowerSpecial(unicode.CaseRanges, input)
	filtered := make([]*ScrollablePageLine, 0, len(m.items))
	for _, line := range m.items {
		if strings.Contains(strings.ToLowerSpecial(unicode.CaseRanges, line.Text), li) {
			filtered = append(filtered, line)
		}
	}

	m.list.SetContent(filtered)
}

func (m *FilterModal) done(item *FilterModalItem) {
	if m.callback != nil {
		m.callback(item)
	}
}

func (m *FilterModal) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlJ, tcell.KeyDown:
		m.list.ScrollDown()
		return nil
	case tcell.KeyCtrlK, tcell.KeyUp:
		m.list.ScrollUp()
		return nil
	case tcell.KeyEsc:
		m.done(nil)
		return nil
	case tcell.KeyEnter:
		if fmi, ok := m.list.GetSelectedReference().(*FilterModalItem); ok {
			m.done(fmi)
		}
		return nil
	}

	return event
}

func centered(p tview.Primitive, width, height int) *tview.Flex {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(
			tview.NewFlex().SetDirection(tview.FlexRow).
				AddItem(nil, 0, 1, false).
				AddItem(p, height, 1, true).
				AddItem(nil, 0, 1, false),
			width, 1, true,
		).
		AddItem(nil, 0, 1, false)
}

func NewFilterModal() *FilterModal {
	m := &FilterModal{
		input: tview.NewInputField(),
		list:  NewScrollablePage(),
		frame: tview.NewFlex(),
	}

	m.input.
		SetFieldStyle(tcell.StyleDefault).
		SetChangedFunc(m.filter).
		SetInputCapture(m.handleKey).
		SetBorder(true)
	m.list.SetBorder(true)

	m.frame.SetDirection(tview.FlexRow).
		AddItem(m.input, 3, 1, true).
		AddItem(m.list, 0, 1, false)
	m.frame.SetBorder(true).SetTitle("Filter")

	m.Flex = centered(m.frame, 80, 20)

	return m
}
