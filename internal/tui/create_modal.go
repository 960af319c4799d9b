package tui

import (
	"fmt"

	"entq/internal/domain/entity"

	"github.com/rivo/tview"
)

const displayNameLabel = "Display name"

// CreateModal asks for the display name of a new entity and previews the
// names derived from it.
type CreateModal struct {
	*tview.Flex
	form     *tview.Form
	input    *tview.InputField
	preview  *tview.TextView
	onSubmit func(displayName string)
	onCancel func()
}

func NewCreateModal(onSubmit func(displayName string), onCancel func()) *CreateModal {
	m := &CreateModal{
		form:     tview.NewForm(),
		preview:  tview.NewTextView().SetDynamicColors(true),
		onSubmit: onSubmit,
		onCancel: onCancel,
	}

	m.form.
		AddInputField(displayNameLabel, "", 40, nil, m.updatePreview).
		AddButton("Create", m.submit).
		AddButton("Cancel", m.cancel).
		SetCancelFunc(m.cancel)
	m.input = m.form.GetFormItem(0).(*tview.InputField)
	m.preview.SetBorderPadding(0, 0, 1, 1)

	frame := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(m.form, 0, 1, true).
		AddItem(m.preview, 2, 0, false)
	frame.SetBorder(true).SetTitle(" New entity ")

	m.Flex = centered(frame, 60, 11)

	return m
}

func (m *CreateModal) updatePreview(text string) {
	o := entity.NewCreateOptions("", text)
	if o.Name == "" {
		m.preview.SetText("")
		return
	}

	m.preview.SetText(fmt.Sprintf(
		"[gray]name:[-] %s\n[gray]plural:[-] %s",
		tview.Escape(o.Name),
		tview.Escape(o.PluralDisplayName),
	))
}

func (m *CreateModal) Reset() {
	m.input.SetText("")
	m.form.SetFocus(0)
}

func (m *CreateModal) DisplayName() string {
	return m.input.GetText()
}

func (m *CreateModal) submit() {
	if m.onSubmit != nil {
		m.onSubmit(m.DisplayName())
	}
}

func (m *CreateModal) cancel() {
	if m.onCancel != nil {
		m.onCancel()
	}
}
