package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"entq/internal/domain/entity"
	"entq/internal/domain/gitsync"
	"entq/internal/listview"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	pageMain    = "main"
	pageCreate  = "create"
	pageDetails = "details"
	pagePicker  = "picker"

	helpText = "[gray]/ search  s sort  o order  c create  g github sync  r reload  enter details  q quit"
)

type Options struct {
	AppID   string
	Config  *viper.Viper
	Query   listview.QueryClient
	Creator entity.Creator
	Enabler gitsync.Enabler
	// Nil disables the repository picker.
	Repositories gitsync.RepositoryLister
	// Appended to the controller defaults.
	ControllerOptions []listview.Option
}

type Tui struct {
	app     *tview.Application
	pages   *tview.Pages
	bus     *EventBus
	icons   map[string]string
	timeout time.Duration
	appID   string

	controller   *listview.Controller
	creator      *entity.CreateService
	sync         *gitsync.Handler
	repositories gitsync.RepositoryLister

	table   *entityTable
	search  *tview.InputField
	footer  *tview.TextView
	create  *CreateModal
	details *detailsPage
	picker  *FilterModal

	ctx         context.Context
	status      string
	createShown bool

	queueUpdateDraw func(func())
	spawn           func(func())

	// updates feeds the single goroutine that hands work to the event loop.
	updates  chan func()
	done     chan struct{}
	stopOnce sync.Once
}

func New(o *Options) *Tui {
	config := o.Config
	if config == nil {
		config = viper.New()
	}

	t := &Tui{
		app:          tview.NewApplication(),
		pages:        tview.NewPages(),
		bus:          NewEventBus(),
		icons:        initIconsMap(config),
		timeout:      notificationTimeout(config),
		appID:        o.AppID,
		creator:      entity.NewCreateService(o.Creator),
		repositories: o.Repositories,
		ctx:          context.Background(),
		spawn:        func(fn func()) { go fn() },
		updates:      make(chan func()),
		done:         make(chan struct{}),
	}
	t.queueUpdateDraw = t.postUpdate

	opts := append([]listview.Option{
		listview.WithOnChange(func() { t.queueUpdateDraw(t.render) }),
	}, o.ControllerOptions...)
	t.controller = listview.NewController(o.AppID, o.Query, opts...)

	t.sync = gitsync.NewHandler(o.AppID, o.Enabler,
		gitsync.WithCompleted(func(s *gitsync.Status) {
			t.queueUpdateDraw(func() {
				t.bus.Publish(EventStatusMessage, fmt.Sprintf("GitHub sync enabled: %s", s.GithubRepo))
			})
		}),
		gitsync.WithFailed(func(error) {
			t.queueUpdateDraw(func() {
				t.bus.Publish(EventStatusMessage, "GitHub sync was not enabled, see the log")
			})
		}),
	)

	t.build(config.GetString("web.url"))
	t.subscribe()
	t.render()

	return t
}

func (t *Tui) build(webURL string) {
	t.table = newEntityTable(t.icons)
	t.table.View.
		SetSelectedFunc(func(row, column int) { t.showDetails() }).
		SetInputCapture(t.handleTableKey)

	t.search = tview.NewInputField()
	t.search.
		SetPlaceholder("Search by name").
		SetChangedFunc(t.controller.SetSearch).
		SetInputCapture(t.handleSearchKey).
		SetBorder(true).
		SetTitle("Search")

	t.footer = tview.NewTextView().SetDynamicColors(true)
	t.footer.SetBorderPadding(0, 0, 1, 1)

	t.create = NewCreateModal(t.submitCreate, func() {
		if t.controller.CreateDialogOpen() {
			t.controller.ToggleCreateDialog()
		}
	})

	t.details = newDetailsPage(webURL)
	t.details.View.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || event.Rune() == 'q' {
			t.pages.SwitchToPage(pageMain)
			t.app.SetFocus(t.table.View)
			return nil
		}
		return event
	})

	t.picker = NewFilterModal().SetTitle(" GitHub repositories ")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.table.View, 0, 1, true).
		AddItem(t.search, 3, 0, false).
		AddItem(t.footer, 1, 0, false)

	t.pages.
		AddPage(pageMain, layout, true, true).
		AddPage(pageDetails, t.details.View, true, false).
		AddPage(pageCreate, t.create, true, false).
		AddPage(pagePicker, t.picker, true, false)
}

func (t *Tui) subscribe() {
	t.bus.Subscribe(EventStatusMessage, func(data interface{}) {
		t.status = data.(string)
		t.render()
	})

	t.bus.Subscribe(EventRepositoryPicked, func(data interface{}) {
		repo := data.(*gitsync.Repository)
		t.bus.Publish(EventStatusMessage, fmt.Sprintf("Enabling GitHub sync with %s...", repo.FullName))
		ctx := t.ctx
		t.spawn(func() { t.sync.OnRepositorySelected(ctx, repo) })
	})

	t.bus.Subscribe(EventEntityCreated, func(data interface{}) {
		e := data.(*entity.Entity)
		t.bus.Publish(EventStatusMessage, fmt.Sprintf("Created %s", e.DisplayName))
		t.controller.Refetch(t.ctx)
	})
}

func (t *Tui) handleTableKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEsc {
		t.controller.DismissNotification()
		return nil
	}

	switch event.Rune() {
	case 'q':
		t.app.Stop()
		return nil
	case '/':
		t.app.SetFocus(t.search)
		return nil
	case 'c':
		t.controller.ToggleCreateDialog()
		return nil
	case 's':
		sort := t.controller.Sort()
		t.controller.SetSort(nextSortField(sort.Field), sort.Direction)
		return nil
	case 'o':
		sort := t.controller.Sort()
		t.controller.SetSort(sort.Field, sort.Direction.Opposite())
		return nil
	case 'r':
		t.controller.Refetch(t.ctx)
		return nil
	case 'g':
		t.openRepositoryPicker()
		return nil
	}

	return event
}

func (t *Tui) handleSearchKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if t.search.GetText() != "" {
			t.search.SetText("")
		} else {
			t.app.SetFocus(t.table.View)
		}
		return nil
	case tcell.KeyEnter:
		t.app.SetFocus(t.table.View)
		return nil
	}

	return event
}

func (t *Tui) showDetails() {
	row := t.table.SelectedRow()
	if row == nil {
		return
	}

	e := t.controller.Entity(row.ID)
	if e == nil {
		return
	}

	t.details.SetEntity(t.appID, e)
	t.pages.SwitchToPage(pageDetails)
	t.app.SetFocus(t.details.View)
}

func (t *Tui) submitCreate(displayName string) {
	o := entity.NewCreateOptions(t.appID, displayName)
	t.bus.Publish(EventStatusMessage, fmt.Sprintf("Creating %s...", o.DisplayName))

	ctx := t.ctx
	t.spawn(func() {
		e, err := t.creator.Create(ctx, o)
		t.queueUpdateDraw(func() {
			if err != nil {
				log.Error().Err(err).Str("displayName", o.DisplayName).Msg("could not create entity")
				t.bus.Publish(EventStatusMessage, fmt.Sprintf("[red]Could not create %s: %s", tview.Escape(o.DisplayName), tview.Escape(err.Error())))
				return
			}

			if t.controller.CreateDialogOpen() {
				t.controller.ToggleCreateDialog()
			}
			t.bus.Publish(EventEntityCreated, e)
		})
	})
}

func (t *Tui) openRepositoryPicker() {
	if t.repositories == nil {
		t.bus.Publish(EventStatusMessage, "Set github.token to pick a repository")
		return
	}

	t.bus.Publish(EventStatusMessage, "Loading GitHub repositories...")
	ctx := t.ctx
	t.spawn(func() {
		repos, err := t.repositories.ListRepositories(ctx)
		t.queueUpdateDraw(func() {
			if err != nil {
				t.bus.Publish(EventStatusMessage, fmt.Sprintf("[red]Could not list repositories: %s", tview.Escape(err.Error())))
				return
			}
			t.showPicker(repos)
		})
	})
}

func (t *Tui) showPicker(repos []*gitsync.Repository) {
	items := make([]*FilterModalItem, 0, len(repos))
	for _, r := range repos {
		line := r.FullName
		if r.Private {
			line += " (private)"
		}
		items = append(items, &FilterModalItem{Line: line, Ref: r})
	}

	t.picker.Clear()
	t.picker.SetData(items, func(item *FilterModalItem) {
		t.pages.HidePage(pagePicker)
		t.app.SetFocus(t.table.View)
		t.status = ""
		if item == nil {
			t.render()
			return
		}

		t.bus.Publish(EventRepositoryPicked, item.Ref.(*gitsync.Repository))
	})
	t.pages.ShowPage(pagePicker)
	t.app.SetFocus(t.picker)
}

// postUpdate schedules fn on the event loop without blocking the caller,
// which may be the event loop itself. Updates posted after shutdown are
// dropped.
func (t *Tui) postUpdate(fn func()) {
	select {
	case <-t.done:
		return
	default:
	}

	go func() {
		select {
		case t.updates <- fn:
		case <-t.done:
		}
	}()
}

func (t *Tui) pumpUpdates() {
	for {
		select {
		case fn := <-t.updates:
			t.app.QueueUpdateDraw(fn)
		case <-t.done:
			return
		}
	}
}

func (t *Tui) shutdown() {
	t.stopOnce.Do(func() { close(t.done) })
}

// render copies the controller state into the widgets. It runs on the UI
// goroutine.
func (t *Tui) render() {
	t.table.SetRows(t.controller.Rows(), t.controller.Sort())

	if open := t.controller.CreateDialogOpen(); open != t.createShown {
		t.createShown = open
		if open {
			t.create.Reset()
			t.pages.ShowPage(pageCreate)
			t.app.SetFocus(t.create)
		} else {
			t.pages.HidePage(pageCreate)
			t.app.SetFocus(t.table.View)
		}
	}

	switch n := t.controller.Notification(); {
	case n != nil:
		t.footer.SetText(fmt.Sprintf("[red]%s[-] [gray](esc to dismiss)", tview.Escape(n.Message)))
	case !t.controller.Loaded():
		t.footer.SetText("Loading...")
	case t.status != "":
		t.footer.SetText(t.status)
	default:
		t.footer.SetText(helpText)
	}
}

// Start mounts the list, which begins polling, and runs the event loop
// until the user quits.
func (t *Tui) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t.ctx = ctx

	t.controller.Mount(ctx)
	defer t.controller.Unmount()

	stopExpiry := listview.TickerScheduler{}.Every(time.Second, func() {
		t.controller.ExpireNotification(time.Now(), t.timeout)
	})
	defer stopExpiry()

	go t.pumpUpdates()
	defer t.shutdown()

	t.app.SetRoot(t.pages, true).EnableMouse(true)
	t.app.SetFocus(t.table.View)

	return t.app.Run()
}
