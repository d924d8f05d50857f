package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/policy-tracker/internal/config"
	"github.com/pstuifzand/policy-tracker/internal/history"
	"github.com/pstuifzand/policy-tracker/internal/ui"
	"github.com/pstuifzand/policy-tracker/internal/view"
	"github.com/sirupsen/logrus"
)

const (
	appTitle      = "Privacy Policy Change Tracker"
	statusTimeout = 5 * time.Second
	renderEvery   = 50 * time.Millisecond
)

// Options configure a new App
type Options struct {
	Screen  *ui.Screen
	Config  *config.Config
	Fetcher view.Fetcher
	Logger  *logrus.Logger
	// History persists prompt history; nil keeps it in memory only
	History *history.Manager
}

// App is the main application controller. All view state is owned by
// the goroutine running Run; fetches run elsewhere and report back on msgs.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	screen *ui.Screen
	cfg    *config.Config
	log    *logrus.Logger

	list      *view.ChangeList
	detail    *view.DiffDetail
	companies *view.Companies

	listView      *ui.ChangeListView
	filterBar     *ui.FilterBar
	diffView      *ui.DiffViewWidget
	picker        *ui.CompanyPicker
	help          *ui.HelpScreen
	command       *ui.CommandMode
	companyPrompt *ui.CommandMode
	messages      *ui.MessageLogger

	keybindings []KeyBinding
	msgs        chan view.Msg

	statusMsg  string
	statusErr  bool
	statusTime time.Time
	quit       bool
	debugMode  bool
}

// NewApp wires the views and widgets around a fetcher
func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	pageSize := cfg.GetInt("page_size", view.DefaultPageSize)

	a := &App{
		ctx:       ctx,
		cancel:    cancel,
		screen:    opts.Screen,
		cfg:       cfg,
		log:       log,
		list:      view.NewChangeList(opts.Fetcher, pageSize, log),
		detail:    view.NewDiffDetail(opts.Fetcher, log),
		companies: view.NewCompanies(opts.Fetcher),
		help:      ui.NewHelpScreen(),
		messages:  ui.NewMessageLogger(100),
		msgs:      make(chan view.Msg, 16),
	}

	a.listView = ui.NewChangeListView(a.list, cfg.Get("date_format"))
	a.filterBar = ui.NewFilterBar(a.list)
	a.diffView = ui.NewDiffViewWidget(a.detail)
	a.picker = ui.NewCompanyPicker(a.companies)
	a.picker.SetOnSelect(a.filterCompany)

	if opts.History != nil {
		a.command = ui.NewCommandModeWithHistory(":", opts.History, "command.toml")
		a.companyPrompt = ui.NewCommandModeWithHistory("Company: ", opts.History, "company.toml")
	} else {
		a.command = ui.NewCommandMode(":")
		a.companyPrompt = ui.NewCommandMode("Company: ")
	}

	a.keybindings = a.InitializeKeybindings()
	infos := make([]ui.KeyBindingInfo, len(a.keybindings))
	for i := range a.keybindings {
		infos[i] = &a.keybindings[i]
	}
	a.help.SetKeybindings(infos)
	a.help.SetCommands(commandHelp)

	return a
}

// Run starts the main event loop and blocks until the user quits
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			select {
			case eventChan <- event:
			case <-a.ctx.Done():
				return
			}
			if event == nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(renderEvery)
	defer ticker.Stop()

	a.Start()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
		case msg := <-a.msgs:
			a.handleMsg(msg)
		case <-ticker.C:
			a.render()
		}
	}

	return nil
}

// Start issues the initial list fetch
func (a *App) Start() {
	a.log.WithField("page_size", a.cfg.GetInt("page_size", view.DefaultPageSize)).Info("Starting")
	a.dispatch(a.list.Init())
}

// Close cancels in-flight requests and releases the terminal
func (a *App) Close() error {
	a.cancel()
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// dispatch runs cmd off the event loop and posts its result to msgs
func (a *App) dispatch(cmd view.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd(a.ctx)
		select {
		case a.msgs <- msg:
		case <-a.ctx.Done():
		}
	}()
}

// handleMsg applies a fetch completion to the view it belongs to
func (a *App) handleMsg(msg view.Msg) {
	switch msg := msg.(type) {
	case view.ChangesLoadedMsg:
		if a.list.Update(msg) && a.list.Error() != "" {
			a.SetError(a.list.Error())
		}
	case view.DetailLoadedMsg:
		if a.list.Update(msg) {
			if item := a.list.ItemByID(msg.ID); item != nil && item.Error() != "" {
				a.SetError(item.Error())
			}
		}
	case view.DiffLoadedMsg:
		if a.detail.Update(msg) {
			a.diffView.Refresh()
			if a.detail.Error() != "" {
				a.SetError(a.detail.Error())
			}
		}
	case view.CompaniesLoadedMsg:
		if a.companies.Update(msg) {
			a.picker.Refresh()
			if a.companies.Error() != "" {
				a.SetError(a.companies.Error())
			}
		}
	default:
		a.log.WithField("msg", fmt.Sprintf("%T", msg)).Warn("Unhandled message")
	}
}

// render draws the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	width := a.screen.GetWidth()
	height := a.screen.GetHeight()

	header := " " + appTitle
	if a.debugMode {
		header += " [debug]"
	}
	a.screen.FillLine(0, 0, a.screen.HeaderStyle())
	a.screen.DrawStringLimited(0, 0, header, width, a.screen.HeaderStyle())

	a.filterBar.Render(a.screen, 1)

	listTop := 2
	listHeight := height - listTop - 1
	if a.command.IsActive() || a.companyPrompt.IsActive() {
		listHeight--
	}
	if listHeight > 0 {
		a.listView.Render(a.screen, listTop, listHeight)
	}

	a.diffView.Render(a.screen)
	a.picker.Render(a.screen)

	a.command.Render(a.screen, height-2)
	a.companyPrompt.Render(a.screen, height-2)

	a.renderStatus(height - 1)

	a.help.Render(a.screen)

	a.screen.Show()
}

func (a *App) renderStatus(y int) {
	mode := " LIST "
	if a.diffView.IsVisible() {
		mode = " DIFF "
	}
	x := a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())
	a.screen.FillLine(x, y, a.screen.StatusMessageStyle())

	switch {
	case a.statusMsg != "" && time.Since(a.statusTime) <= statusTimeout:
		style := a.screen.StatusMessageStyle()
		if a.statusErr {
			style = a.screen.StatusErrorStyle()
		}
		a.screen.DrawStringLimited(x+1, y, a.statusMsg, a.screen.GetWidth()-x-1, style)
	case a.list.Loading() || (a.diffView.IsVisible() && a.detail.State() == view.DetailLoading):
		a.screen.DrawString(x+1, y, "Loading...", a.screen.StatusLoadingStyle())
	}
}

// handleRawEvent routes input to the topmost active widget
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	if a.command.IsActive() {
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.companyPrompt.IsActive() {
		if _, done := a.companyPrompt.HandleKey(ev); done && ev.Key() == tcell.KeyEnter {
			a.filterCompany(a.companyPrompt.GetInput())
		}
		return
	}

	if a.help.IsVisible() {
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Rune() == '?', ev.Rune() == 'q':
			a.help.Hide()
		case ev.Key() == tcell.KeyDown, ev.Rune() == 'j':
			a.help.Scroll(1)
		case ev.Key() == tcell.KeyUp, ev.Rune() == 'k':
			a.help.Scroll(-1)
		}
		return
	}

	if a.picker.HandleKeyEvent(ev) {
		return
	}

	if a.diffView.IsVisible() {
		switch ev.Rune() {
		case 'r':
			a.dispatch(a.detail.Reload())
			a.diffView.Refresh()
		case ':':
			a.command.Start()
		case '?':
			a.help.Toggle()
		default:
			a.diffView.HandleKeyEvent(ev)
		}
		return
	}

	a.handleKeypress(ev)
}

// filterCompany applies a company filter chosen in the picker or prompt
func (a *App) filterCompany(company string) {
	a.dispatch(a.list.SetCompany(company))
	if company == "" {
		a.SetStatus("Showing all companies")
	} else {
		a.SetStatus("Company: " + company)
	}
}

// openDiff shows the diff screen for the change with id
func (a *App) openDiff(id string) {
	a.dispatch(a.detail.Open(id))
	a.diffView.Show()
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusErr = false
	a.statusTime = time.Now()
	a.messages.AddMessage(msg)
}

// SetError sets an error status message
func (a *App) SetError(msg string) {
	a.statusMsg = msg
	a.statusErr = true
	a.statusTime = time.Now()
	a.messages.AddError(msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
	if debug {
		a.log.SetLevel(logrus.DebugLevel)
	}
}
