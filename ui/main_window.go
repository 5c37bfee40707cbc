package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/technology"
)

const (
	stackEmpty   = "empty"
	stackContent = "content"
)

// MainWindow represents the main application window.
type MainWindow struct {
	app         *Application
	window      *gtk.ApplicationWindow
	headerBar   *gtk.HeaderBar
	toasts      *adw.ToastOverlay
	stack       *gtk.Stack
	emptyPage   *adw.StatusPage
	list        *technologyList
	notebook    *technologyNotebook
	binding     *technology.Binding
	statusLabel *gtk.Label
}

// NewMainWindow creates a new main window.
func NewMainWindow(app *Application) *MainWindow {
	mw := &MainWindow{
		app: app,
	}

	mw.window = gtk.NewApplicationWindow(&app.app.Application)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(app.config.WindowWidth, app.config.WindowHeight)
	mw.window.SetIconName("preferences-system-network")

	// Closing hides the window while the tray keeps the app alive
	mw.window.SetHideOnClose(app.config.ShowTray)

	mw.createLayout()
	mw.binding = technology.NewBinding(app.registry, mw.notebook)

	return mw
}

// createLayout creates the window layout.
func (mw *MainWindow) createLayout() {
	mw.headerBar = gtk.NewHeaderBar()

	menuButton := gtk.NewMenuButton()
	menuButton.SetIconName("open-menu-symbolic")
	menuButton.SetTooltipText("Menu")
	menuButton.SetMenuModel(mw.createMenu())
	mw.headerBar.PackEnd(menuButton)

	mw.window.SetTitlebar(mw.headerBar)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	mw.stack = gtk.NewStack()
	mw.stack.SetVExpand(true)
	mw.stack.SetTransitionType(gtk.StackTransitionTypeCrossfade)

	mw.emptyPage = adw.NewStatusPage()
	mw.emptyPage.SetIconName("network-workgroup-symbolic")
	mw.emptyPage.SetTitle("No Technologies")
	mw.emptyPage.SetDescription("Waiting for the network daemon...")
	mw.stack.AddNamed(mw.emptyPage, stackEmpty)

	mw.stack.AddNamed(mw.createContent(), stackContent)
	mw.stack.SetVisibleChildName(stackEmpty)

	mainBox.Append(mw.stack)
	mw.createStatusBar(mainBox)

	mw.toasts = adw.NewToastOverlay()
	mw.toasts.SetChild(mainBox)
	mw.window.SetChild(mw.toasts)
}

// createContent builds the list on the left and the page notebook on the right.
func (mw *MainWindow) createContent() gtk.Widgetter {
	grid := gtk.NewGrid()
	grid.SetColumnSpacing(common.MarginLarge)
	grid.SetMarginTop(common.MarginLarge)
	grid.SetMarginBottom(common.MarginLarge)
	grid.SetMarginStart(common.MarginLarge)
	grid.SetMarginEnd(common.MarginLarge)

	listBox := gtk.NewListBox()
	listBox.SetSelectionMode(gtk.SelectionBrowse)
	listBox.AddCSSClass("technology-list")
	mw.list = &technologyList{box: listBox}
	listBox.ConnectRowSelected(func(row *gtk.ListBoxRow) {
		mw.binding.RowSelected(mw.list.rowFor(row))
	})

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scrolled.SetVExpand(true)
	scrolled.SetChild(listBox)

	frame := gtk.NewFrame("")
	frame.SetSizeRequest(common.ListWidth, -1)
	frame.SetChild(scrolled)
	grid.Attach(frame, 0, 0, 1, 1)

	nb := gtk.NewNotebook()
	nb.SetShowTabs(false)
	nb.SetShowBorder(false)
	nb.SetHExpand(true)
	nb.SetVExpand(true)
	mw.notebook = &technologyNotebook{nb: nb}
	grid.Attach(nb, 1, 0, 1, 1)

	return grid
}

// createMenu creates the application menu.
func (mw *MainWindow) createMenu() *gio.Menu {
	menu := gio.NewMenu()

	settingsSection := gio.NewMenu()
	settingsSection.Append("Preferences", "app.preferences")
	menu.AppendSection("", &settingsSection.MenuModel)

	appSection := gio.NewMenu()
	appSection.Append("About", "app.about")
	appSection.Append("Quit", "app.quit")
	menu.AppendSection("", &appSection.MenuModel)

	mw.setupActions()

	return menu
}

// setupActions configures menu actions.
func (mw *MainWindow) setupActions() {
	app := mw.app.app

	preferencesAction := gio.NewSimpleAction("preferences", nil)
	preferencesAction.ConnectActivate(func(_ *glib.Variant) {
		mw.onPreferences()
	})
	app.AddAction(preferencesAction)
	app.SetAccelsForAction("app.preferences", []string{"<Control>comma"})

	aboutAction := gio.NewSimpleAction("about", nil)
	aboutAction.ConnectActivate(func(_ *glib.Variant) {
		mw.onAbout()
	})
	app.AddAction(aboutAction)

	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(_ *glib.Variant) {
		mw.app.Quit()
	})
	app.AddAction(quitAction)
	app.SetAccelsForAction("app.quit", []string{"<Control>q"})
}

// createStatusBar creates the status bar.
func (mw *MainWindow) createStatusBar(parent *gtk.Box) {
	statusBar := gtk.NewBox(gtk.OrientationHorizontal, common.MarginLarge)
	statusBar.AddCSSClass("status-bar")

	mw.statusLabel = gtk.NewLabel(technology.StateDisconnected.String())
	mw.statusLabel.SetXAlign(0)
	statusBar.Append(mw.statusLabel)

	parent.Append(statusBar)
}

// Show displays the window.
func (mw *MainWindow) Show() {
	mw.window.Show()
}

// SetStatus updates the status text.
func (mw *MainWindow) SetStatus(text string) {
	if mw.statusLabel != nil {
		mw.statusLabel.SetText(text)
	}
}

// ShowToast shows a short message over the window content.
func (mw *MainWindow) ShowToast(message string) {
	toast := adw.NewToast(message)
	toast.SetTimeout(3)
	mw.toasts.AddToast(toast)
}

// SetState reflects a populator transition.
func (mw *MainWindow) SetState(state technology.State, err error) {
	mw.SetStatus(state.String())

	switch state {
	case technology.StateConnecting, technology.StateConnected, technology.StatePopulating:
		mw.emptyPage.SetDescription("Waiting for the network daemon...")
	case technology.StateReady:
		if mw.notebook.NPages() == 0 {
			mw.emptyPage.SetDescription("The network daemon reported no technologies")
		}
	case technology.StateFailed:
		mw.emptyPage.SetIconName("network-error-symbolic")
		mw.emptyPage.SetTitle("Network Daemon Unavailable")
		if err != nil {
			mw.emptyPage.SetDescription(err.Error())
			mw.SetStatus(fmt.Sprintf("%s: %v", state, err))
		}
		mw.ShowToast("Could not load technologies")
	}
}

// AddTechnology shows the content once the first technology is inserted.
func (mw *MainWindow) AddTechnology(t *technology.Technology) {
	if mw.stack.VisibleChildName() == stackContent {
		return
	}
	mw.stack.SetVisibleChildName(stackContent)
	if row, ok := t.Row().(*TechnologyRow); ok {
		mw.list.box.SelectRow(row.row)
	}
}

func (mw *MainWindow) onPreferences() {
	prefsDialog := NewPreferencesDialog(mw)
	prefsDialog.Show()
}

func (mw *MainWindow) onAbout() {
	about := gtk.NewAboutDialog()
	about.SetTransientFor(&mw.window.Window)
	about.SetModal(true)

	about.SetProgramName(common.AppName)
	about.SetLogoIconName("preferences-system-network")
	about.SetVersion(mw.app.version)
	about.SetComments("Manage ConnMan network technologies.")
	about.SetLicenseType(gtk.LicenseGPL20)

	about.Show()
}
