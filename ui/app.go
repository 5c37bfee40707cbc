package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/config"
	"github.com/yllada/connman-gtk/connman"
	"github.com/yllada/connman-gtk/keyring"
	"github.com/yllada/connman-gtk/technology"
)

// remoteCallTimeout bounds user-triggered bus calls; it matches the D-Bus
// default reply timeout.
const remoteCallTimeout = 25 * time.Second

// Options configures an Application.
type Options struct {
	Config  *config.Config
	Version string
	Bus     connman.BusType
	// Dial overrides the bus dialer; connman.Connect when nil.
	Dial connman.Dialer
}

// Application represents the main application
type Application struct {
	app       *adw.Application
	config    *config.Config
	version   string
	bus       connman.BusType
	dial      connman.Dialer
	secrets   common.SecretStore
	notifier  *Notifier
	window    *MainWindow
	tray      *TrayIndicator
	registry  *technology.Registry
	populator *technology.Populator

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApplication creates a new application
func NewApplication(opts Options) *Application {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	application := &Application{
		app:      adw.NewApplication(common.AppID, gio.ApplicationFlagsNone),
		config:   cfg,
		version:  opts.Version,
		bus:      opts.Bus,
		dial:     opts.Dial,
		secrets:  keyring.New(),
		notifier: NewNotifier(common.AppName),
		ctx:      ctx,
		cancel:   cancel,
	}

	application.app.ConnectActivate(application.onActivate)
	application.app.ConnectShutdown(application.onShutdown)

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// dispatch runs fn on the GTK main loop.
func dispatch(fn func()) {
	glib.IdleAdd(fn)
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	if a.window != nil {
		a.showWindow()
		return
	}

	a.ApplyTheme(a.config.Theme)
	a.setupAppIcon()
	LoadStyles()

	policy, err := technology.ParseDuplicatePolicy(a.config.DuplicatePolicy)
	if err != nil {
		common.LogWarn("%v, using %s", err, policy)
	}
	a.registry = technology.NewRegistry(&widgetFactory{app: a}, policy)

	a.window = NewMainWindow(a)

	a.populator = technology.NewPopulator(technology.PopulatorConfig{
		Dial:     a.dial,
		Bus:      a.bus,
		Registry: a.registry,
		List:     a.window.list,
		Notebook: a.window.notebook,
		Dispatch: dispatch,
	})
	a.populator.OnStateChange(a.onStateChange)
	a.populator.OnEntry(a.onEntry)

	if a.config.ShowTray {
		a.tray = NewTrayIndicator(a)
		go a.tray.Run()
	}

	a.window.Show()
	a.populator.Start(a.ctx)
}

func (a *Application) onStateChange(state technology.State, err error) {
	a.window.SetState(state, err)
	if state != technology.StateFailed || err == nil {
		return
	}

	var stageErr *connman.StageError
	message := err.Error()
	if errors.As(err, &stageErr) && stageErr.Stage == connman.StageConnect {
		message = "The network daemon is not reachable on the " + a.bus.String() + " bus"
	}
	if a.config.ShowNotifications {
		go a.notifier.NotifyError(common.AppName, message)
	}
}

func (a *Application) onEntry(t *technology.Technology) {
	a.window.AddTechnology(t)
	if page, ok := t.Page().(*TechnologyPage); ok {
		page.loadPassphrase()
	}
	if a.tray != nil {
		a.tray.AddTechnology(t)
	}
	t.OnChange(a.onTechnologyChange)
}

func (a *Application) onTechnologyChange(t *technology.Technology, property string) {
	if a.tray != nil {
		a.tray.Update(t)
	}
	if property != connman.PropConnected || !a.config.ShowNotifications {
		return
	}
	name := t.Name()
	if t.Connected() {
		go a.notifier.NotifyConnected(name)
	} else {
		go a.notifier.NotifyDisconnected(name)
	}
}

// onShutdown releases bus resources before the process exits.
func (a *Application) onShutdown() {
	a.cancel()
	if a.populator != nil {
		if err := a.populator.Shutdown(); err != nil {
			common.LogWarn("Shutdown: %v", err)
		}
	}
	if a.tray != nil {
		a.tray.Quit()
	}
	common.LogInfo("Application shut down")
}

// runAsync runs a bus call off the main thread. Failures are logged and
// shown as a toast; onError then runs on the main thread.
func (a *Application) runAsync(action string, fn func(ctx context.Context) error, onError func()) {
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, remoteCallTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			common.LogError("%s failed: %v", action, err)
			dispatch(func() {
				if a.window != nil {
					a.window.ShowToast(action + " failed")
				}
				if onError != nil {
					onError()
				}
			})
		}
	}()
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// GTK4 looks for theme subdirectories (like "hicolor") inside these paths
	if execPath, err := os.Executable(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(filepath.Dir(execPath), "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName("preferences-system-network")
}

// GetConfig returns the configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// GetVersion returns the application version
func (a *Application) GetVersion() string {
	return a.version
}

// ApplyTheme applies the specified theme to the application.
// Supported values: "auto" (system default), "light", "dark"
func (a *Application) ApplyTheme(theme string) {
	manager := adw.StyleManagerGetDefault()
	if manager == nil {
		return
	}

	switch theme {
	case common.ThemeLight:
		manager.SetColorScheme(adw.ColorSchemeForceLight)
	case common.ThemeDark:
		manager.SetColorScheme(adw.ColorSchemeForceDark)
	default:
		manager.SetColorScheme(adw.ColorSchemeDefault)
	}
}

// showWindow shows the main window
func (a *Application) showWindow() {
	if a.window != nil {
		a.window.window.Present()
	}
}

// Quit closes the application
func (a *Application) Quit() {
	a.app.Quit()
}

// RequestQuit quits from any goroutine.
func (a *Application) RequestQuit() {
	dispatch(a.Quit)
}
