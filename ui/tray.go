// Package ui provides the graphical user interface for Network Settings.
// This file contains the system tray indicator functionality.
package ui

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/systray"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/technology"
)

// Pre-generated icons for performance.
var (
	iconOnline  = GenerateOnlineIcon()
	iconOffline = GenerateOfflineIcon()
)

// TrayIndicator manages the system tray icon and menu.
// It offers one power toggle per technology without opening the main window.
type TrayIndicator struct {
	app *Application

	mu         sync.Mutex
	ready      bool
	pending    []*technology.Technology
	techMenu   *systray.MenuItem
	statusItem *systray.MenuItem
	items      map[technology.Type]*systray.MenuItem
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{
		app:   app,
		items: make(map[technology.Type]*systray.MenuItem),
	}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit removes the tray icon.
func (t *TrayIndicator) Quit() {
	systray.Quit()
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetIcon(iconOffline)
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName + " - Offline")

	t.statusItem = systray.AddMenuItem("○  Offline", "Network status")
	t.statusItem.Disable()

	systray.AddSeparator()

	// Technologies arrive after the menu is built; they live in a submenu
	// so they stay above the app section.
	t.techMenu = systray.AddMenuItem("Technologies", "Turn technologies on or off")

	systray.AddSeparator()

	showItem := systray.AddMenuItem("Open "+common.AppName, "Show main window")
	go func() {
		for range showItem.ClickedCh {
			dispatch(t.app.showWindow)
		}
	}()

	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			dispatch(t.app.Quit)
		}
	}()

	t.mu.Lock()
	t.ready = true
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()

	dispatch(func() {
		for _, tech := range pending {
			t.AddTechnology(tech)
		}
	})
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

// AddTechnology adds a power toggle for tech. Must run on the main thread.
func (t *TrayIndicator) AddTechnology(tech *technology.Technology) {
	t.mu.Lock()
	if !t.ready {
		t.pending = append(t.pending, tech)
		t.mu.Unlock()
		return
	}
	typ := tech.Type()
	item, exists := t.items[typ]
	if !exists {
		item = t.techMenu.AddSubMenuItemCheckbox(tech.Name(), "Power "+tech.Name(), tech.Powered())
		t.items[typ] = item
	}
	t.mu.Unlock()

	if !exists {
		go func() {
			for range item.ClickedCh {
				dispatch(func() { t.togglePower(typ) })
			}
		}()
	}
	t.Update(tech)
}

// togglePower flips the power state of the registered technology of typ.
// The registry is consulted so a replaced entry is toggled, not a stale one.
func (t *TrayIndicator) togglePower(typ technology.Type) {
	tech := t.app.registry.Lookup(typ)
	if tech == nil {
		return
	}
	powered := !tech.Powered()
	t.app.runAsync(fmt.Sprintf("Switching %s", tech.Name()), func(ctx context.Context) error {
		return tech.SetPowered(ctx, powered)
	}, func() { t.Update(tech) })
}

// Update reflects tech in its menu item and refreshes the tray icon.
// Must run on the main thread.
func (t *TrayIndicator) Update(tech *technology.Technology) {
	t.mu.Lock()
	item := t.items[tech.Type()]
	ready := t.ready
	t.mu.Unlock()
	if !ready {
		return
	}

	if item != nil {
		item.SetTitle(tech.Name())
		if tech.Powered() {
			item.Check()
		} else {
			item.Uncheck()
		}
	}

	var online []string
	for _, entry := range t.app.registry.Entries() {
		if entry.Connected() {
			online = append(online, entry.Name())
		}
	}
	if len(online) == 0 {
		systray.SetIcon(iconOffline)
		systray.SetTooltip(common.AppName + " - Offline")
		t.statusItem.SetTitle("○  Offline")
		return
	}
	systray.SetIcon(iconOnline)
	systray.SetTooltip(fmt.Sprintf("%s - Connected via %s", common.AppName, online[0]))
	t.statusItem.SetTitle(fmt.Sprintf("●  Connected: %s", online[0]))
}
