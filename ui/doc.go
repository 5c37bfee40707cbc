// Package ui provides the graphical user interface for Network Settings.
//
// This package implements the GTK4 and libadwaita front-end:
//
//   - Main window with the technology list and a tab-less notebook of pages
//   - Settings page per technology (power, scan, tethering)
//   - System tray indicator with a power toggle per technology
//   - Preferences dialog and desktop notifications
//
// # Architecture
//
// The UI is built on GTK4 using the gotk4 bindings. Key components:
//
//   - Application: libadwaita application lifecycle, owns the registry and
//     the populator
//   - MainWindow: window layout, list and notebook adapters, toasts
//   - TechnologyRow and TechnologyPage: the widgets behind technology.Row
//     and technology.Page
//   - TrayIndicator: System tray integration
//
// # Thread Safety
//
// GTK operations must execute on the main thread. Bus calls run on their
// own goroutines and report back through glib.IdleAdd, which is also the
// Dispatcher handed to the technology package.
//
// # File Organization
//
//   - app.go: Application lifecycle, theme and async helpers
//   - main_window.go: Main window layout and menu
//   - containers.go: technology.List and technology.Notebook adapters
//   - technology_row.go: list rows
//   - technology_page.go: settings pages
//   - tray.go: System tray indicator
//   - icons.go: Icon generation for tray
//   - styles.go: CSS styling
//   - notifications.go: Desktop notification integration
//   - preferences.go: Settings dialog
package ui
