// Package common provides shared constants, types, and utilities
// used across the Network Settings application.
package common

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "net.connman.gtk"
	// AppName is the display name of the application.
	AppName = "Network Settings"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "connman-gtk"
)

// File names used by the application.
const (
	ConfigFileName = "config.yaml"
	LogFileName    = "connman-gtk.log"
)

// ConnMan bus names.
const (
	// ConnManService is the well-known bus name of the daemon.
	ConnManService = "net.connman"
	// ManagerPath is the object path of the manager object.
	ManagerPath = "/"
	// ManagerInterface is the interface implemented by the manager object.
	ManagerInterface = "net.connman.Manager"
	// TechnologyInterface is the interface implemented by each technology object.
	TechnologyInterface = "net.connman.Technology"
)

// UI constants.
const (
	// DefaultWindowWidth is the default main window width.
	DefaultWindowWidth = 800
	// DefaultWindowHeight is the default main window height.
	DefaultWindowHeight = 600
	// MinWindowWidth is the smallest width accepted from configuration.
	MinWindowWidth = 400
	// MinWindowHeight is the smallest height accepted from configuration.
	MinWindowHeight = 300
	// ListWidth is the width requested for the technology list.
	ListWidth = 200
	// MarginLarge is the outer margin of the window content.
	MarginLarge = 12
	// MarginSmall separates widgets inside a settings page.
	MarginSmall = 6
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)

// Theme values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Bus names accepted in configuration and on the command line.
const (
	BusSystem  = "system"
	BusSession = "session"
)

// Duplicate technology policies.
const (
	DuplicateReject  = "reject"
	DuplicateReplace = "replace"
)
