// Package ui provides the graphical user interface for Network Settings.
// This file contains the PreferencesDialog component for application settings.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/config"
)

// PreferencesDialog represents the preferences dialog.
type PreferencesDialog struct {
	window         *gtk.Window
	mainWindow     *MainWindow
	config         *config.Config
	notifySwitch   *gtk.Switch
	traySwitch     *gtk.Switch
	themeDropDown  *gtk.DropDown
	policyDropDown *gtk.DropDown
	themeIDs       []string
	policyIDs      []string
}

// NewPreferencesDialog creates a new preferences dialog.
func NewPreferencesDialog(mainWindow *MainWindow) *PreferencesDialog {
	pd := &PreferencesDialog{
		mainWindow: mainWindow,
		config:     mainWindow.app.config,
		themeIDs:   []string{common.ThemeAuto, common.ThemeLight, common.ThemeDark},
		policyIDs:  []string{common.DuplicateReject, common.DuplicateReplace},
	}

	pd.build()
	return pd
}

// build constructs the dialog UI.
func (pd *PreferencesDialog) build() {
	pd.window = gtk.NewWindow()
	pd.window.SetTitle("Preferences")
	pd.window.SetTransientFor(&pd.mainWindow.window.Window)
	pd.window.SetModal(true)
	pd.window.SetDefaultSize(480, 460)
	pd.window.SetResizable(false)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)

	// Appearance
	appearSection := pd.createSection("Appearance", "preferences-desktop-theme-symbolic")
	appearCard := pd.createCard()

	pd.themeDropDown = pd.createDropDown([]string{"System Default", "Light", "Dark"},
		indexOf(pd.themeIDs, pd.config.Theme))
	appearCard.Append(settingRow("Theme", "Choose the visual appearance of the application", pd.themeDropDown))

	appearSection.Append(appearCard)
	mainBox.Append(appearSection)

	// Desktop integration
	desktopSection := pd.createSection("Desktop", "preferences-system-notifications-symbolic")
	desktopCard := pd.createCard()

	pd.notifySwitch = gtk.NewSwitch()
	pd.notifySwitch.SetActive(pd.config.ShowNotifications)
	pd.notifySwitch.SetVAlign(gtk.AlignCenter)
	desktopCard.Append(settingRow(
		"Connection Alerts",
		"Show notifications when a technology connects or disconnects",
		pd.notifySwitch,
	))

	desktopCard.Append(cardSeparator())

	pd.traySwitch = gtk.NewSwitch()
	pd.traySwitch.SetActive(pd.config.ShowTray)
	pd.traySwitch.SetVAlign(gtk.AlignCenter)
	desktopCard.Append(settingRow(
		"System Tray",
		"Show a tray icon with power toggles (applies after restart)",
		pd.traySwitch,
	))

	desktopSection.Append(desktopCard)
	mainBox.Append(desktopSection)

	// Technologies
	techSection := pd.createSection("Technologies", "network-workgroup-symbolic")
	techCard := pd.createCard()

	pd.policyDropDown = pd.createDropDown([]string{"Keep first", "Use latest"},
		indexOf(pd.policyIDs, pd.config.DuplicatePolicy))
	techCard.Append(settingRow(
		"Duplicate Technologies",
		"Which one to show when the daemon reports two of the same type (applies after restart)",
		pd.policyDropDown,
	))

	techSection.Append(techCard)
	mainBox.Append(techSection)

	scrolled.SetChild(mainBox)
	rootBox.Append(scrolled)

	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(16)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(24)
	buttonBar.SetMarginEnd(24)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		pd.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.ConnectClicked(func() {
		pd.savePreferences()
		pd.window.Close()
	})
	buttonBar.Append(saveBtn)

	rootBox.Append(buttonBar)

	pd.window.SetChild(rootBox)
}

// createSection creates a section with icon and title.
func (pd *PreferencesDialog) createSection(title string, iconName string) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(18)
	icon.AddCSSClass("dim-label")
	headerBox.Append(icon)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	headerBox.Append(label)

	section.Append(headerBox)

	return section
}

// createCard creates a styled card container for settings.
func (pd *PreferencesDialog) createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	card.AddCSSClass("preferences-card")
	return card
}

func (pd *PreferencesDialog) createDropDown(labels []string, selected uint) *gtk.DropDown {
	dropDown := gtk.NewDropDown(gtk.NewStringList(labels), nil)
	dropDown.SetSelected(selected)
	dropDown.SetVAlign(gtk.AlignCenter)
	dropDown.AddCSSClass("flat")
	return dropDown
}

// indexOf returns the index of id in ids, or 0 if not found.
func indexOf(ids []string, id string) uint {
	for i, candidate := range ids {
		if candidate == id {
			return uint(i)
		}
	}
	return 0
}

// savePreferences saves the current preferences to the config file.
func (pd *PreferencesDialog) savePreferences() {
	pd.config.ShowNotifications = pd.notifySwitch.Active()
	pd.config.ShowTray = pd.traySwitch.Active()

	if idx := pd.themeDropDown.Selected(); int(idx) < len(pd.themeIDs) {
		pd.config.Theme = pd.themeIDs[idx]
	}
	if idx := pd.policyDropDown.Selected(); int(idx) < len(pd.policyIDs) {
		pd.config.DuplicatePolicy = pd.policyIDs[idx]
	}

	pd.mainWindow.app.ApplyTheme(pd.config.Theme)

	if err := pd.config.Save(); err != nil {
		common.LogError("Saving preferences: %v", err)
		pd.mainWindow.ShowToast("Could not save preferences")
		return
	}

	pd.mainWindow.ShowToast("Settings saved")
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.window.Show()
}
