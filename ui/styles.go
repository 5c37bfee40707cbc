// Package ui provides the graphical user interface for Network Settings.
// This file contains the CSS styles for the technology list and pages.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// appCSS uses theme-aware colors that work with system dark/light mode.
const appCSS = `
/* ============================================
   Network Settings - UI Styles (GTK4)
   Theme-aware styles
   ============================================ */

/* Technology list */
.technology-list > row {
    border-radius: 8px;
    margin: 3px 6px;
}

.technology-list > row:selected {
    background-color: alpha(@accent_bg_color, 0.2);
}

.technology-name {
    font-weight: 600;
    font-size: 14px;
}

.technology-icon {
    -gtk-icon-style: symbolic;
}

/* Settings pages */
.technology-page .card {
    border-radius: 12px;
}

.settings-title {
    font-weight: 500;
}

/* Status Labels */
.status-connected {
    color: #2ec27e;
    font-weight: 600;
}

.status-on {
    color: #3584e4;
}

.status-off {
    opacity: 0.6;
}

/* Preferences */
.preferences-card {
    border: 1px solid alpha(currentColor, 0.15);
}

/* Status Bar */
.status-bar {
    border-top: 1px solid alpha(currentColor, 0.15);
    padding: 6px 12px;
    opacity: 0.8;
}

/* Entry fields */
entry {
    border-radius: 6px;
    min-height: 34px;
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
