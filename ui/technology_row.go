package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/technology"
)

// TechnologyRow is the list entry of a technology.
type TechnologyRow struct {
	row       *gtk.ListBoxRow
	icon      *gtk.Image
	name      *gtk.Label
	status    *gtk.Label
	destroyed bool
}

// NewTechnologyRow builds the row for t.
func NewTechnologyRow(t *technology.Technology) *TechnologyRow {
	r := &TechnologyRow{}

	box := gtk.NewBox(gtk.OrientationHorizontal, common.MarginLarge)
	box.SetMarginTop(common.MarginSmall)
	box.SetMarginBottom(common.MarginSmall)
	box.SetMarginStart(common.MarginSmall)
	box.SetMarginEnd(common.MarginSmall)

	r.icon = gtk.NewImageFromIconName(t.Type().IconName())
	r.icon.SetPixelSize(24)
	r.icon.AddCSSClass("technology-icon")
	box.Append(r.icon)

	textBox := gtk.NewBox(gtk.OrientationVertical, 2)
	textBox.SetHExpand(true)

	r.name = gtk.NewLabel("")
	r.name.SetXAlign(0)
	r.name.AddCSSClass("technology-name")
	textBox.Append(r.name)

	r.status = gtk.NewLabel("")
	r.status.SetXAlign(0)
	r.status.AddCSSClass("caption")
	textBox.Append(r.status)

	box.Append(textBox)

	r.row = gtk.NewListBoxRow()
	r.row.SetChild(box)
	r.row.ConnectDestroy(func() {
		r.destroyed = true
	})

	r.Refresh(t)
	return r
}

// Valid reports whether the GTK row is still alive.
func (r *TechnologyRow) Valid() bool {
	return r.row != nil && !r.destroyed
}

// Refresh re-renders the row from t.
func (r *TechnologyRow) Refresh(t *technology.Technology) {
	if !r.Valid() {
		return
	}
	r.name.SetText(t.Name())
	r.status.SetText(statusText(t))

	for _, class := range []string{"status-connected", "status-on", "status-off"} {
		r.status.RemoveCSSClass(class)
	}
	r.status.AddCSSClass(statusClass(t))
}

func statusText(t *technology.Technology) string {
	switch {
	case t.Connected():
		return "Connected"
	case t.Powered():
		return "On"
	default:
		return "Off"
	}
}

func statusClass(t *technology.Technology) string {
	switch {
	case t.Connected():
		return "status-connected"
	case t.Powered():
		return "status-on"
	default:
		return "status-off"
	}
}
