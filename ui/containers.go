package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/technology"
)

// technologyList adapts the GTK list box to technology.List. Rows are kept
// in insertion order so a selected GTK row resolves by its index.
type technologyList struct {
	box  *gtk.ListBox
	rows []*TechnologyRow
}

func (l *technologyList) AppendRow(row technology.Row) {
	r, ok := row.(*TechnologyRow)
	if !ok {
		common.LogError("List: unexpected row type %T", row)
		return
	}
	l.box.Append(r.row)
	l.rows = append(l.rows, r)
}

// rowFor returns the technology row behind a GTK row, or nil when the
// selection was cleared or the row is unknown.
func (l *technologyList) rowFor(row *gtk.ListBoxRow) technology.Row {
	if row == nil {
		return nil
	}
	index := row.Index()
	if index < 0 || index >= len(l.rows) {
		return nil
	}
	return l.rows[index]
}

// technologyNotebook adapts the GTK notebook to technology.Notebook.
type technologyNotebook struct {
	nb *gtk.Notebook
}

func (n *technologyNotebook) AppendPage(page technology.Page) int {
	p, ok := page.(*TechnologyPage)
	if !ok {
		common.LogError("Notebook: unexpected page type %T", page)
		return -1
	}
	return n.nb.AppendPage(p.box, nil)
}

func (n *technologyNotebook) SetCurrentPage(index int) {
	n.nb.SetCurrentPage(index)
}

func (n *technologyNotebook) CurrentPage() int {
	return n.nb.CurrentPage()
}

func (n *technologyNotebook) NPages() int {
	return n.nb.NPages()
}

// widgetFactory builds GTK widgets for new registry entries.
type widgetFactory struct {
	app *Application
}

func (f *widgetFactory) NewRow(t *technology.Technology) technology.Row {
	return NewTechnologyRow(t)
}

func (f *widgetFactory) NewPage(t *technology.Technology) technology.Page {
	return NewTechnologyPage(f.app, t)
}
