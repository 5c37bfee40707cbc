package technology_test

import (
	"github.com/yllada/connman-gtk/technology"
)

type fakeRow struct {
	valid     bool
	refreshed int
	tech      *technology.Technology
}

func (r *fakeRow) Valid() bool { return r.valid }

func (r *fakeRow) Refresh(t *technology.Technology) {
	r.refreshed++
	r.tech = t
}

type fakePage struct {
	refreshed int
	tech      *technology.Technology
}

func (p *fakePage) Refresh(t *technology.Technology) {
	p.refreshed++
	p.tech = t
}

type fakeFactory struct{}

func (fakeFactory) NewRow(t *technology.Technology) technology.Row {
	return &fakeRow{valid: true, tech: t}
}

func (fakeFactory) NewPage(t *technology.Technology) technology.Page {
	return &fakePage{tech: t}
}

type fakeList struct {
	rows []technology.Row
}

func (l *fakeList) AppendRow(row technology.Row) {
	l.rows = append(l.rows, row)
}

type fakeNotebook struct {
	pages   []technology.Page
	current int
	sets    int
}

func newFakeNotebook() *fakeNotebook {
	return &fakeNotebook{current: -1}
}

func (n *fakeNotebook) AppendPage(page technology.Page) int {
	n.pages = append(n.pages, page)
	if n.current < 0 {
		n.current = 0
	}
	return len(n.pages) - 1
}

func (n *fakeNotebook) SetCurrentPage(index int) {
	n.sets++
	if index >= 0 && index < len(n.pages) {
		n.current = index
	}
}

func (n *fakeNotebook) CurrentPage() int { return n.current }

func (n *fakeNotebook) NPages() int { return len(n.pages) }
