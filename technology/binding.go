package technology

// Binding switches the notebook to the page of the selected row.
type Binding struct {
	registry *Registry
	notebook Notebook
}

// NewBinding returns a Binding over registry and notebook.
func NewBinding(registry *Registry, notebook Notebook) *Binding {
	return &Binding{registry: registry, notebook: notebook}
}

// RowSelected shows the page recorded for row. Nil rows, rows whose widget
// is gone and rows the registry never inserted are ignored.
func (b *Binding) RowSelected(row Row) {
	if row == nil || !row.Valid() {
		return
	}
	index, ok := b.registry.PageFor(row)
	if !ok {
		return
	}
	b.notebook.SetCurrentPage(index)
}
