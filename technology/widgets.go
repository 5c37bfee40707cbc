package technology

// Row is the list entry of a technology.
type Row interface {
	// Valid reports whether the row still refers to a live widget.
	Valid() bool
	// Refresh re-renders the row from t. t becomes the technology the row
	// acts on.
	Refresh(t *Technology)
}

// Page is the settings page of a technology.
type Page interface {
	// Refresh re-renders the page from t. t becomes the technology the page
	// acts on.
	Refresh(t *Technology)
}

// List is the shared container rows are appended to.
type List interface {
	AppendRow(row Row)
}

// Notebook is the shared container pages are appended to.
type Notebook interface {
	// AppendPage adds page at the end and returns its position.
	AppendPage(page Page) int
	SetCurrentPage(index int)
	CurrentPage() int
	NPages() int
}

// WidgetFactory builds the widgets of a new entry.
type WidgetFactory interface {
	NewRow(t *Technology) Row
	NewPage(t *Technology) Page
}
