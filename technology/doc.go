// Package technology keeps the daemon's technologies and their widgets in
// step.
//
// A Registry holds at most one Technology per Type. Each entry owns the bus
// proxy of its daemon object and references a list Row and a notebook Page
// built by a WidgetFactory. Once an entry is inserted into the shared List
// and Notebook its page index is fixed, and the Registry remembers which
// Row leads to which page so Binding can turn a row selection into a page
// switch without looking at the widget itself.
//
// Populator drives the whole sequence: connect, discover, then create,
// register and insert one entry per discovered object in daemon order.
//
// Registry, Binding and the widget interfaces are not safe for concurrent
// use; they belong to the UI thread. Work that finishes on other goroutines
// is handed back through a common.Dispatcher.
package technology
