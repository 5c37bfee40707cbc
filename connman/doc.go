// Package connman is the client side of the ConnMan D-Bus API used by
// Network Settings.
//
// It covers the two asynchronous stages the UI waits on before any
// technology can be shown:
//
//   - Bus Connection Manager: ConnectAsync opens a private connection to the
//     system (or session) bus and resolves a Future with a Conn.
//   - Technology Discovery: Discover obtains the manager proxy at "/" and
//     calls GetTechnologies, returning one TechnologyObject per technology
//     in the order the daemon reported them.
//
// Interface definitions are embedded introspection documents parsed with
// the godbus introspect package; a Proxy refuses methods and signals its
// interface does not declare.
//
// # Threading
//
// Proxies are safe for concurrent use. Signal handlers run on the
// connection's dispatch goroutine, never on the GTK main thread; callers
// that touch widgets must hand the work to glib.IdleAdd.
package connman
