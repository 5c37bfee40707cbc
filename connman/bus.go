package connman

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/yllada/connman-gtk/common"
)

// BusType selects the message bus to connect to.
type BusType int

const (
	// SystemBus is the bus ConnMan is normally reachable on.
	SystemBus BusType = iota
	// SessionBus is used when running against a development daemon.
	SessionBus
)

// String returns the configuration name of the bus.
func (b BusType) String() string {
	switch b {
	case SessionBus:
		return common.BusSession
	default:
		return common.BusSystem
	}
}

// ParseBusType converts a configuration value into a BusType.
func ParseBusType(s string) (BusType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case common.BusSystem, "":
		return SystemBus, nil
	case common.BusSession:
		return SessionBus, nil
	default:
		return SystemBus, fmt.Errorf("unknown bus %q", s)
	}
}

// SignalHandler receives the body of a subscribed signal.
type SignalHandler func(body []interface{})

// Proxy is a handle on one remote object and one of its interfaces.
type Proxy interface {
	// Path returns the object path the proxy is bound to.
	Path() dbus.ObjectPath
	// Interface returns the interface name the proxy calls into.
	Interface() string
	// Call invokes a method of the interface and returns the reply body.
	Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error)
	// Subscribe registers handler for a signal of the interface.
	Subscribe(signal string, handler SignalHandler) error
	// Close drops the proxy's signal subscriptions.
	Close() error
}

// Conn is a live bus connection.
type Conn interface {
	// Proxy binds a proxy to path on the ConnMan service.
	Proxy(path dbus.ObjectPath, iface *introspect.Interface) (Proxy, error)
	// Close terminates the connection.
	Close() error
}

// Dialer opens a Conn. Connect is the production Dialer; tests substitute
// fakes.
type Dialer func(ctx context.Context, bus BusType) (Conn, error)

// Connect opens a private connection to the requested bus.
func Connect(ctx context.Context, bus BusType) (Conn, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	switch bus {
	case SessionBus:
		conn, err = dbus.ConnectSessionBus(dbus.WithContext(ctx))
	default:
		conn, err = dbus.ConnectSystemBus(dbus.WithContext(ctx))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s bus: %v", common.ErrBusConnect, bus, err)
	}

	common.LogDebug("Connected to %s bus as %v", bus, conn.Names())
	return newBusConn(conn), nil
}

// ConnectAsync runs dial in the background. Errors are reported as a
// StageError for StageConnect.
func ConnectAsync(ctx context.Context, dial Dialer, bus BusType) *Future[Conn] {
	if dial == nil {
		dial = Connect
	}
	return Go(ctx, func(ctx context.Context) (Conn, error) {
		conn, err := dial(ctx, bus)
		if err != nil {
			return nil, &StageError{Stage: StageConnect, Err: err}
		}
		return conn, nil
	})
}

type signalKey struct {
	path dbus.ObjectPath
	name string
}

type subscription struct {
	proxy   *busProxy
	handler SignalHandler
}

// busConn routes incoming signals to the proxies that subscribed to them.
type busConn struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	done    chan struct{}

	mu       sync.Mutex
	handlers map[signalKey][]subscription
	closed   bool
}

func newBusConn(conn *dbus.Conn) *busConn {
	c := &busConn{
		conn:     conn,
		signals:  make(chan *dbus.Signal, 16),
		done:     make(chan struct{}),
		handlers: make(map[signalKey][]subscription),
	}
	conn.Signal(c.signals)
	go c.dispatchSignals()
	return c
}

func (c *busConn) dispatchSignals() {
	for {
		select {
		case <-c.done:
			return
		case sig, ok := <-c.signals:
			if !ok {
				return
			}
			c.mu.Lock()
			subs := append([]subscription(nil), c.handlers[signalKey{sig.Path, sig.Name}]...)
			c.mu.Unlock()

			for _, s := range subs {
				s.handler(sig.Body)
			}
		}
	}
}

func (c *busConn) Proxy(path dbus.ObjectPath, iface *introspect.Interface) (Proxy, error) {
	if !path.IsValid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPath, path)
	}
	if iface == nil {
		return nil, fmt.Errorf("%w: no interface for %s", common.ErrInterfaceLoad, path)
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("%w: connection closed", common.ErrBusConnect)
	}

	return &busProxy{
		conn:  c,
		obj:   c.conn.Object(common.ConnManService, path),
		path:  path,
		iface: iface,
	}, nil
}

func (c *busConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.handlers = make(map[signalKey][]subscription)
	c.mu.Unlock()

	close(c.done)
	c.conn.RemoveSignal(c.signals)
	return c.conn.Close()
}

func (c *busConn) subscribe(p *busProxy, signal string, handler SignalHandler) error {
	opts := p.matchOptions(signal)
	if err := c.conn.AddMatchSignal(opts...); err != nil {
		return fmt.Errorf("%w: add match for %s: %v", common.ErrRemoteCall, signal, err)
	}

	key := signalKey{p.path, p.iface.Name + "." + signal}
	c.mu.Lock()
	c.handlers[key] = append(c.handlers[key], subscription{proxy: p, handler: handler})
	c.mu.Unlock()
	return nil
}

func (c *busConn) unsubscribeAll(p *busProxy, signals []string) error {
	c.mu.Lock()
	for _, signal := range signals {
		key := signalKey{p.path, p.iface.Name + "." + signal}
		kept := c.handlers[key][:0]
		for _, s := range c.handlers[key] {
			if s.proxy != p {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(c.handlers, key)
		} else {
			c.handlers[key] = kept
		}
	}
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return nil
	}

	var firstErr error
	for _, signal := range signals {
		if err := c.conn.RemoveMatchSignal(p.matchOptions(signal)...); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// busProxy is the godbus-backed Proxy.
type busProxy struct {
	conn  *busConn
	obj   dbus.BusObject
	path  dbus.ObjectPath
	iface *introspect.Interface

	mu         sync.Mutex
	subscribed []string
	closed     bool
}

func (p *busProxy) Path() dbus.ObjectPath {
	return p.path
}

func (p *busProxy) Interface() string {
	return p.iface.Name
}

func (p *busProxy) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, common.ErrProxyClosed
	}

	if !hasMethod(p.iface, method) {
		return nil, fmt.Errorf("%w: %s has no method %s", common.ErrRemoteCall, p.iface.Name, method)
	}

	call := p.obj.CallWithContext(ctx, p.iface.Name+"."+method, 0, args...)
	if call.Err != nil {
		return nil, fmt.Errorf("%w: %s.%s on %s: %v", common.ErrRemoteCall, p.iface.Name, method, p.path, call.Err)
	}
	return call.Body, nil
}

func (p *busProxy) Subscribe(signal string, handler SignalHandler) error {
	if !hasSignal(p.iface, signal) {
		return fmt.Errorf("%w: %s has no signal %s", common.ErrRemoteCall, p.iface.Name, signal)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return common.ErrProxyClosed
	}
	p.subscribed = append(p.subscribed, signal)
	p.mu.Unlock()

	return p.conn.subscribe(p, signal, handler)
}

func (p *busProxy) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	signals := p.subscribed
	p.subscribed = nil
	p.mu.Unlock()

	return p.conn.unsubscribeAll(p, signals)
}

func (p *busProxy) matchOptions(signal string) []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchObjectPath(p.path),
		dbus.WithMatchInterface(p.iface.Name),
		dbus.WithMatchMember(signal),
	}
}
