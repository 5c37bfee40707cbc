// Package connmantest provides an in-memory ConnMan daemon for tests.
package connmantest

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/connman"
)

// Technology describes one technology served by the fake daemon.
type Technology struct {
	Path       dbus.ObjectPath
	Properties map[string]dbus.Variant
}

// NewTechnology returns a technology with the given type and name, powered off.
func NewTechnology(path, typ, name string) Technology {
	return Technology{
		Path: dbus.ObjectPath(path),
		Properties: map[string]dbus.Variant{
			connman.PropName:      dbus.MakeVariant(name),
			connman.PropType:      dbus.MakeVariant(typ),
			connman.PropPowered:   dbus.MakeVariant(false),
			connman.PropConnected: dbus.MakeVariant(false),
		},
	}
}

// Call records one method invocation on a fake proxy.
type Call struct {
	Path   dbus.ObjectPath
	Method string
	Args   []interface{}
}

// Daemon is a fake ConnMan reachable through Dial.
type Daemon struct {
	mu           sync.Mutex
	technologies []Technology
	proxies      []*Proxy
	calls        []Call
	conns        int

	// DialErr fails Dial when set.
	DialErr error
	// EnumerateErr fails GetTechnologies when set.
	EnumerateErr error
	// ProxyErr fails proxy construction for the listed paths.
	ProxyErr map[dbus.ObjectPath]error
	// CallErr fails the named method on every technology proxy.
	CallErr map[string]error
}

// NewDaemon returns a daemon serving technologies in order.
func NewDaemon(technologies ...Technology) *Daemon {
	return &Daemon{
		technologies: technologies,
		ProxyErr:     make(map[dbus.ObjectPath]error),
		CallErr:      make(map[string]error),
	}
}

// Dial implements connman.Dialer.
func (d *Daemon) Dial(ctx context.Context, bus connman.BusType) (connman.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.DialErr != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBusConnect, d.DialErr)
	}
	d.conns++
	return &Conn{daemon: d}, nil
}

// Proxies returns every proxy handed out so far.
func (d *Daemon) Proxies() []*Proxy {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Proxy(nil), d.proxies...)
}

// ProxyFor returns the most recent proxy bound to path.
func (d *Daemon) ProxyFor(path dbus.ObjectPath) *Proxy {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.proxies) - 1; i >= 0; i-- {
		if d.proxies[i].path == path {
			return d.proxies[i]
		}
	}
	return nil
}

// Calls returns the recorded method calls.
func (d *Daemon) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Emit delivers a signal to every open proxy bound to path.
func (d *Daemon) Emit(path dbus.ObjectPath, signal string, body ...interface{}) {
	for _, p := range d.Proxies() {
		if p.path == path {
			p.emit(signal, body)
		}
	}
}

// EmitPropertyChanged delivers PropertyChanged(name, value) for path.
func (d *Daemon) EmitPropertyChanged(path dbus.ObjectPath, name string, value interface{}) {
	d.Emit(path, connman.SignalPropertyChanged, name, dbus.MakeVariant(value))
}

func (d *Daemon) technology(path dbus.ObjectPath) *Technology {
	for i := range d.technologies {
		if d.technologies[i].Path == path {
			return &d.technologies[i]
		}
	}
	return nil
}

// Conn is the fake connection returned by Daemon.Dial.
type Conn struct {
	daemon *Daemon
	mu     sync.Mutex
	closed bool
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Conn) Proxy(path dbus.ObjectPath, iface *introspect.Interface) (connman.Proxy, error) {
	if !path.IsValid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPath, path)
	}
	if iface == nil {
		return nil, fmt.Errorf("%w: no interface for %s", common.ErrInterfaceLoad, path)
	}
	d := c.daemon
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ProxyErr[path]; err != nil {
		return nil, err
	}
	p := &Proxy{daemon: d, path: path, iface: iface.Name, handlers: make(map[string][]connman.SignalHandler)}
	d.proxies = append(d.proxies, p)
	return p, nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Proxy is the fake proxy returned by Conn.Proxy.
type Proxy struct {
	daemon *Daemon
	path   dbus.ObjectPath
	iface  string

	mu       sync.Mutex
	handlers map[string][]connman.SignalHandler
	closed   bool
}

func (p *Proxy) Path() dbus.ObjectPath {
	return p.path
}

func (p *Proxy) Interface() string {
	return p.iface
}

// Closed reports whether Close was called.
func (p *Proxy) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Proxy) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	if p.Closed() {
		return nil, common.ErrProxyClosed
	}

	d := p.daemon
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Path: p.path, Method: method, Args: args})

	switch p.iface {
	case common.ManagerInterface:
		return d.managerCall(method)
	case common.TechnologyInterface:
		if err := d.CallErr[method]; err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrRemoteCall, err)
		}
		return d.technologyCall(p.path, method, args)
	}
	return nil, fmt.Errorf("%w: unknown interface %s", common.ErrRemoteCall, p.iface)
}

func (d *Daemon) managerCall(method string) ([]interface{}, error) {
	if method != connman.MethodGetTechnologies {
		return nil, fmt.Errorf("%w: manager has no method %s", common.ErrRemoteCall, method)
	}
	if d.EnumerateErr != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteCall, d.EnumerateErr)
	}

	// Structs arrive from the wire as []interface{}.
	reply := make([][]interface{}, 0, len(d.technologies))
	for _, t := range d.technologies {
		props := make(map[string]dbus.Variant, len(t.Properties))
		for k, v := range t.Properties {
			props[k] = v
		}
		reply = append(reply, []interface{}{t.Path, props})
	}
	return []interface{}{reply}, nil
}

func (d *Daemon) technologyCall(path dbus.ObjectPath, method string, args []interface{}) ([]interface{}, error) {
	t := d.technology(path)
	if t == nil {
		return nil, fmt.Errorf("%w: no technology at %s", common.ErrRemoteCall, path)
	}

	switch method {
	case connman.MethodGetProperties:
		return []interface{}{t.Properties}, nil
	case connman.MethodSetProperty:
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: SetProperty takes 2 arguments", common.ErrRemoteCall)
		}
		name, _ := args[0].(string)
		value, ok := args[1].(dbus.Variant)
		if !ok {
			return nil, fmt.Errorf("%w: SetProperty value must be a variant", common.ErrRemoteCall)
		}
		t.Properties[name] = value
		return nil, nil
	case connman.MethodScan:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: technology has no method %s", common.ErrRemoteCall, method)
}

func (p *Proxy) Subscribe(signal string, handler connman.SignalHandler) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return common.ErrProxyClosed
	}
	p.handlers[signal] = append(p.handlers[signal], handler)
	return nil
}

func (p *Proxy) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.handlers = make(map[string][]connman.SignalHandler)
	return nil
}

func (p *Proxy) emit(signal string, body []interface{}) {
	p.mu.Lock()
	handlers := append([]connman.SignalHandler(nil), p.handlers[signal]...)
	p.mu.Unlock()
	for _, h := range handlers {
		h(body)
	}
}
