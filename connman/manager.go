package connman

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/yllada/connman-gtk/common"
)

// TechnologyObject is one element of the GetTechnologies reply.
type TechnologyObject struct {
	Path       dbus.ObjectPath
	Properties map[string]dbus.Variant
}

// Manager wraps the proxy of the daemon's manager object.
type Manager struct {
	proxy Proxy
}

// NewManager binds a proxy to the manager object at "/".
func NewManager(conn Conn) (*Manager, error) {
	iface, err := ManagerInterface()
	if err != nil {
		return nil, err
	}

	proxy, err := conn.Proxy(common.ManagerPath, iface)
	if err != nil {
		return nil, fmt.Errorf("%w: manager proxy: %w", common.ErrRemoteCall, err)
	}
	return &Manager{proxy: proxy}, nil
}

// GetTechnologies enumerates the technologies known to the daemon.
func (m *Manager) GetTechnologies(ctx context.Context) ([]TechnologyObject, error) {
	body, err := m.proxy.Call(ctx, MethodGetTechnologies)
	if err != nil {
		return nil, err
	}

	var technologies []TechnologyObject
	if err := dbus.Store(body, &technologies); err != nil {
		return nil, fmt.Errorf("%w: decoding %s reply: %v", common.ErrRemoteCall, MethodGetTechnologies, err)
	}
	return technologies, nil
}

// Close releases the manager proxy.
func (m *Manager) Close() error {
	return m.proxy.Close()
}

// NewTechnologyProxy binds a proxy to the technology object at path.
func NewTechnologyProxy(conn Conn, path dbus.ObjectPath) (Proxy, error) {
	iface, err := TechnologyInterface()
	if err != nil {
		return nil, err
	}
	proxy, err := conn.Proxy(path, iface)
	if err != nil {
		return nil, fmt.Errorf("%w: technology proxy %s: %w", common.ErrRemoteCall, path, err)
	}
	return proxy, nil
}

// Discovery is the outcome of the discovery stage.
type Discovery struct {
	Conn         Conn
	Manager      *Manager
	Technologies []TechnologyObject
}

// Discover creates the manager proxy and enumerates technologies over conn.
// On failure the manager proxy is released; conn stays open.
func Discover(ctx context.Context, conn Conn) (*Discovery, error) {
	manager, err := NewManager(conn)
	if err != nil {
		return nil, err
	}

	technologies, err := manager.GetTechnologies(ctx)
	if err != nil {
		manager.Close()
		return nil, err
	}

	common.LogWith(logrus.Fields{"count": len(technologies)}).Debug("Technologies enumerated")
	return &Discovery{
		Conn:         conn,
		Manager:      manager,
		Technologies: technologies,
	}, nil
}

// DiscoverAsync chains discovery after a connect Future. Discovery errors
// are reported as a StageError for StageDiscover; the connection is passed
// along on the error path so the caller can close it.
func DiscoverAsync(ctx context.Context, connected *Future[Conn]) *Future[*Discovery] {
	return Then(ctx, connected, func(ctx context.Context, conn Conn) (*Discovery, error) {
		d, err := Discover(ctx, conn)
		if err != nil {
			return &Discovery{Conn: conn}, &StageError{Stage: StageDiscover, Err: err}
		}
		return d, nil
	})
}
