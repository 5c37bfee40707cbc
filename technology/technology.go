package technology

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/connman"
)

// ChangeHandler is called on the UI thread after a property of t changed.
type ChangeHandler func(t *Technology, property string)

// Technology is one technology reported by the daemon together with its
// widgets.
type Technology struct {
	typ   Type
	path  dbus.ObjectPath
	proxy connman.Proxy

	// Owned by the shared containers once inserted.
	row  Row
	page Page

	// -1 until inserted; never changes afterwards.
	pageIndex int

	mu        sync.RWMutex
	props     connman.TechnologyProperties
	listeners []ChangeHandler
	released  bool
}

func newTechnology(proxy connman.Proxy, path dbus.ObjectPath, props connman.TechnologyProperties) *Technology {
	return &Technology{
		typ:       ParseType(props.Type),
		path:      path,
		proxy:     proxy,
		props:     props,
		pageIndex: -1,
	}
}

// Type returns the registry key of the technology.
func (t *Technology) Type() Type {
	return t.typ
}

// Path returns the daemon object path.
func (t *Technology) Path() dbus.ObjectPath {
	return t.path
}

// Row returns the list row, nil if no factory built one.
func (t *Technology) Row() Row {
	return t.row
}

// Page returns the settings page, nil if no factory built one.
func (t *Technology) Page() Page {
	return t.page
}

// PageIndex returns the notebook position of the page, or -1 before
// insertion.
func (t *Technology) PageIndex() int {
	return t.pageIndex
}

// Inserted reports whether the entry's widgets are in the shared containers.
func (t *Technology) Inserted() bool {
	return t.pageIndex >= 0
}

// Properties returns a copy of the latest property snapshot.
func (t *Technology) Properties() connman.TechnologyProperties {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.props
}

// Name returns the daemon's name for the technology, or the type title.
func (t *Technology) Name() string {
	if name := t.Properties().Name; name != "" {
		return name
	}
	return t.typ.Title()
}

// Powered reports the Powered property.
func (t *Technology) Powered() bool {
	return t.Properties().Powered
}

// Connected reports the Connected property.
func (t *Technology) Connected() bool {
	return t.Properties().Connected
}

// OnChange registers fn for property changes.
func (t *Technology) OnChange(fn ChangeHandler) {
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

// Watch subscribes to PropertyChanged. Changes are applied through
// dispatch, so widgets are refreshed on the thread dispatch runs on.
func (t *Technology) Watch(dispatch common.Dispatcher) error {
	if dispatch == nil {
		dispatch = common.Inline
	}
	return t.proxy.Subscribe(connman.SignalPropertyChanged, func(body []interface{}) {
		name, value, err := connman.ParsePropertyChanged(body)
		if err != nil {
			common.LogWith(logrus.Fields{"path": t.path}).Warnf("Ignoring signal: %v", err)
			return
		}
		dispatch(func() {
			t.applyChange(name, value)
		})
	})
}

func (t *Technology) applyChange(name string, value dbus.Variant) {
	t.mu.Lock()
	if t.released || !t.props.Apply(name, value) {
		t.mu.Unlock()
		return
	}
	listeners := append([]ChangeHandler(nil), t.listeners...)
	t.mu.Unlock()

	common.LogWith(logrus.Fields{"path": t.path, "property": name}).Debugf("Property changed to %v", value.Value())

	t.refresh()
	for _, fn := range listeners {
		fn(t, name)
	}
}

func (t *Technology) refresh() {
	if t.row != nil {
		t.row.Refresh(t)
	}
	if t.page != nil {
		t.page.Refresh(t)
	}
}

// SetPowered switches the technology on or off.
func (t *Technology) SetPowered(ctx context.Context, powered bool) error {
	return t.setProperty(ctx, connman.PropPowered, powered)
}

// Scan asks the daemon to scan for networks. Only wireless technologies
// can scan.
func (t *Technology) Scan(ctx context.Context) error {
	if t.typ != TypeWireless {
		return fmt.Errorf("%w: scan on %s", common.ErrNotSupported, t.typ)
	}
	_, err := t.proxy.Call(ctx, connman.MethodScan)
	return err
}

// SetTethering enables or disables tethering. For wireless technologies a
// non-empty ssid and passphrase are set before tethering is enabled.
func (t *Technology) SetTethering(ctx context.Context, enabled bool, ssid, passphrase string) error {
	if enabled && t.typ == TypeWireless {
		if ssid != "" {
			if err := t.setProperty(ctx, connman.PropTetheringIdentifier, ssid); err != nil {
				return err
			}
		}
		if passphrase != "" {
			if err := t.setProperty(ctx, connman.PropTetheringPassphrase, passphrase); err != nil {
				return err
			}
		}
	}
	return t.setProperty(ctx, connman.PropTethering, enabled)
}

func (t *Technology) setProperty(ctx context.Context, name string, value interface{}) error {
	_, err := t.proxy.Call(ctx, connman.MethodSetProperty, name, dbus.MakeVariant(value))
	return err
}

// Release closes the proxy. Widgets stay with their containers.
func (t *Technology) Release() error {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return nil
	}
	t.released = true
	t.listeners = nil
	t.mu.Unlock()

	if err := t.proxy.Close(); err != nil {
		return fmt.Errorf("release %s: %w", t.path, err)
	}
	return nil
}
