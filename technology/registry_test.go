package technology_test

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/connman"
	"github.com/yllada/connman-gtk/connman/connmantest"
	"github.com/yllada/connman-gtk/technology"
)

type registryFixture struct {
	daemon   *connmantest.Daemon
	conn     connman.Conn
	registry *technology.Registry
	list     *fakeList
	notebook *fakeNotebook
}

func newRegistryFixture(t *testing.T, policy technology.DuplicatePolicy, techs ...connmantest.Technology) *registryFixture {
	t.Helper()
	daemon := connmantest.NewDaemon(techs...)
	conn, err := daemon.Dial(context.Background(), connman.SystemBus)
	require.NoError(t, err)
	return &registryFixture{
		daemon:   daemon,
		conn:     conn,
		registry: technology.NewRegistry(fakeFactory{}, policy),
		list:     &fakeList{},
		notebook: newFakeNotebook(),
	}
}

func (f *registryFixture) entry(t *testing.T, tech connmantest.Technology) *technology.Technology {
	t.Helper()
	proxy, err := connman.NewTechnologyProxy(f.conn, tech.Path)
	require.NoError(t, err)
	return f.registry.CreateEntry(proxy, tech.Path, tech.Properties)
}

func TestRegistry_CreateEntryDoesNotInsert(t *testing.T) {
	wifi := connmantest.NewTechnology("/net/wifi", "wifi", "WiFi")
	f := newRegistryFixture(t, technology.RejectDuplicates, wifi)

	e := f.entry(t, wifi)

	assert.Equal(t, technology.TypeWireless, e.Type())
	assert.Equal(t, dbus.ObjectPath("/net/wifi"), e.Path())
	assert.Equal(t, "WiFi", e.Name())
	assert.Equal(t, -1, e.PageIndex())
	assert.False(t, e.Inserted())
	assert.NotNil(t, e.Row())
	assert.NotNil(t, e.Page())
	assert.Nil(t, f.registry.Lookup(technology.TypeWireless))
	assert.Empty(t, f.list.rows)
	assert.Zero(t, f.notebook.NPages())
}

func TestRegistry_OneEntryPerTypeHasMatchingPage(t *testing.T) {
	for typ := technology.Type(0); typ < technology.TypeCount; typ++ {
		t.Run(typ.String(), func(t *testing.T) {
			tech := connmantest.NewTechnology("/net/connman/technology/x", typ.String(), "")
			f := newRegistryFixture(t, technology.RejectDuplicates, tech)

			e := f.entry(t, tech)
			_, err := f.registry.Register(e)
			require.NoError(t, err)
			require.NoError(t, f.registry.InsertIntoUI(e, f.list, f.notebook))

			got := f.registry.Lookup(typ)
			require.NotNil(t, got)
			require.Equal(t, 0, got.PageIndex())
			assert.Same(t, got.Page(), f.notebook.pages[got.PageIndex()])
			assert.Same(t, got.Row(), f.list.rows[0])
			assert.Equal(t, typ.Title(), got.Name())
		})
	}
}

func TestRegistry_InsertTwiceRejected(t *testing.T) {
	wifi := connmantest.NewTechnology("/net/wifi", "wifi", "WiFi")
	f := newRegistryFixture(t, technology.RejectDuplicates, wifi)
	e := f.entry(t, wifi)

	require.NoError(t, f.registry.InsertIntoUI(e, f.list, f.notebook))
	err := f.registry.InsertIntoUI(e, f.list, f.notebook)

	assert.ErrorIs(t, err, common.ErrAlreadyInserted)
	assert.Len(t, f.list.rows, 1)
	assert.Equal(t, 1, f.notebook.NPages())
	assert.Equal(t, 0, e.PageIndex())
}

func TestRegistry_InsertWithoutWidgets(t *testing.T) {
	wifi := connmantest.NewTechnology("/net/wifi", "wifi", "WiFi")
	f := newRegistryFixture(t, technology.RejectDuplicates, wifi)
	f.registry = technology.NewRegistry(nil, technology.RejectDuplicates)

	e := f.entry(t, wifi)
	assert.Error(t, f.registry.InsertIntoUI(e, f.list, f.notebook))
	assert.False(t, e.Inserted())
}

func TestRegistry_RejectDuplicate(t *testing.T) {
	first := connmantest.NewTechnology("/net/wifi0", "wifi", "WiFi 0")
	second := connmantest.NewTechnology("/net/wifi1", "wifi", "WiFi 1")
	f := newRegistryFixture(t, technology.RejectDuplicates, first, second)

	a := f.entry(t, first)
	_, err := f.registry.Register(a)
	require.NoError(t, err)
	require.NoError(t, f.registry.InsertIntoUI(a, f.list, f.notebook))

	b := f.entry(t, second)
	kept, err := f.registry.Register(b)

	assert.ErrorIs(t, err, common.ErrDuplicateTechnology)
	assert.Same(t, a, kept)
	assert.Same(t, a, f.registry.Lookup(technology.TypeWireless))
	assert.False(t, f.daemon.ProxyFor(first.Path).Closed())

	// The caller owns the refused entry.
	require.NoError(t, b.Release())
	assert.True(t, f.daemon.ProxyFor(second.Path).Closed())
}

func TestRegistry_ReplaceDuplicateHandsOverWidgets(t *testing.T) {
	eth := connmantest.NewTechnology("/net/eth", "ethernet", "Wired")
	first := connmantest.NewTechnology("/net/wifi0", "wifi", "WiFi 0")
	second := connmantest.NewTechnology("/net/wifi1", "wifi", "WiFi 1")
	f := newRegistryFixture(t, technology.ReplaceDuplicates, eth, first, second)

	for _, tech := range []connmantest.Technology{eth, first} {
		e := f.entry(t, tech)
		_, err := f.registry.Register(e)
		require.NoError(t, err)
		require.NoError(t, f.registry.InsertIntoUI(e, f.list, f.notebook))
	}
	old := f.registry.Lookup(technology.TypeWireless)
	require.Equal(t, 1, old.PageIndex())

	b := f.entry(t, second)
	current, err := f.registry.Register(b)
	require.NoError(t, err)

	assert.Same(t, b, current)
	assert.Same(t, b, f.registry.Lookup(technology.TypeWireless))
	assert.True(t, f.daemon.ProxyFor(first.Path).Closed(), "replaced proxy must be released")
	assert.Equal(t, 1, b.PageIndex())
	assert.True(t, b.Inserted())
	assert.Same(t, old.Row(), b.Row())
	assert.Same(t, old.Page(), b.Page())
	assert.Same(t, b, b.Row().(*fakeRow).tech)

	// No stale rows: the containers did not grow.
	assert.Len(t, f.list.rows, 2)
	assert.Equal(t, 2, f.notebook.NPages())

	index, ok := f.registry.PageFor(b.Row())
	require.True(t, ok)
	assert.Equal(t, 1, index)
}

func TestRegistry_ReleaseAll(t *testing.T) {
	wifi := connmantest.NewTechnology("/net/wifi", "wifi", "WiFi")
	eth := connmantest.NewTechnology("/net/eth", "ethernet", "Wired")
	f := newRegistryFixture(t, technology.RejectDuplicates, wifi, eth)

	for _, tech := range []connmantest.Technology{wifi, eth} {
		e := f.entry(t, tech)
		_, err := f.registry.Register(e)
		require.NoError(t, err)
		require.NoError(t, f.registry.InsertIntoUI(e, f.list, f.notebook))
	}

	entries := f.registry.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, technology.TypeEthernet, entries[0].Type(), "entries are in type order")
	assert.Equal(t, technology.TypeWireless, entries[1].Type())

	require.NoError(t, f.registry.ReleaseAll())
	assert.Zero(t, f.registry.Len())
	for _, p := range f.daemon.Proxies() {
		assert.True(t, p.Closed(), "proxy %s", p.Path())
	}

	// Releasing twice is harmless.
	require.NoError(t, f.registry.ReleaseAll())
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, err := technology.ParseDuplicatePolicy("replace")
	require.NoError(t, err)
	assert.Equal(t, technology.ReplaceDuplicates, p)
	assert.Equal(t, "replace", p.String())

	p, err = technology.ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, technology.RejectDuplicates, p)

	_, err = technology.ParseDuplicatePolicy("merge")
	assert.Error(t, err)
}

func TestTechnology_Operations(t *testing.T) {
	wifi := connmantest.NewTechnology("/net/wifi", "wifi", "WiFi")
	eth := connmantest.NewTechnology("/net/eth", "ethernet", "Wired")
	f := newRegistryFixture(t, technology.RejectDuplicates, wifi, eth)
	ctx := context.Background()

	w := f.entry(t, wifi)
	e := f.entry(t, eth)

	require.NoError(t, w.SetPowered(ctx, true))
	require.NoError(t, w.Scan(ctx))
	assert.ErrorIs(t, e.Scan(ctx), common.ErrNotSupported)
	require.NoError(t, w.SetTethering(ctx, true, "hotspot", "secret123"))
	require.NoError(t, e.SetTethering(ctx, true, "ignored", "ignored"))

	var methods []string
	var props []string
	for _, c := range f.daemon.Calls() {
		methods = append(methods, c.Method)
		if c.Method == connman.MethodSetProperty {
			props = append(props, c.Args[0].(string))
		}
	}
	assert.Equal(t, []string{"SetProperty", "Scan", "SetProperty", "SetProperty", "SetProperty", "SetProperty"}, methods)
	assert.Equal(t, []string{
		connman.PropPowered,
		connman.PropTetheringIdentifier,
		connman.PropTetheringPassphrase,
		connman.PropTethering,
		connman.PropTethering,
	}, props)

	f.daemon.CallErr[connman.MethodSetProperty] = errors.New("permission denied")
	assert.ErrorIs(t, w.SetPowered(ctx, false), common.ErrRemoteCall)

	require.NoError(t, w.Release())
	assert.ErrorIs(t, w.SetPowered(ctx, false), common.ErrProxyClosed)
}

func TestTechnology_PropertyChangedRefreshesWidgets(t *testing.T) {
	wifi := connmantest.NewTechnology("/net/wifi", "wifi", "WiFi")
	f := newRegistryFixture(t, technology.RejectDuplicates, wifi)
	e := f.entry(t, wifi)

	var dispatched int
	dispatch := func(fn func()) {
		dispatched++
		fn()
	}
	require.NoError(t, e.Watch(dispatch))

	var changed []string
	e.OnChange(func(_ *technology.Technology, property string) {
		changed = append(changed, property)
	})

	f.daemon.EmitPropertyChanged(wifi.Path, connman.PropPowered, true)
	f.daemon.EmitPropertyChanged(wifi.Path, connman.PropConnected, true)

	assert.True(t, e.Powered())
	assert.True(t, e.Connected())
	assert.Equal(t, 2, dispatched)
	assert.Equal(t, []string{connman.PropPowered, connman.PropConnected}, changed)
	assert.Equal(t, 2, e.Row().(*fakeRow).refreshed)
	assert.Equal(t, 2, e.Page().(*fakePage).refreshed)

	// Unknown and malformed signals change nothing.
	f.daemon.EmitPropertyChanged(wifi.Path, "Bogus", uint32(1))
	f.daemon.Emit(wifi.Path, connman.SignalPropertyChanged, "Powered")
	assert.Equal(t, 2, e.Row().(*fakeRow).refreshed)

	require.NoError(t, e.Release())
	f.daemon.EmitPropertyChanged(wifi.Path, connman.PropPowered, false)
	assert.True(t, e.Powered(), "released entries ignore late signals")
}
