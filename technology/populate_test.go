package technology_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/connman"
	"github.com/yllada/connman-gtk/connman/connmantest"
	"github.com/yllada/connman-gtk/technology"
)

type populateFixture struct {
	daemon    *connmantest.Daemon
	registry  *technology.Registry
	list      *fakeList
	notebook  *fakeNotebook
	populator *technology.Populator
	states    []technology.State
	lastErr   error
}

func newPopulateFixture(policy technology.DuplicatePolicy, techs ...connmantest.Technology) *populateFixture {
	f := &populateFixture{
		daemon:   connmantest.NewDaemon(techs...),
		registry: technology.NewRegistry(fakeFactory{}, policy),
		list:     &fakeList{},
		notebook: newFakeNotebook(),
	}
	f.populator = technology.NewPopulator(technology.PopulatorConfig{
		Dial:     f.daemon.Dial,
		Bus:      connman.SystemBus,
		Registry: f.registry,
		List:     f.list,
		Notebook: f.notebook,
		Dispatch: common.Inline,
	})
	f.populator.OnStateChange(func(state technology.State, err error) {
		f.states = append(f.states, state)
		if err != nil {
			f.lastErr = err
		}
	})
	return f
}

func (f *populateFixture) run(t *testing.T) (int, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return f.populator.Start(ctx).Await(ctx)
}

func TestPopulate_EndToEnd(t *testing.T) {
	f := newPopulateFixture(technology.RejectDuplicates,
		connmantest.NewTechnology("/net/wifi", "wifi", "WiFi"),
		connmantest.NewTechnology("/net/eth", "ethernet", "Wired"),
	)
	var added []string
	f.populator.OnEntry(func(e *technology.Technology) {
		added = append(added, string(e.Path()))
	})

	n, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, technology.StateReady, f.populator.State())
	assert.Equal(t, []technology.State{
		technology.StateConnecting,
		technology.StateConnected,
		technology.StatePopulating,
		technology.StateReady,
	}, f.states)
	assert.Equal(t, []string{"/net/wifi", "/net/eth"}, added, "daemon order is kept")

	wifi := f.registry.Lookup(technology.TypeWireless)
	eth := f.registry.Lookup(technology.TypeEthernet)
	require.NotNil(t, wifi)
	require.NotNil(t, eth)
	assert.Equal(t, 0, wifi.PageIndex())
	assert.Equal(t, 1, eth.PageIndex())

	technology.NewBinding(f.registry, f.notebook).RowSelected(eth.Row())
	assert.Equal(t, 1, f.notebook.CurrentPage())

	// Entries follow daemon property changes once populated.
	f.daemon.EmitPropertyChanged("/net/eth", connman.PropConnected, true)
	assert.True(t, eth.Connected())

	require.NoError(t, f.populator.Shutdown())
	assert.Equal(t, technology.StateDisconnected, f.populator.State())
	assert.Zero(t, f.registry.Len())
	for _, p := range f.daemon.Proxies() {
		assert.True(t, p.Closed(), "proxy %s", p.Path())
	}
}

func TestPopulate_EmptyCollection(t *testing.T) {
	f := newPopulateFixture(technology.RejectDuplicates)

	n, err := f.run(t)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, technology.StateReady, f.populator.State())
	assert.Zero(t, f.registry.Len())
	for typ := technology.Type(0); typ < technology.TypeCount; typ++ {
		assert.Nil(t, f.registry.Lookup(typ))
	}
	assert.Zero(t, f.notebook.NPages())
	assert.Empty(t, f.list.rows)
}

func TestPopulate_ConnectFailure(t *testing.T) {
	f := newPopulateFixture(technology.RejectDuplicates,
		connmantest.NewTechnology("/net/wifi", "wifi", "WiFi"))
	f.daemon.DialErr = errors.New("no system bus")

	_, err := f.run(t)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBusConnect)
	var stageErr *connman.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, connman.StageConnect, stageErr.Stage)

	assert.Equal(t, technology.StateFailed, f.populator.State())
	assert.Equal(t, []technology.State{technology.StateConnecting, technology.StateFailed}, f.states)
	assert.Equal(t, err, f.lastErr)
	assert.Zero(t, f.registry.Len())
	assert.Zero(t, f.notebook.NPages())
	assert.NoError(t, f.populator.Shutdown())
}

func TestPopulate_EnumerationFailure(t *testing.T) {
	f := newPopulateFixture(technology.RejectDuplicates,
		connmantest.NewTechnology("/net/wifi", "wifi", "WiFi"))
	f.daemon.EnumerateErr = errors.New("access denied")

	_, err := f.run(t)

	assert.ErrorIs(t, err, common.ErrRemoteCall)
	var stageErr *connman.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, connman.StageDiscover, stageErr.Stage)
	assert.Equal(t, technology.StateFailed, f.populator.State())
	assert.Zero(t, f.registry.Len())
}

func TestPopulate_ProxyFailureKeepsEarlierEntries(t *testing.T) {
	f := newPopulateFixture(technology.RejectDuplicates,
		connmantest.NewTechnology("/net/wifi", "wifi", "WiFi"),
		connmantest.NewTechnology("/net/eth", "ethernet", "Wired"),
		connmantest.NewTechnology("/net/bt", "bluetooth", "Bluetooth"),
	)
	f.daemon.ProxyErr["/net/eth"] = errors.New("object vanished")

	n, err := f.run(t)

	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, common.ErrRemoteCall)
	var stageErr *connman.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, connman.StagePopulate, stageErr.Stage)
	assert.Equal(t, technology.StateFailed, f.populator.State())

	wifi := f.registry.Lookup(technology.TypeWireless)
	require.NotNil(t, wifi)
	assert.Equal(t, 0, wifi.PageIndex())
	assert.Nil(t, f.registry.Lookup(technology.TypeEthernet))
	assert.Nil(t, f.registry.Lookup(technology.TypeBluetooth), "populate stops at the failing element")
	assert.Equal(t, 1, f.notebook.NPages())
}

func TestPopulate_DuplicateRejected(t *testing.T) {
	f := newPopulateFixture(technology.RejectDuplicates,
		connmantest.NewTechnology("/net/wifi0", "wifi", "WiFi 0"),
		connmantest.NewTechnology("/net/wifi1", "wifi", "WiFi 1"),
	)
	var added []string
	f.populator.OnEntry(func(e *technology.Technology) {
		added = append(added, string(e.Path()))
	})

	n, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"/net/wifi0"}, added, "refused entries are never reported")
	assert.Equal(t, "/net/wifi0", string(f.registry.Lookup(technology.TypeWireless).Path()))
	assert.True(t, f.daemon.ProxyFor("/net/wifi1").Closed(), "refused proxy is released")
	assert.Equal(t, 1, f.notebook.NPages())
}

func TestPopulate_DuplicateReplaced(t *testing.T) {
	f := newPopulateFixture(technology.ReplaceDuplicates,
		connmantest.NewTechnology("/net/wifi0", "wifi", "WiFi 0"),
		connmantest.NewTechnology("/net/wifi1", "wifi", "WiFi 1"),
	)
	var added []*technology.Technology
	f.populator.OnEntry(func(e *technology.Technology) {
		added = append(added, e)
	})

	n, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a takeover adds no page")
	assert.Equal(t, f.notebook.NPages(), n)

	require.Len(t, added, 2)
	assert.Same(t, added[0].Page(), added[1].Page(), "replacement reports the page already shown")

	wifi := f.registry.Lookup(technology.TypeWireless)
	assert.Equal(t, "/net/wifi1", string(wifi.Path()))
	assert.Equal(t, 0, wifi.PageIndex())
	assert.True(t, f.daemon.ProxyFor("/net/wifi0").Closed(), "replaced proxy is released")
	assert.False(t, f.daemon.ProxyFor("/net/wifi1").Closed())
	assert.Equal(t, 1, f.notebook.NPages())
	assert.Len(t, f.list.rows, 1)

	// The replacement receives property changes.
	f.daemon.EmitPropertyChanged("/net/wifi1", connman.PropPowered, true)
	assert.True(t, wifi.Powered())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Ready", technology.StateReady.String())
	assert.Equal(t, "Failed", technology.StateFailed.String())
	assert.Equal(t, "Unknown", technology.State(99).String())
}
