package technology

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/connman"
)

// State is the progress of a Populator.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StatePopulating
	StateReady
	// StateFailed is terminal.
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting..."
	case StateConnected:
		return "Connected"
	case StatePopulating:
		return "Loading technologies..."
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// StateHandler is called on the UI thread after every transition. err is
// set when entering StateFailed.
type StateHandler func(state State, err error)

// EntryHandler is called on the UI thread for every entry inserted or
// taken over by a replacement.
type EntryHandler func(t *Technology)

// PopulatorConfig holds the collaborators of a Populator.
type PopulatorConfig struct {
	// Dial opens the bus; connman.Connect when nil.
	Dial     connman.Dialer
	Bus      connman.BusType
	Registry *Registry
	List     List
	Notebook Notebook
	// Dispatch runs work on the UI thread; common.Inline when nil.
	Dispatch common.Dispatcher
}

// Populator connects to the daemon and fills the registry and the shared
// containers.
type Populator struct {
	dial     connman.Dialer
	bus      connman.BusType
	registry *Registry
	list     List
	notebook Notebook
	dispatch common.Dispatcher

	mu      sync.Mutex
	state   State
	conn    connman.Conn
	manager *connman.Manager
	onState []StateHandler
	onEntry []EntryHandler
}

// NewPopulator returns a Populator in StateDisconnected.
func NewPopulator(cfg PopulatorConfig) *Populator {
	dispatch := cfg.Dispatch
	if dispatch == nil {
		dispatch = common.Inline
	}
	return &Populator{
		dial:     cfg.Dial,
		bus:      cfg.Bus,
		registry: cfg.Registry,
		list:     cfg.List,
		notebook: cfg.Notebook,
		dispatch: dispatch,
	}
}

// Registry returns the registry being populated.
func (p *Populator) Registry() *Registry {
	return p.registry
}

// State returns the current state.
func (p *Populator) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// OnStateChange registers fn for state transitions.
func (p *Populator) OnStateChange(fn StateHandler) {
	p.mu.Lock()
	p.onState = append(p.onState, fn)
	p.mu.Unlock()
}

// OnEntry registers fn for inserted entries.
func (p *Populator) OnEntry(fn EntryHandler) {
	p.mu.Lock()
	p.onEntry = append(p.onEntry, fn)
	p.mu.Unlock()
}

func (p *Populator) setState(state State, err error) {
	p.mu.Lock()
	p.state = state
	handlers := append([]StateHandler(nil), p.onState...)
	p.mu.Unlock()

	for _, fn := range handlers {
		fn(state, err)
	}
}

// Start runs connect and discovery in the background and populates on the
// UI thread. The returned future resolves with the number of pages added
// to the notebook once populate finished or failed. A replacement taking
// over an existing page is not counted.
func (p *Populator) Start(ctx context.Context) *connman.Future[int] {
	log := common.LogWith(logrus.Fields{"run": common.NewRunID(), "bus": p.bus.String()})
	log.Info("Connecting to ConnMan")
	p.setState(StateConnecting, nil)

	connected := connman.Then(ctx, connman.ConnectAsync(ctx, p.dial, p.bus),
		func(_ context.Context, conn connman.Conn) (connman.Conn, error) {
			p.mu.Lock()
			p.conn = conn
			p.mu.Unlock()
			p.dispatch(func() { p.setState(StateConnected, nil) })
			return conn, nil
		})
	discovered := connman.DiscoverAsync(ctx, connected)

	result, resolve := connman.NewPromise[int]()
	go func() {
		d, err := discovered.Await(ctx)
		p.dispatch(func() {
			resolve(p.populate(log, d, err))
		})
	}()
	return result
}

func (p *Populator) populate(log *logrus.Entry, d *connman.Discovery, err error) (int, error) {
	if d != nil && d.Manager != nil {
		p.mu.Lock()
		p.manager = d.Manager
		p.mu.Unlock()
	}
	if err != nil {
		log.Errorf("Discovery failed: %v", err)
		p.setState(StateFailed, err)
		return 0, err
	}

	p.setState(StatePopulating, nil)
	log.Infof("Populating %d technologies", len(d.Technologies))

	inserted := 0
	for _, obj := range d.Technologies {
		entryLog := log.WithField("path", obj.Path)

		proxy, err := connman.NewTechnologyProxy(d.Conn, obj.Path)
		if err != nil {
			err = &connman.StageError{Stage: connman.StagePopulate, Err: err}
			entryLog.Errorf("Populate stopped: %v", err)
			p.setState(StateFailed, err)
			return inserted, err
		}

		t := p.registry.CreateEntry(proxy, obj.Path, obj.Properties)
		current, err := p.registry.Register(t)
		if errors.Is(err, common.ErrDuplicateTechnology) {
			entryLog.Warnf("Skipping technology: %v", err)
			if err := t.Release(); err != nil {
				entryLog.Warnf("Release failed: %v", err)
			}
			continue
		}

		if !current.Inserted() {
			if err := p.registry.InsertIntoUI(current, p.list, p.notebook); err != nil {
				err = &connman.StageError{Stage: connman.StagePopulate, Err: err}
				entryLog.Errorf("Populate stopped: %v", err)
				p.setState(StateFailed, err)
				return inserted, err
			}
			inserted++
		}

		if err := current.Watch(p.dispatch); err != nil {
			entryLog.Warnf("Property changes will not be shown: %v", err)
		}
		entryLog.WithFields(logrus.Fields{
			"type": current.Type().String(),
			"page": current.PageIndex(),
		}).Debug("Technology added")

		p.mu.Lock()
		handlers := append([]EntryHandler(nil), p.onEntry...)
		p.mu.Unlock()
		for _, fn := range handlers {
			fn(current)
		}
	}

	p.setState(StateReady, nil)
	return inserted, nil
}

// Shutdown releases every entry, the manager proxy and the connection.
func (p *Populator) Shutdown() error {
	var result *multierror.Error
	if err := p.registry.ReleaseAll(); err != nil {
		result = multierror.Append(result, err)
	}

	p.mu.Lock()
	manager, conn := p.manager, p.conn
	p.manager, p.conn = nil, nil
	p.mu.Unlock()

	if manager != nil {
		if err := manager.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	p.setState(StateDisconnected, nil)
	return result.ErrorOrNil()
}
