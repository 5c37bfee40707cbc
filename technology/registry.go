package technology

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/hashicorp/go-multierror"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/connman"
)

// DuplicatePolicy decides what Register does with a second technology of a
// type that is already registered.
type DuplicatePolicy int

const (
	// RejectDuplicates keeps the first entry and refuses the second.
	RejectDuplicates DuplicatePolicy = iota
	// ReplaceDuplicates releases the first entry and gives its widgets to
	// the second.
	ReplaceDuplicates
)

// ParseDuplicatePolicy converts a configuration value.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case common.DuplicateReject, "":
		return RejectDuplicates, nil
	case common.DuplicateReplace:
		return ReplaceDuplicates, nil
	}
	return RejectDuplicates, fmt.Errorf("unknown duplicate policy %q", s)
}

func (p DuplicatePolicy) String() string {
	if p == ReplaceDuplicates {
		return common.DuplicateReplace
	}
	return common.DuplicateReject
}

// Registry is the type-indexed table of known technologies.
type Registry struct {
	slots   [TypeCount]*Technology
	pages   map[Row]int
	policy  DuplicatePolicy
	factory WidgetFactory
}

// NewRegistry returns an empty registry. factory may be nil, in which case
// entries have no widgets and cannot be inserted.
func NewRegistry(factory WidgetFactory, policy DuplicatePolicy) *Registry {
	return &Registry{
		pages:   make(map[Row]int),
		policy:  policy,
		factory: factory,
	}
}

// Policy returns the duplicate policy.
func (r *Registry) Policy() DuplicatePolicy {
	return r.policy
}

// CreateEntry builds an entry for the object at path. The entry is neither
// registered nor inserted.
func (r *Registry) CreateEntry(proxy connman.Proxy, path dbus.ObjectPath, properties map[string]dbus.Variant) *Technology {
	t := newTechnology(proxy, path, connman.ParseTechnologyProperties(properties))
	if r.factory != nil {
		t.row = r.factory.NewRow(t)
		t.page = r.factory.NewPage(t)
	}
	return t
}

// Register stores t in the slot of its type and returns the entry that
// occupies the slot afterwards.
//
// If the slot is taken and the policy is RejectDuplicates, the existing
// entry is returned with ErrDuplicateTechnology and the caller still owns
// t. With ReplaceDuplicates the existing entry is released and t takes over
// its row, page and page index.
func (r *Registry) Register(t *Technology) (*Technology, error) {
	old := r.slots[t.typ]
	if old == t {
		return t, nil
	}
	if old == nil {
		r.slots[t.typ] = t
		return t, nil
	}

	if r.policy == RejectDuplicates {
		return old, fmt.Errorf("%w: %s already registered at %s, refusing %s",
			common.ErrDuplicateTechnology, t.typ, old.path, t.path)
	}

	if old.Inserted() {
		t.row = old.row
		t.page = old.page
		t.pageIndex = old.pageIndex
	}
	r.slots[t.typ] = t

	if err := old.Release(); err != nil {
		common.LogWarn("Replacing %s: %v", old.path, err)
	}
	t.refresh()
	common.LogInfo("Technology %s at %s replaced by %s", t.typ, old.path, t.path)
	return t, nil
}

// InsertIntoUI appends the entry's row to list and its page to notebook and
// records the page position.
func (r *Registry) InsertIntoUI(t *Technology, list List, notebook Notebook) error {
	if t.Inserted() {
		return fmt.Errorf("%w: %s", common.ErrAlreadyInserted, t.path)
	}
	if t.row == nil || t.page == nil {
		return fmt.Errorf("%s has no widgets", t.path)
	}

	list.AppendRow(t.row)
	index := notebook.AppendPage(t.page)
	t.pageIndex = index
	r.pages[t.row] = index
	return nil
}

// Lookup returns the entry registered for typ, or nil.
func (r *Registry) Lookup(typ Type) *Technology {
	if typ < 0 || typ >= TypeCount {
		return nil
	}
	return r.slots[typ]
}

// PageFor returns the page index recorded for row.
func (r *Registry) PageFor(row Row) (int, bool) {
	index, ok := r.pages[row]
	return index, ok
}

// Entries returns the registered entries in type order.
func (r *Registry) Entries() []*Technology {
	var entries []*Technology
	for _, t := range r.slots {
		if t != nil {
			entries = append(entries, t)
		}
	}
	return entries
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	n := 0
	for _, t := range r.slots {
		if t != nil {
			n++
		}
	}
	return n
}

// ReleaseAll releases every entry in type order and empties the registry.
func (r *Registry) ReleaseAll() error {
	var result *multierror.Error
	for i, t := range r.slots {
		if t == nil {
			continue
		}
		if err := t.Release(); err != nil {
			result = multierror.Append(result, err)
		}
		r.slots[i] = nil
	}
	r.pages = make(map[Row]int)
	return result.ErrorOrNil()
}
