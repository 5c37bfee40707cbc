package connman

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Technology property names.
const (
	PropName                = "Name"
	PropType                = "Type"
	PropPowered             = "Powered"
	PropConnected           = "Connected"
	PropTethering           = "Tethering"
	PropTetheringIdentifier = "TetheringIdentifier"
	PropTetheringPassphrase = "TetheringPassphrase"
)

// TechnologyProperties is a typed snapshot of a technology's properties.
type TechnologyProperties struct {
	Name                string
	Type                string
	Powered             bool
	Connected           bool
	Tethering           bool
	TetheringIdentifier string
	TetheringPassphrase string
}

// ParseTechnologyProperties builds a snapshot from a property dictionary.
// Unknown keys and values of the wrong type are ignored.
func ParseTechnologyProperties(props map[string]dbus.Variant) TechnologyProperties {
	var p TechnologyProperties
	for name, value := range props {
		p.Apply(name, value)
	}
	return p
}

// Apply updates one property and reports whether it was recognised.
func (p *TechnologyProperties) Apply(name string, value dbus.Variant) bool {
	switch name {
	case PropName:
		return assign(&p.Name, value)
	case PropType:
		return assign(&p.Type, value)
	case PropPowered:
		return assign(&p.Powered, value)
	case PropConnected:
		return assign(&p.Connected, value)
	case PropTethering:
		return assign(&p.Tethering, value)
	case PropTetheringIdentifier:
		return assign(&p.TetheringIdentifier, value)
	case PropTetheringPassphrase:
		return assign(&p.TetheringPassphrase, value)
	}
	return false
}

func assign[T any](dst *T, value dbus.Variant) bool {
	v, ok := value.Value().(T)
	if ok {
		*dst = v
	}
	return ok
}

// ParsePropertyChanged decodes the (s, v) body of a PropertyChanged signal.
func ParsePropertyChanged(body []interface{}) (string, dbus.Variant, error) {
	if len(body) != 2 {
		return "", dbus.Variant{}, fmt.Errorf("PropertyChanged: expected 2 arguments, got %d", len(body))
	}
	name, ok := body[0].(string)
	if !ok {
		return "", dbus.Variant{}, fmt.Errorf("PropertyChanged: name is %T, not string", body[0])
	}
	value, ok := body[1].(dbus.Variant)
	if !ok {
		return "", dbus.Variant{}, fmt.Errorf("PropertyChanged: value is %T, not variant", body[1])
	}
	return name, value, nil
}
