package connman

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTechnologyProperties(t *testing.T) {
	p := ParseTechnologyProperties(map[string]dbus.Variant{
		PropName:                dbus.MakeVariant("WiFi"),
		PropType:                dbus.MakeVariant("wifi"),
		PropPowered:             dbus.MakeVariant(true),
		PropConnected:           dbus.MakeVariant(false),
		PropTethering:           dbus.MakeVariant(true),
		PropTetheringIdentifier: dbus.MakeVariant("hotspot"),
		"Unknown":               dbus.MakeVariant(uint32(7)),
	})

	assert.Equal(t, TechnologyProperties{
		Name:                "WiFi",
		Type:                "wifi",
		Powered:             true,
		Tethering:           true,
		TetheringIdentifier: "hotspot",
	}, p)
}

func TestApply_WrongTypeIgnored(t *testing.T) {
	p := TechnologyProperties{Powered: true}

	assert.False(t, p.Apply(PropPowered, dbus.MakeVariant("yes")))
	assert.True(t, p.Powered)
	assert.False(t, p.Apply("Bogus", dbus.MakeVariant(true)))
}

func TestParsePropertyChanged(t *testing.T) {
	name, value, err := ParsePropertyChanged([]interface{}{PropPowered, dbus.MakeVariant(true)})
	require.NoError(t, err)
	assert.Equal(t, PropPowered, name)
	assert.Equal(t, true, value.Value())

	_, _, err = ParsePropertyChanged([]interface{}{PropPowered})
	assert.Error(t, err)

	_, _, err = ParsePropertyChanged([]interface{}{1, dbus.MakeVariant(true)})
	assert.Error(t, err)

	_, _, err = ParsePropertyChanged([]interface{}{PropPowered, true})
	assert.Error(t, err)
}
