package connman

import (
	"encoding/xml"
	"fmt"

	"github.com/godbus/dbus/v5/introspect"
	"github.com/yllada/connman-gtk/common"
)

// Method, signal and property names used by this client.
const (
	MethodGetProperties   = "GetProperties"
	MethodSetProperty     = "SetProperty"
	MethodGetTechnologies = "GetTechnologies"
	MethodScan            = "Scan"

	SignalPropertyChanged = "PropertyChanged"
)

const managerIntrospection = `
<node>
  <interface name="net.connman.Manager">
    <method name="GetProperties">
      <arg name="properties" type="a{sv}" direction="out"/>
    </method>
    <method name="SetProperty">
      <arg name="name" type="s" direction="in"/>
      <arg name="value" type="v" direction="in"/>
    </method>
    <method name="GetTechnologies">
      <arg name="technologies" type="a(oa{sv})" direction="out"/>
    </method>
    <method name="GetServices">
      <arg name="services" type="a(oa{sv})" direction="out"/>
    </method>
    <signal name="PropertyChanged">
      <arg name="name" type="s"/>
      <arg name="value" type="v"/>
    </signal>
    <signal name="TechnologyAdded">
      <arg name="path" type="o"/>
      <arg name="properties" type="a{sv}"/>
    </signal>
    <signal name="TechnologyRemoved">
      <arg name="path" type="o"/>
    </signal>
  </interface>
</node>`

const technologyIntrospection = `
<node>
  <interface name="net.connman.Technology">
    <method name="GetProperties">
      <arg name="properties" type="a{sv}" direction="out"/>
    </method>
    <method name="SetProperty">
      <arg name="name" type="s" direction="in"/>
      <arg name="value" type="v" direction="in"/>
    </method>
    <method name="Scan"/>
    <signal name="PropertyChanged">
      <arg name="name" type="s"/>
      <arg name="value" type="v"/>
    </signal>
  </interface>
</node>`

// LookupInterface parses an introspection document and returns the named
// interface. Malformed documents and missing interfaces wrap
// common.ErrInterfaceLoad.
func LookupInterface(document, name string) (*introspect.Interface, error) {
	var node introspect.Node
	if err := xml.Unmarshal([]byte(document), &node); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInterfaceLoad, err)
	}

	for i := range node.Interfaces {
		if node.Interfaces[i].Name == name {
			return &node.Interfaces[i], nil
		}
	}
	return nil, fmt.Errorf("%w: interface %s not declared", common.ErrInterfaceLoad, name)
}

// ManagerInterface returns the net.connman.Manager definition.
func ManagerInterface() (*introspect.Interface, error) {
	return LookupInterface(managerIntrospection, common.ManagerInterface)
}

// TechnologyInterface returns the net.connman.Technology definition.
func TechnologyInterface() (*introspect.Interface, error) {
	return LookupInterface(technologyIntrospection, common.TechnologyInterface)
}

func hasMethod(iface *introspect.Interface, name string) bool {
	for _, m := range iface.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

func hasSignal(iface *introspect.Interface, name string) bool {
	for _, s := range iface.Signals {
		if s.Name == name {
			return true
		}
	}
	return false
}
