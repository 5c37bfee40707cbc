package technology

import "strings"

// Type identifies the kind of a technology. It is the Registry key.
type Type int

const (
	TypeEthernet Type = iota
	TypeWireless
	TypeBluetooth
	TypeCellular
	TypeP2P
	TypeVPN
	TypeGadget
	TypeUnknown

	// TypeCount is the number of known types.
	TypeCount
)

var typeNames = [TypeCount]string{
	TypeEthernet:  "ethernet",
	TypeWireless:  "wifi",
	TypeBluetooth: "bluetooth",
	TypeCellular:  "cellular",
	TypeP2P:       "p2p",
	TypeVPN:       "vpn",
	TypeGadget:    "gadget",
	TypeUnknown:   "unknown",
}

// ParseType maps the daemon's Type property to a Type. Unrecognised
// values map to TypeUnknown.
func ParseType(s string) Type {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return Type(t)
		}
	}
	return TypeUnknown
}

// String returns the daemon's name for the type.
func (t Type) String() string {
	if t < 0 || t >= TypeCount {
		return typeNames[TypeUnknown]
	}
	return typeNames[t]
}

// Title returns a display name used when the daemon reports none.
func (t Type) Title() string {
	switch t {
	case TypeEthernet:
		return "Wired"
	case TypeWireless:
		return "Wireless"
	case TypeBluetooth:
		return "Bluetooth"
	case TypeCellular:
		return "Cellular"
	case TypeP2P:
		return "Peer-to-Peer"
	case TypeVPN:
		return "VPN"
	case TypeGadget:
		return "USB Gadget"
	default:
		return "Other"
	}
}

// IconName returns the symbolic icon for the type.
func (t Type) IconName() string {
	switch t {
	case TypeEthernet, TypeGadget:
		return "network-wired-symbolic"
	case TypeWireless, TypeP2P:
		return "network-wireless-symbolic"
	case TypeBluetooth:
		return "bluetooth-symbolic"
	case TypeCellular:
		return "network-cellular-symbolic"
	case TypeVPN:
		return "network-vpn-symbolic"
	default:
		return "network-workgroup-symbolic"
	}
}
