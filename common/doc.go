// Package common provides shared constants, types, utilities, and interfaces
// used throughout the Network Settings application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: application metadata, ConnMan bus names, UI dimensions
//   - Errors: sentinel errors for consistent error handling across packages
//   - Interfaces: small abstractions shared by the ui and technology packages
//   - Logger: logrus-based logging with rotated file output
//   - Utils: configuration paths and run identifiers
//
// # Usage
//
//	import "github.com/yllada/connman-gtk/common"
//
//	common.LogInfo("Found %d technologies", n)
//
//	if errors.Is(err, common.ErrBusConnect) {
//	    // the daemon is unreachable, keep the window empty
//	}
package common
