// Package cli holds the command line handling that does not need GTK.
package cli

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/yllada/connman-gtk/config"
	"github.com/yllada/connman-gtk/connman"
)

// ResolveBus returns the bus named by override, or the configured one when
// override is empty. cfg is not modified, so saving preferences never
// persists a command line override.
func ResolveBus(cfg *config.Config, override string) (connman.BusType, error) {
	if override != "" {
		return connman.ParseBusType(override)
	}
	return connman.ParseBusType(cfg.Bus)
}

// ApplicationArgs returns argv without the flags defined in flags and their
// values. Everything else, including unknown flags, is left for GTK and
// GApplication. Arguments after "--" are kept as they are.
func ApplicationArgs(flags *pflag.FlagSet, argv []string) []string {
	out := []string{}
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return append(out, argv[i:]...)
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			f := flags.Lookup(name)
			if f == nil {
				out = append(out, arg)
				continue
			}
			if !hasValue && f.NoOptDefVal == "" {
				i++
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			f := flags.ShorthandLookup(arg[1:2])
			if f == nil {
				out = append(out, arg)
				continue
			}
			if len(arg) == 2 && f.NoOptDefVal == "" {
				i++
			}
		default:
			out = append(out, arg)
		}
	}
	return out
}
