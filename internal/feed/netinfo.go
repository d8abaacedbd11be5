package feed

import (
	"net"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const fallbackHostname = "unknown"

// Hostname returns the machine's hostname. It never fails: if the kernel
// reports nothing useful it falls back to /etc/hostname and finally to the
// "unknown" literal.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" || name == "localhost" || name == "localhost.localdomain" {
		if b, readErr := os.ReadFile("/etc/hostname"); readErr == nil {
			if fromFile := strings.TrimSpace(string(b)); fromFile != "" {
				return fromFile
			}
		}
	}
	if name == "" {
		return fallbackHostname
	}
	return name
}

// AddrFilter selects which interface addresses AddressStrings reports.
type AddrFilter struct {
	IncludeLoopback bool
	OnlyUp          bool
	IPv4            bool
	IPv6            bool
}

// AddressStrings returns the local addresses matching the filter, without
// CIDR suffixes. It never raises: enumeration failures yield an empty list
// and a warning, and the HUD shows the hostname alone.
func AddressStrings(f AddrFilter) []string {
	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn("Unable to enumerate interfaces: ", err)
		return nil
	}

	var out []string
	for _, iface := range ifaces {
		if f.OnlyUp && iface.Flags&net.FlagUp == 0 {
			continue
		}
		if !f.IncludeLoopback && iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			log.Debugf("Skipping %s: %v", iface.Name, err)
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP
			if !f.IncludeLoopback && ip.IsLoopback() {
				continue
			}
			if ip.To4() != nil {
				if f.IPv4 {
					out = append(out, ip.String())
				}
			} else if f.IPv6 {
				out = append(out, ip.String())
			}
		}
	}
	return out
}
