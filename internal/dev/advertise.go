package dev

import (
	"log/slog"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/mdns"
)

// MDNSService is the service type the playground is advertised as.
const MDNSService = "_popover._tcp"

// advertise announces the playground over mDNS so devices on the local
// network can find it. The returned function stops the announcement.
func advertise(name string, port int, logger *slog.Logger) func() {
	host, _ := os.Hostname()
	instance := strings.TrimSpace(name)
	if instance == "" {
		instance = "popover-" + host
	}

	meta := []string{"name=popover", "path=/"}
	service, err := mdns.NewMDNSService(instance, MDNSService, "", "", port, advertiseIPs(), meta)
	if err != nil {
		logger.Error("mdns service setup failed", "error", err)
		return func() {}
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		logger.Error("mdns advertise failed", "error", err)
		return func() {}
	}
	logger.Info("advertising playground", "service", MDNSService, "instance", instance, "port", port)

	return func() {
		server.Shutdown()
	}
}

func advertiseIPs() []net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	return filterAdvertiseIPs(addrs)
}

// filterAdvertiseIPs keeps routable unicast addresses, IPv4 first.
func filterAdvertiseIPs(addrs []net.Addr) []net.IP {
	seen := map[string]struct{}{}
	out := make([]net.IP, 0, len(addrs))
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet == nil || ipNet.IP == nil {
			continue
		}
		ip := ipNet.IP
		if ip.IsLoopback() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			continue
		}
		normalized := ip.To16()
		key := normalized.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].To4() != nil, out[j].To4() != nil
		if ai != aj {
			return ai
		}
		return out[i].String() < out[j].String()
	})
	return out
}
