package share

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
	"go.uber.org/zap"
)

const serviceName = "_canvas-studio._tcp"

// Advertise registers the share server on the local network so viewers can
// discover it without typing an address. The returned server must be shut
// down when sharing stops.
func Advertise(port int, log *zap.Logger) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}
	service, err := mdns.NewMDNSService(host, serviceName, "", "", port, nil, []string{"Infinite Canvas Studio"})
	if err != nil {
		return nil, fmt.Errorf("mdns service: %w", err)
	}
	srv, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("mdns server: %w", err)
	}
	log.Info("advertising on local network",
		zap.String("service", serviceName),
		zap.String("host", host),
		zap.Int("port", port),
	)
	return srv, nil
}

// Browse runs one mDNS query and reports every board found on the local
// network.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	go func() {
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()
	return mdns.Lookup(serviceName, entries)
}
