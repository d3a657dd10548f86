package share

import (
	"fmt"
	"net"
	"strconv"
)

const defaultPort = 8787

// OutgoingIP finds the address other devices on the network can reach this
// machine at.
func OutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route out; fall back to scanning local interfaces.
		return fallbackIP()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

func fallbackIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String(), nil
		}
	}
	return "127.0.0.1", nil
}

// URL returns the address viewers should open in a browser, for example
// http://192.168.1.20:8787.
func URL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		port = strconv.Itoa(defaultPort)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		if ip, ipErr := OutgoingIP(); ipErr == nil {
			host = ip
		} else {
			host = "localhost"
		}
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Port extracts the TCP port from a listen address.
func Port(addr string) int {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultPort
	}
	n, err := strconv.Atoi(p)
	if err != nil || n <= 0 {
		return defaultPort
	}
	return n
}
