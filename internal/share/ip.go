package share

import (
	"net"

	"github.com/sirupsen/logrus"
)

// LocalIP finds the address other machines on the LAN should dial.
func LocalIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; fall back to the interface list.
		return firstIPv4()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

func firstIPv4() string {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4().String()
			}
		}
	}
	logrus.WithField("component", "share").Warn("no suitable local IP found, share link may not work")
	return "127.0.0.1"
}
