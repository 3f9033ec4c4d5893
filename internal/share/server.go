package share

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/sirupsen/logrus"
)

// Server serves a Hub on /ws and, when possible, advertises it over mDNS.
type Server struct {
	hub      *Hub
	http     *http.Server
	listener net.Listener
	mdns     *mdns.Server
	log      *logrus.Entry
}

// Start listens on port (0 picks a free one) and serves hub in the background.
func Start(port int, hub *Hub, advertise bool) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	s := &Server{
		hub:      hub,
		http:     &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		listener: listener,
		log:      logrus.WithField("component", "share"),
	}
	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("share server stopped: %v", err)
		}
	}()
	s.log.Infof("sharing board on port %d", s.Port())

	if advertise {
		if s.mdns, err = Advertise(s.Port()); err != nil {
			// Viewers can still join with the printed link.
			s.log.Warnf("mDNS advertise failed: %v", err)
		}
	}
	return s, nil
}

func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// URL is the link a viewer passes to -join.
func (s *Server) URL() string {
	return fmt.Sprintf("ws://%s:%d/ws", LocalIP(), s.Port())
}

// Close stops advertising, disconnects viewers and shuts the listener down.
func (s *Server) Close(ctx context.Context) error {
	if s.mdns != nil {
		s.mdns.Shutdown()
	}
	s.hub.Close()
	return s.http.Shutdown(ctx)
}
