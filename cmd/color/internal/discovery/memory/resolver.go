package memory

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// Resolver always returns one fixed server address.
type Resolver struct {
	addr string
}

// NewResolver creates a static resolver. host may carry its own port ("host:port");
// otherwise defaultPort is used. An empty host means localhost.
func NewResolver(host string, defaultPort int) (*Resolver, error) {
	if host == "" {
		host = "localhost"
	}
	if h, p, err := net.SplitHostPort(host); err == nil {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid port in address %q", host)
		}
		return &Resolver{addr: net.JoinHostPort(h, p)}, nil
	}
	if defaultPort <= 0 || defaultPort > 65535 {
		return nil, fmt.Errorf("invalid port: %d", defaultPort)
	}
	return &Resolver{addr: net.JoinHostPort(host, strconv.Itoa(defaultPort))}, nil
}

func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	return r.addr, nil
}
