package factory

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/config"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
)

func TestResolverFactoryStatic(t *testing.T) {
	f := NewResolverFactory(&config.ClientConfig{
		DiscoveryMode: config.DiscoveryStatic,
		ServerHost:    "colors.local",
		ServerPort:    45565,
	})
	r, err := f.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	addr, err := r.Resolve(context.Background())
	if err != nil || addr != "colors.local:45565" {
		t.Errorf("Resolve() = %q, %v", addr, err)
	}
}

func TestResolverFactoryUnknownMode(t *testing.T) {
	f := NewResolverFactory(&config.ClientConfig{DiscoveryMode: "dns"})
	if _, err := f.Create(context.Background()); err == nil {
		t.Error("unknown discovery mode accepted")
	}
}

func TestServerFactory(t *testing.T) {
	stats := &core.Stats{}
	s, err := NewServerFactory(&config.ServerConfig{Port: 0, Backlog: 6, Workers: 3}).Create(stats)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer s.Listener.Close()

	if s.Workers != 3 || s.ConnectionHandler == nil {
		t.Errorf("server = %+v", s)
	}
}

func TestServerFactoryBindFailure(t *testing.T) {
	first, err := NewServerFactory(&config.ServerConfig{Port: 0, Backlog: 6}).Create(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Listener.Close()

	port := first.Listener.Addr().(*net.TCPAddr).Port
	_, err = NewServerFactory(&config.ServerConfig{Port: port, Backlog: 6}).Create(nil)
	if !errors.Is(err, core.ErrListenerFatal) {
		t.Fatalf("err = %v, want listener fatal", err)
	}
}
