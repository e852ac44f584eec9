package core

import (
	"context"
	"net"
)

// ConnectionHandler owns one accepted connection from start to close.
// Implementations must close the connection on every path.
type ConnectionHandler interface {
	HandleConnection(conn net.Conn)
}

// ConnectionHandlerFunc adapts a plain function to ConnectionHandler.
type ConnectionHandlerFunc func(conn net.Conn)

func (f ConnectionHandlerFunc) HandleConnection(conn net.Conn) { f(conn) }

// AddressResolver defines how a client finds the color server.
// It is purely a lookup mechanism and knows nothing about the exchange itself.
type AddressResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// AddressResolverFunc adapts a plain function to AddressResolver.
type AddressResolverFunc func(ctx context.Context) (string, error)

func (f AddressResolverFunc) Resolve(ctx context.Context) (string, error) { return f(ctx) }
