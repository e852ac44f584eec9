// Package client performs exchanges against a color server.
package client

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/logger"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/wire"
)

// Client opens one new connection per exchange. It keeps no per-exchange state
// and is safe for concurrent use.
type Client struct {
	resolver core.AddressResolver
	dialer   *net.Dialer
}

type Option func(*Client)

// WithDialer replaces the dialer used to reach the server.
func WithDialer(d *net.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

func New(resolver core.AddressResolver, opts ...Option) *Client {
	c := &Client{resolver: resolver, dialer: &net.Dialer{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exchange sends one record carrying userName, color and the caller's last known
// count, and returns the server's response. Nothing is retried. Errors carry a
// core.Kind: connection refused, unknown host, framing, decode or io.
func (c *Client) Exchange(ctx context.Context, userName, color string, count uint64) (*wire.Record, error) {
	req := &wire.Record{
		UserName:            userName,
		ColorSentFromClient: color,
		ColorCount:          count,
	}

	addr, err := c.resolver.Resolve(ctx)
	if err != nil {
		if core.KindOf(err) == core.KindUnknown {
			err = core.NewError(core.KindUnknownHost, "resolve", err)
		}
		return nil, err
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, classifyDialError("dial "+addr, err)
	}
	defer conn.Close()
	logger.DebugContext(ctx, "Connected to color server", "addr", addr)

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, core.NewError(core.KindIO, "set deadline", err)
		}
	}

	if err := wire.Encode(conn, req); err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "Record sent", "addr", addr, "color", color, "color_count", count)

	resp, err := wire.Decode(conn)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func classifyDialError(op string, err error) error {
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr):
		return core.NewError(core.KindUnknownHost, op, err)
	case errors.Is(err, syscall.ECONNREFUSED):
		return core.NewError(core.KindConnectionRefused, op, err)
	default:
		return core.NewError(core.KindIO, op, err)
	}
}
