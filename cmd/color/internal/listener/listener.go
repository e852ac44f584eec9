// Package listener binds the server's TCP socket with an explicit accept backlog.
package listener

import (
	"net"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
)

// DefaultBacklog is the number of pending connections the OS queues before refusing more.
const DefaultBacklog = 6

// Listen binds addr and listens with the given backlog. A backlog <= 0 leaves the
// queue length to the operating system. Failures are of kind core.KindListenerFatal.
func Listen(addr string, backlog int) (net.Listener, error) {
	var (
		l   net.Listener
		err error
	)
	if backlog <= 0 {
		l, err = net.Listen("tcp", addr)
	} else {
		l, err = listenBacklog(addr, backlog)
	}
	if err != nil {
		return nil, core.NewError(core.KindListenerFatal, "listen "+addr, err)
	}
	return l, nil
}
