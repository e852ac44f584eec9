//go:build !unix

package listener

import (
	"net"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/logger"
)

func listenBacklog(addr string, backlog int) (net.Listener, error) {
	logger.Warn("Accept backlog is managed by the OS on this platform", "requested_backlog", backlog)
	return net.Listen("tcp", addr)
}
