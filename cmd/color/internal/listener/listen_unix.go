//go:build unix

package listener

import (
	"errors"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

func listenBacklog(addr string, backlog int) (net.Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	family, sa, dualStack := sockaddr(tcpAddr)
	l, err := listenSocket(family, sa, dualStack, backlog)
	if dualStack && errors.Is(err, unix.EAFNOSUPPORT) {
		// No IPv6 on this host; bind the IPv4 wildcard instead.
		return listenSocket(unix.AF_INET, &unix.SockaddrInet4{Port: tcpAddr.Port}, false, backlog)
	}
	return l, err
}

func sockaddr(addr *net.TCPAddr) (family int, sa unix.Sockaddr, dualStack bool) {
	if ip4 := addr.IP.To4(); ip4 != nil {
		sa4 := &unix.SockaddrInet4{Port: addr.Port}
		copy(sa4.Addr[:], ip4)
		return unix.AF_INET, sa4, false
	}
	sa6 := &unix.SockaddrInet6{Port: addr.Port}
	if addr.IP == nil || addr.IP.IsUnspecified() {
		return unix.AF_INET6, sa6, true
	}
	copy(sa6.Addr[:], addr.IP.To16())
	return unix.AF_INET6, sa6, false
}

func listenSocket(family int, sa unix.Sockaddr, dualStack bool, backlog int) (net.Listener, error) {
	fd, err := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)

	// net.FileListener dups the descriptor, so this file is always closed.
	f := os.NewFile(uintptr(fd), "color-listener")
	defer f.Close()

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return nil, os.NewSyscallError("setsockopt", err)
	}
	if dualStack {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
			return nil, os.NewSyscallError("setsockopt", err)
		}
	}
	if err := unix.Bind(fd, sa); err != nil {
		return nil, os.NewSyscallError("bind", err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		return nil, os.NewSyscallError("listen", err)
	}
	return net.FileListener(f)
}
