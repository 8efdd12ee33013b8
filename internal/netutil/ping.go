package netutil

import (
	"context"
	"net"
	"strconv"
	"time"
)

// DefaultPingPort is used when no port is given to Ping.
const DefaultPingPort = 80

// PingTimeout bounds a single connection attempt.
var PingTimeout = 180 * time.Second

// Ping checks that a TCP connection to host:port can be opened.
func Ping(ctx context.Context, host string, port int) error {
	if port == 0 {
		port = DefaultPingPort
	}
	dialer := net.Dialer{Timeout: PingTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return err
	}
	return conn.Close()
}
