package pipeline

import (
	"fmt"
	"net"
	"strconv"

	"loopchat/errors"
)

// Send transmits one message as a single datagram to 127.0.0.1:port.
// The socket is one-shot: dialed, written once, closed. Success means
// the transport accepted all bytes in one call; a partial write is a
// failure and is not retried. The sender always targets loopback.
func Send(port int, content string) error {
	raddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return fmt.Errorf("dial destination: %w", err)
	}
	defer conn.Close()

	payload := []byte(content)
	n, err := conn.Write(payload)
	if err != nil {
		return fmt.Errorf("write datagram: %w", err)
	}
	if n != len(payload) {
		return errors.ErrPartialSend
	}
	return nil
}
