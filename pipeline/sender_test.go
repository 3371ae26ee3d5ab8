package pipeline

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Send_Delivers_One_Datagram(t *testing.T) {
	req := require.New(t)

	// Given a bound loopback listener
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	req.NoError(err)
	defer conn.Close()
	port := conn.LocalAddr().(*net.UDPAddr).Port

	// When a message is sent to it
	req.NoError(Send(port, "msg"))

	// Then exactly that payload arrives
	req.NoError(conn.SetReadDeadline(time.Now().Add(time.Second)))
	buf := make([]byte, 64)
	n, _, err := conn.ReadFromUDP(buf)
	req.NoError(err)
	req.Equal("msg", string(buf[:n]))
}

func Test_Send_To_Unbound_Port_Does_Not_Panic(t *testing.T) {
	req := require.New(t)
	// Best-effort UDP: the first write to a dead port usually succeeds,
	// the point is that nothing blows up control flow.
	req.NotPanics(func() {
		_ = Send(1, "nobody listening")
	})
}

func Test_Send_Rejects_Oversized_Datagram(t *testing.T) {
	req := require.New(t)
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	req.NoError(err)
	defer conn.Close()
	port := conn.LocalAddr().(*net.UDPAddr).Port

	// A payload beyond the UDP maximum cannot be accepted in one write.
	huge := make([]byte, 70_000)
	for i := range huge {
		huge[i] = 'x'
	}
	req.Error(Send(port, string(huge)))
}
