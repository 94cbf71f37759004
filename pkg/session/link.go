package session

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/einherij/groundlink/pkg/protocol"
)

const readBufferSize = 64 * 1024

type readResult struct {
	data []byte
	err  error
}

// link is one open transport connection. Its reader goroutine only copies
// bytes; decoding happens on the session loop.
type link struct {
	address  string
	conn     net.Conn
	decoder  protocol.Decoder
	incoming chan readResult
	done     chan struct{}
	group    errgroup.Group
}

func startLink(address string, conn net.Conn) *link {
	l := &link{
		address:  address,
		conn:     conn,
		incoming: make(chan readResult, 16),
		done:     make(chan struct{}),
	}
	l.group.Go(l.read)
	return l
}

func (l *link) read() error {
	buf := make([]byte, readBufferSize)
	for {
		n, err := l.conn.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case l.incoming <- readResult{data: chunk}:
			case <-l.done:
				return nil
			}
		}
		if err != nil {
			select {
			case l.incoming <- readResult{err: err}:
			case <-l.done:
			}
			return err
		}
	}
}

// write either hands the whole packet to the transport before the deadline
// or fails.
func (l *link) write(b []byte, timeout time.Duration) error {
	if timeout > 0 {
		if err := l.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return fmt.Errorf("error setting write deadline: %w", err)
		}
	}
	n, err := l.conn.Write(b)
	if err != nil {
		return err
	}
	if n < len(b) {
		return io.ErrShortWrite
	}
	return nil
}

// close shuts the connection and joins the reader.
func (l *link) close() error {
	close(l.done)
	closeErr := l.conn.Close()
	if err := l.group.Wait(); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error in reader: %w", err)
	}
	return closeErr
}
