package wsbridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type MessageType string

const (
	MTUndefined     MessageType = ""
	MTLog           MessageType = "log"
	MTCmd           MessageType = "cmd"
	MTTelemetry     MessageType = "telemetry"
	MTVideo         MessageType = "video"
	MTStatus        MessageType = "status"
	MTState         MessageType = "state"
	MTMode          MessageType = "mode"
	MTDeviceControl MessageType = "device_control"
	MTControls      MessageType = "controls"
	MTTrack         MessageType = "track"
	MTAck           MessageType = "ack"
)

type Message struct {
	Type    MessageType
	Content []byte
}

const (
	defaultReconnectInterval = 5 * time.Second
	sendBuffer               = 64
)

// Client keeps a websocket open to the UI handler host and reconnects while
// the process runs.
type Client struct {
	wsURL             string
	dialer            *websocket.Dialer
	reconnectInterval time.Duration
	sendChan          chan Message
	receiveChan       chan Message
}

func New(serverURL string) *Client {
	return &Client{
		wsURL:             WebsocketURL(serverURL),
		dialer:            websocket.DefaultDialer,
		reconnectInterval: defaultReconnectInterval,
		sendChan:          make(chan Message, sendBuffer),
		receiveChan:       make(chan Message, 1),
	}
}

// WebsocketURL derives the bridge endpoint from the handler host URL.
func WebsocketURL(serverURL string) string {
	if !strings.HasSuffix(serverURL, "/") {
		serverURL += "/"
	}
	return "ws" + strings.TrimPrefix(serverURL, "http") + "groundlink/ws/"
}

// SendMessage queues a message for the current connection. Messages are
// dropped while the queue is full, which happens while the UI is away.
func (c *Client) SendMessage(message Message) bool {
	select {
	case c.sendChan <- message:
		return true
	default:
		logrus.Debugf("dropping %s message: web socket send queue full", message.Type)
		return false
	}
}

func (c *Client) ReceiveMessage(ctx context.Context) Message {
	select {
	case <-ctx.Done():
		return Message{}
	case msg := <-c.receiveChan:
		return msg
	}
}

func (c *Client) Run(ctx context.Context) {
	logrus.Warnf("started websocket client")
	timer := time.NewTimer(0)
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Warnf("stopped websocket client")
			return
		case <-timer.C:
			conn, _, err := c.dialer.DialContext(ctx, c.wsURL, nil)
			if err != nil {
				logrus.Error(fmt.Errorf("error connecting to server's web socket: %w", err))
			} else {
				c.serve(ctx, conn)
			}
			timer.Reset(c.reconnectInterval)
		}
	}
}

// serve pumps messages until either direction fails or ctx ends.
func (c *Client) serve(ctx context.Context, conn *websocket.Conn) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.receiveMessages(gctx, conn) })
	g.Go(func() error { return c.sendMessages(gctx, conn) })
	g.Go(func() error {
		<-gctx.Done()
		return conn.Close()
	})
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logrus.Error(fmt.Errorf("error in web socket session: %w", err))
	}
}

func (c *Client) receiveMessages(ctx context.Context, conn *websocket.Conn) error {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("error reading message from web socket: %w", err)
		}
		select {
		case c.receiveChan <- msg:
		case <-ctx.Done():
			return nil
		case <-time.After(200 * time.Millisecond):
			logrus.Warnf("dropping %s message: nobody is receiving", msg.Type)
		}
	}
}

func (c *Client) sendMessages(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-c.sendChan:
			if err := conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("error writing message to web socket: %w", err)
			}
		}
	}
}
