package iris

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/util"
)

type MessageHandler func(message *Message)

type StateCallback func(state WebSocketState)

// ErrReconnectExhausted is returned by Run once every reconnect attempt failed.
var ErrReconnectExhausted = errors.New("websocket reconnect attempts exhausted")

// WebSocket receives Iris chat events. Run owns the connection for its
// whole lifetime and reconnects on read or dial failures.
type WebSocket struct {
	wsURL                string
	handler              MessageHandler
	maxReconnectAttempts int
	reconnectDelay       time.Duration
	handshakeTimeout     time.Duration
	logger               *zap.Logger

	stateMu       sync.RWMutex
	state         WebSocketState
	stateCallback StateCallback

	connMu sync.Mutex
	conn   *websocket.Conn
}

type WebSocketOption func(*WebSocket)

func WithReconnect(maxAttempts int, delay time.Duration) WebSocketOption {
	return func(ws *WebSocket) {
		ws.maxReconnectAttempts = maxAttempts
		ws.reconnectDelay = delay
	}
}

func WithStateCallback(cb StateCallback) WebSocketOption {
	return func(ws *WebSocket) {
		ws.stateCallback = cb
	}
}

func NewWebSocket(wsURL string, handler MessageHandler, logger *zap.Logger, opts ...WebSocketOption) *WebSocket {
	ws := &WebSocket{
		wsURL:                wsURL,
		handler:              handler,
		maxReconnectAttempts: constants.WebSocketConfig.MaxReconnectAttempts,
		reconnectDelay:       constants.WebSocketConfig.ReconnectDelay,
		handshakeTimeout:     constants.WebSocketConfig.HandshakeTimeout,
		logger:               logger,
		state:                WSStateDisconnected,
	}
	for _, opt := range opts {
		opt(ws)
	}
	return ws
}

// Run blocks until ctx is cancelled or reconnects are exhausted.
func (ws *WebSocket) Run(ctx context.Context) error {
	attempts := 0
	for {
		connected, err := ws.session(ctx)
		if ctx.Err() != nil {
			ws.setState(WSStateDisconnected)
			return nil
		}
		if connected {
			attempts = 0
		}
		attempts++

		if attempts > ws.maxReconnectAttempts {
			ws.logger.Error("Max reconnect attempts reached",
				zap.Int("attempts", attempts-1),
				zap.Error(err),
			)
			ws.setState(WSStateFailed)
			return ErrReconnectExhausted
		}

		ws.setState(WSStateReconnecting)
		ws.logger.Info("Scheduling reconnect",
			zap.Int("attempt", attempts),
			zap.Int("max", ws.maxReconnectAttempts),
			zap.Duration("delay", ws.reconnectDelay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			ws.setState(WSStateDisconnected)
			return nil
		case <-time.After(ws.reconnectDelay):
		}
	}
}

// session dials once and reads until the connection drops. connected reports
// whether the dial succeeded.
func (ws *WebSocket) session(ctx context.Context) (connected bool, err error) {
	ws.setState(WSStateConnecting)

	dialer := websocket.Dialer{
		Proxy:            websocket.DefaultDialer.Proxy,
		HandshakeTimeout: ws.handshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, ws.wsURL, nil)
	if err != nil {
		ws.logger.Error("Failed to connect WebSocket", zap.Error(err))
		return false, err
	}

	ws.connMu.Lock()
	ws.conn = conn
	ws.connMu.Unlock()
	ws.setState(WSStateConnected)
	ws.logger.Info("WebSocket connected", zap.String("url", ws.wsURL))

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer func() {
		stop()
		ws.connMu.Lock()
		ws.conn = nil
		ws.connMu.Unlock()
		_ = conn.Close()
	}()

	for {
		_, data, readErr := conn.ReadMessage()
		if readErr != nil {
			if ctx.Err() == nil {
				ws.logger.Error("WebSocket read error", zap.Error(readErr))
			}
			ws.setState(WSStateDisconnected)
			return true, readErr
		}
		ws.handleMessage(data)
	}
}

func (ws *WebSocket) handleMessage(data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		ws.logger.Error("Failed to parse message",
			zap.Error(err),
			zap.String("data", util.TruncateString(string(data), 200)),
		)
		return
	}
	if ws.handler != nil {
		ws.handler(&message)
	}
}

func (ws *WebSocket) setState(newState WebSocketState) {
	ws.stateMu.Lock()
	oldState := ws.state
	ws.state = newState
	cb := ws.stateCallback
	ws.stateMu.Unlock()

	if oldState == newState {
		return
	}
	ws.logger.Info("WebSocket state changed",
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
	)
	if cb != nil {
		cb(newState)
	}
}

func (ws *WebSocket) State() WebSocketState {
	ws.stateMu.RLock()
	defer ws.stateMu.RUnlock()
	return ws.state
}

func (ws *WebSocket) IsConnected() bool {
	return ws.State() == WSStateConnected
}

// Close drops the live connection. Run then reconnects unless its context is done.
func (ws *WebSocket) Close() error {
	ws.connMu.Lock()
	defer ws.connMu.Unlock()
	if ws.conn == nil {
		return nil
	}
	return ws.conn.Close()
}
