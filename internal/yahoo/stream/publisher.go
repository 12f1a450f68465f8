package stream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"yfcollector/internal/yahoo/metrics"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Publisher pushes per-symbol summaries to the local reporting component over
// a websocket. It dials lazily and drops a broken connection so that the next
// run dials again.
type Publisher struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer
	logger  *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewPublisher(url string, timeout time.Duration, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{
		url:     url,
		timeout: timeout,
		dialer:  &websocket.Dialer{HandshakeTimeout: timeout},
		logger:  logger,
	}
}

// Connect establishes the websocket connection if it is not already open.
func (p *Publisher) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connectLocked(ctx)
}

func (p *Publisher) connectLocked(ctx context.Context) error {
	if p.conn != nil {
		return nil
	}
	conn, _, err := p.dialer.DialContext(ctx, p.url, nil)
	if err != nil {
		p.logger.Error("Failed to connect to WebSocket", zap.String("url", p.url), zap.Error(err))
		return err
	}
	p.conn = conn
	p.logger.Info("WebSocket connected", zap.String("url", p.url))
	return nil
}

// Publish sends one snapshot message per summary followed by a batch
// completion marker.
func (p *Publisher) Publish(ctx context.Context, summaries []metrics.Summary) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.connectLocked(ctx); err != nil {
		return err
	}

	symbols := make([]string, 0, len(summaries))
	for _, s := range summaries {
		msg := SummaryMessage{
			Topic: summaryTopic(s.Symbol),
			Data:  s,
			Ts:    time.Now().UnixMilli(),
			Type:  messageTypeSnapshot,
		}
		if err := p.writeLocked(msg); err != nil {
			return fmt.Errorf("publish %s: %w", s.Symbol, err)
		}
		symbols = append(symbols, s.Symbol)
	}

	done := BatchCompleteMessage{
		Topic:   topicBatchComplete,
		Symbols: symbols,
		Ts:      time.Now().UnixMilli(),
		Type:    messageTypeSnapshot,
	}
	if err := p.writeLocked(done); err != nil {
		return fmt.Errorf("publish batch marker: %w", err)
	}

	p.logger.Debug("published summaries", zap.Int("count", len(summaries)))
	return nil
}

func (p *Publisher) writeLocked(v any) error {
	_ = p.conn.SetWriteDeadline(time.Now().Add(p.timeout))
	if err := p.conn.WriteJSON(v); err != nil {
		p.logger.Warn("WebSocket write failed, dropping connection", zap.Error(err))
		_ = p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

// Close sends a close frame and releases the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	_ = p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := p.conn.Close()
	p.conn = nil
	return err
}
