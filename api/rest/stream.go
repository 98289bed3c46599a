package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hedisam/pipeline/chans"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/txchain/internal/ledger"
)

const streamWriteTimeout = 5 * time.Second

//go:generate moq -out mocks/subscriber.go -pkg mocks -skip-ensure . Subscriber

type Subscriber interface {
	Subscribe(ctx context.Context) <-chan ledger.Record
}

// StreamHandler pushes accepted transactions to websocket clients as JSON text messages.
type StreamHandler struct {
	logger     *logrus.Logger
	subscriber Subscriber
	upgrader   websocket.Upgrader
}

// NewStreamHandler creates a StreamHandler. checkOrigin may be nil, in which case only same origin clients connect.
func NewStreamHandler(logger *logrus.Logger, subscriber Subscriber, checkOrigin func(r *http.Request) bool) *StreamHandler {
	return &StreamHandler{
		logger:     logger,
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *StreamHandler) ServeWS(c *gin.Context) {
	logger := h.logger.WithContext(c.Request.Context()).WithFields(logrus.Fields{
		"request_id": RequestID(c),
		"client_ip":  c.ClientIP(),
	})

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already replied to the client
		logger.WithError(err).Warn("Failed to upgrade transaction stream connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	streamClients.Inc()
	defer streamClients.Dec()
	logger.Debug("Transaction stream client connected")

	// clients are not expected to send anything, reading only detects the connection going away
	go func() {
		defer cancel()
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	for r := range chans.ReceiveOrDoneSeq(ctx, h.subscriber.Subscribe(ctx)) {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		err = conn.WriteJSON(r)
		if err != nil {
			logger.WithError(err).Debug("Failed to write to transaction stream client")
			return
		}
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream closed"),
		time.Now().Add(time.Second),
	)
	logger.Debug("Transaction stream client disconnected")
}
