package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
	ws "github.com/Temutjin2k/ride-analytics/pkg/wsHub"
	"github.com/gorilla/websocket"
)

// PipelineHub fans pipeline events out to websocket subscribers.
type PipelineHub struct {
	connections *ws.ConnectionHub
	upgrader    websocket.Upgrader
	l           logger.Logger
}

func NewPipelineHub(connHub *ws.ConnectionHub, l logger.Logger) *PipelineHub {
	return &PipelineHub{
		connections: connHub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		l: l,
	}
}

// Notify broadcasts one pipeline event to every subscriber.
func (h *PipelineHub) Notify(ctx context.Context, event types.PipelineEvent, msg models.PipelineEventMessage) {
	msg.Type = event
	sent := h.connections.Broadcast(ctx, msg)
	if sent > 0 {
		h.l.Debug(ctx, "pipeline event broadcast", "event", event, "subscribers", sent)
	}
}

// HandleWS godoc
// @Summary      Pipeline events
// @Description  Websocket stream of load_started, loaded, exported and failed events
// @Tags         Pipeline
// @Security     BearerAuth
// @Router       /ws/pipeline [get]
func (h *PipelineHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_pipeline_subscribe")

	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.l.Warn(ctx, "websocket upgrade failed", "err", err.Error())
		return
	}

	conn := ws.NewConn(context.WithoutCancel(ctx), c)
	if err := h.connections.Add(conn); err != nil {
		h.l.Error(ctx, "failed to register websocket", err)
		_ = conn.Close()
		return
	}
	h.l.Info(ctx, "pipeline subscriber connected", "conn_id", conn.ID())
	metrics.WebSocketConnectionsGauge.WithLabelValues("pipeline").Inc()
	defer metrics.WebSocketConnectionsGauge.WithLabelValues("pipeline").Dec()

	if err := conn.Listen(); err != nil {
		h.l.Debug(ctx, "pipeline subscriber left", "conn_id", conn.ID(), "reason", err.Error())
	}
	_ = h.connections.Delete(conn.ID())
}
