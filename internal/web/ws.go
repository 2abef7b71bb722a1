package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/MrWong99/rapport/internal/observe"
	"github.com/MrWong99/rapport/internal/report"
)

// handleWS runs a live analysis session over a WebSocket: every incoming
// text message is treated as a complete transcript and answered with its
// JSON report. Useful for editors that re-score on each keystroke.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Debug("websocket accept failed", "err", err)
		return
	}
	defer conn.CloseNow()

	conn.SetReadLimit(maxTranscriptBytes)

	ctx := r.Context()
	s.metrics.ActiveWSSessions.Add(ctx, 1)
	defer s.metrics.ActiveWSSessions.Add(context.Background(), -1)

	log := observe.Logger(ctx)
	log.Debug("websocket session opened")

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || ctx.Err() != nil {
				log.Debug("websocket session closed")
			} else {
				log.Debug("websocket read failed", "err", err)
			}
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		start := time.Now()
		analysis, err := s.current().Analyze(ctx, string(data))
		if err != nil {
			return
		}
		s.metrics.RecordAnalysis(ctx, "ws", analysis, time.Since(start))

		out, err := json.Marshal(report.FromAnalysis(analysis))
		if err != nil {
			conn.Close(websocket.StatusInternalError, "encode failed")
			return
		}
		if err := conn.Write(ctx, websocket.MessageText, out); err != nil {
			log.Debug("websocket write failed", "err", err)
			return
		}
	}
}
