package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Youngjiloo-101/Betpilot/internal/models"
)

const (
	streamWriteWait    = 10 * time.Second
	streamMaxFrameSize = 64 * 1024
)

// handleSimulationStream upgrades to a websocket and answers every
// SimulationRequest frame with a StreamMessage, in order. Malformed or
// rejected requests get an error frame and the connection stays open.
func (s *Server) handleSimulationStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(streamMaxFrameSize)

	log := s.log.WithField("remote_addr", r.RemoteAddr)
	log.Debug("Simulation stream opened")

	ctx := r.Context()
	for seq := 1; ; seq++ {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("Simulation stream read failed")
			}
			return
		}

		msg := s.streamReply(r, seq, payload)
		if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.WithError(err).Warn("Simulation stream write failed")
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (s *Server) streamReply(r *http.Request, seq int, payload []byte) models.StreamMessage {
	var req models.SimulationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return streamError(seq, fmt.Errorf("%w: %v", errBadRequest, err))
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return streamError(seq, errRateLimited)
	}
	result, insights, err := s.simulations.Simulate(r.Context(), req.Config, req.Seed)
	if err != nil {
		return streamError(seq, err)
	}
	return models.StreamMessage{
		Type:       models.StreamResult,
		Sequence:   seq,
		Simulation: &models.SimulationResponse{Result: result, Insights: insights},
	}
}

func streamError(seq int, err error) models.StreamMessage {
	return models.StreamMessage{Type: models.StreamError, Sequence: seq, Error: err.Error()}
}
