package server

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles WebSocket connections for realtime notifications.
// Every live connection of a user receives each event independently.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		defer s.hub.UnregisterClient(client)

		// Connection acknowledgement with the current unseen count so the
		// client can render its badge without an extra round trip.
		unseen, cerr := s.notificationService.CountUnseen(context.Background(), uid)
		if cerr != nil {
			unseen = 0
		}
		welcome, merr := json.Marshal(map[string]interface{}{
			"type": "connected",
			"payload": map[string]interface{}{
				"user_id":      uid,
				"unseen_count": unseen,
			},
		})
		if merr == nil {
			client.TrySend(welcome)
		}

		// Write pump in a goroutine; read pump blocks until disconnect.
		go client.WritePump()
		client.ReadPump()
	})
}
