package server

import (
	"encoding/json"
	"log/slog"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
)

// websocketHandler streams booking events to the admin dashboard.
// Browsers cannot set headers on websocket upgrades, so the access token
// rides a query param instead.
func (s *Server) websocketHandler(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return ctx.JSON(401, map[string]string{"error": "token is required"})
	}

	claims, err := s.server.VerifyAccessToken(ctx.Request().Context(), token)
	if err != nil {
		return ctx.JSON(401, map[string]string{"error": err.Error()})
	}
	if claims.Role != "admin" {
		return ctx.JSON(403, map[string]string{"error": "admin access required"})
	}

	conn, err := websocket.Accept(ctx.Response().Writer, ctx.Request(), &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return err
	}
	defer conn.CloseNow()

	rctx := ctx.Request().Context()

	events, cancel, err := s.server.SubscribeBookingEvents(rctx)
	if err != nil {
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return nil
	}
	defer cancel()

	for ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		if err := conn.Write(rctx, websocket.MessageText, payload); err != nil {
			s.logger.DebugContext(rctx, "websocket_write",
				slog.String("err", err.Error()))
			break
		}
	}

	conn.Close(websocket.StatusNormalClosure, "")
	return nil
}
