package server

import "github.com/labstack/echo/v4"

func (s *Server) HelloWorldHandler(ctx echo.Context) error {
	resp := map[string]string{
		"message": "reign agency api",
	}

	return ctx.JSON(200, resp)
}

func (s *Server) healthHandler(ctx echo.Context) error {
	return ctx.JSON(200, s.server.Health())
}
