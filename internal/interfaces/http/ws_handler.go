package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/infrastructure/realtime"
	"github.com/jhoicas/kardex-api/pkg/jwt"
)

// RegisterWS registra la ruta websocket de eventos de stock. El token puede
// venir por Authorization o por ?token= (los navegadores no mandan headers en
// el handshake websocket). El upgrade solo procede en requests websocket
// reales.
func RegisterWS(app *fiber.App, hub *realtime.Hub, jwtSecret string) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws", wsAuthMiddleware(jwtSecret), websocket.New(func(conn *websocket.Conn) {
		ownerID, _ := conn.Locals(LocalUserID).(string)
		hub.Serve(ownerID, conn)
	}))
}

func wsAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			return AuthMiddleware(jwtSecret)(c)
		}
		userID, email, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_TOKEN", "token inválido o expirado"))
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}
