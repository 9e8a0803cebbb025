package handler

import (
	"backend-triage/internal/chatbot"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	Bot *chatbot.Bot
}

type ChatRequest struct {
	Message string `json:"message"`
}

// Chat - POST /api/chat. Always answers with text; the bot itself degrades
// to fallback strings on anything unexpected.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		req.Message = ""
	}

	return c.JSON(fiber.Map{
		"response": h.Bot.GetResponse(req.Message),
	})
}
