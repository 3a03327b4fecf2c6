package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/core/ports"
)

const chatbotFailure = "An error occurred while processing your request."

type ChatbotHandler struct {
	chatbot ports.ChatbotService
	log     zerolog.Logger
}

func NewChatbotHandler(chatbot ports.ChatbotService, log zerolog.Logger) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot, log: log}
}

type chatRequest struct {
	Message string `json:"message" form:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Reply answers a chatbot message from inventory data.
//
// @Summary      Chatbot
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Message"
// @Success      200   {object}  chatResponse
// @Failure      500   {object}  chatResponse
// @Router       /chatbot [post]
func (h *ChatbotHandler) Reply(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, chatResponse{Reply: chatbotFailure})
	}

	reply, err := h.chatbot.Reply(c.Request().Context(), req.Message)
	if err != nil {
		h.log.Error().Err(err).Msg("chatbot reply")
		return c.JSON(http.StatusInternalServerError, chatResponse{Reply: chatbotFailure})
	}
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
