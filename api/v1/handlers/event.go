package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tally/internal/dispatch"
	"tally/internal/models"
)

type EventHandle struct {
	dispatcher *dispatch.Dispatcher
}

func RegisterEvents(events fiber.Router, d *dispatch.Dispatcher) {
	handler := EventHandle{dispatcher: d}

	events.Post("/", handler.Handle)
}

// Handle 处理聊天端回调事件
func (h *EventHandle) Handle(ctx *fiber.Ctx) error {
	var ev models.Event
	if err := ctx.BodyParser(&ev); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid event payload",
		})
	}

	resp := h.dispatcher.Dispatch(ctx.UserContext(), ev)
	return ctx.JSON(resp)
}
