package handler

import (
	"errors"
	"log"
	"time"

	"backend-triage/internal/models"
	"backend-triage/internal/queue"
	"backend-triage/internal/realtime"

	"github.com/gofiber/fiber/v2"
)

// QueueHandler exposes the queue engine over HTTP. Hub is optional; when set,
// every successful mutation announces a display-board update.
type QueueHandler struct {
	Engine *queue.Engine
	Hub    *realtime.Hub
}

// AddPatientRequest - request body for admitting a patient. Binding into
// typed ints rejects non-numeric age/priority outright; no coercion.
type AddPatientRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Priority int    `json:"priority"`
}

type RemoveServedRequest struct {
	ID int64 `json:"id"`
}

func (h *QueueHandler) notify(c *fiber.Ctx, event string) {
	if h.Hub != nil {
		h.Hub.Publish(c.Context(), event)
	}
}

// queueError maps engine error kinds to HTTP responses.
func queueError(c *fiber.Ctx, err error) error {
	var validationErr *queue.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   validationErr.Error(),
		})
	case errors.Is(err, queue.ErrEmptyQueue):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "No patients in queue",
		})
	case errors.Is(err, queue.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Patient not found",
		})
	case errors.Is(err, queue.ErrStillQueued):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Patient has not been served yet",
		})
	default:
		log.Printf("[queue] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal storage error",
		})
	}
}

// AddPatient - POST /api/add
func (h *QueueHandler) AddPatient(c *fiber.Ctx) error {
	var req AddPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body: name, age and priority are required",
		})
	}

	p, err := h.Engine.Add(req.Name, req.Age, req.Priority)
	if err != nil {
		return queueError(c, err)
	}

	h.notify(c, "add")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      p.ID,
		"data":    models.ToPatientResponse(p),
	})
}

// ServePatient - POST /api/serve
func (h *QueueHandler) ServePatient(c *fiber.Ctx) error {
	p, err := h.Engine.Serve()
	if err != nil {
		return queueError(c, err)
	}

	h.notify(c, "serve")

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.ToPatientResponse(p),
	})
}

// SortQueue - POST /api/sort
func (h *QueueHandler) SortQueue(c *fiber.Ctx) error {
	queued, err := h.Engine.Sort()
	if err != nil {
		return queueError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.ToPatientResponses(queued),
	})
}

// ClearQueue - POST /api/clear
func (h *QueueHandler) ClearQueue(c *fiber.Ctx) error {
	queuedRemoved, servedRemoved, err := h.Engine.Clear()
	if err != nil {
		return queueError(c, err)
	}

	h.notify(c, "clear")

	return c.JSON(fiber.Map{
		"success":        true,
		"queued_removed": queuedRemoved,
		"served_removed": servedRemoved,
	})
}

// RemoveServed - POST /api/remove_served
func (h *QueueHandler) RemoveServed(c *fiber.Ctx) error {
	var req RemoveServedRequest
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing patient ID",
		})
	}

	if err := h.Engine.RemoveServed(req.ID); err != nil {
		return queueError(c, err)
	}

	h.notify(c, "remove_served")

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// GetQueue - GET /api/queue
func (h *QueueHandler) GetQueue(c *fiber.Ctx) error {
	queued, err := h.Engine.ListQueued()
	if err != nil {
		return queueError(c, err)
	}
	served, err := h.Engine.ListServed()
	if err != nil {
		return queueError(c, err)
	}

	return c.JSON(fiber.Map{
		"queue":  models.ToPatientResponses(queued),
		"served": models.ToPatientResponses(served),
	})
}

// ExportData - GET /api/export
func (h *QueueHandler) ExportData(c *fiber.Ctx) error {
	export, err := h.Engine.ExportAll()
	if err != nil {
		return queueError(c, err)
	}

	return c.JSON(fiber.Map{
		"patients":       models.ToPatientResponses(export.Patients),
		"timestamp":      time.Now().Format(time.RFC3339),
		"total_patients": export.Total,
		"queued_count":   export.QueuedCount,
		"served_count":   export.ServedCount,
	})
}
