package api

import (
	"context"
	"net/http"

	"github.com/spcloud/urlship/internal/ports"
)

// LinkHandler serves /device-link: lookups by user or device and unlinking.
type LinkHandler struct {
	registry ports.LinkRegistry
	logger   ports.Logger
}

// NewLinkHandler creates a handler over registry.
func NewLinkHandler(registry ports.LinkRegistry, logger ports.Logger) *LinkHandler {
	return &LinkHandler{registry: registry, logger: logger}
}

type linkStatus struct {
	IsLinked bool   `json:"isLinked"`
	DeviceID string `json:"deviceId,omitempty"`
	UserID   string `json:"userId,omitempty"`
}

// Handle dispatches on method. GET with userId answers whether the user has
// a device; GET with deviceId answers whether the device has a user.
func (h *LinkHandler) Handle(ctx context.Context, req Request) Response {
	switch req.Method {
	case http.MethodGet, "":
		return h.lookup(ctx, req)
	case http.MethodDelete:
		return h.unlink(ctx, req)
	default:
		return messageResponse(http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *LinkHandler) lookup(ctx context.Context, req Request) Response {
	if user := req.Param("userId"); user != "" {
		link, ok, err := h.registry.DeviceForUser(ctx, user)
		if err != nil {
			return h.internalError("lookup by user failed", err)
		}
		if !ok {
			return jsonResponse(http.StatusOK, linkStatus{})
		}
		return jsonResponse(http.StatusOK, linkStatus{IsLinked: true, DeviceID: link.DeviceID})
	}

	if device := req.Param("deviceId"); device != "" {
		link, ok, err := h.registry.UserForDevice(ctx, device)
		if err != nil {
			return h.internalError("lookup by device failed", err)
		}
		if !ok {
			return jsonResponse(http.StatusOK, linkStatus{})
		}
		return jsonResponse(http.StatusOK, linkStatus{IsLinked: true, UserID: link.UserID})
	}

	return messageResponse(http.StatusBadRequest, "userId or deviceId is required in the query string.")
}

func (h *LinkHandler) unlink(ctx context.Context, req Request) Response {
	user := req.Param("userId")
	if user == "" {
		return messageResponse(http.StatusBadRequest, "Missing userId in event")
	}
	if err := h.registry.Unlink(ctx, user); err != nil {
		return h.internalError("unlink failed", err)
	}
	h.logger.Info("device link deleted", ports.String("user_id", user))
	return messageResponse(http.StatusOK, "Device link deleted successfully")
}

func (h *LinkHandler) internalError(msg string, err error) Response {
	h.logger.Error(msg, ports.Err(err))
	return jsonResponse(http.StatusInternalServerError, messageBody{
		Message: "Internal server error",
		Error:   err.Error(),
	})
}
