package store

import (
	"encoding/json"
	"errors"

	"kv-storage/core/logger"
	"kv-storage/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles the wire protocol of the KV Storage API.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the /v1 routes. The literal namespaces route must
// precede the :namespace wildcard.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/v1")
	group.Get("/namespaces", h.HandleListNamespaces)
	group.Get("/:namespace", h.HandleList)
	group.Get("/:namespace/:key", h.HandleGet)
	group.Put("/:namespace/:key", h.HandlePut)
	group.Delete("/:namespace/:key", h.HandleDelete)
}

// HandleGet returns a stored value.
// @Summary Get Value
// @Description Returns the value stored under a key.
// @Tags kv
// @Produce json
// @Param namespace path string true "Namespace"
// @Param key path string true "Key"
// @Success 200 {object} map[string]interface{} "{\"value\": ...}"
// @Failure 400 {object} server.ErrorBody
// @Failure 401 {object} server.ErrorBody
// @Failure 404 {object} server.ErrorBody
// @Security BearerAuth
// @Router /v1/{namespace}/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	entry, err := h.service.Get(c.UserContext(), server.Param(c, "namespace"), server.Param(c, "key"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(valueResponse{Value: entry.Value})
}

// HandlePut stores a value.
// @Summary Put Value
// @Description Creates or replaces the value stored under a key.
// @Tags kv
// @Accept json
// @Produce json
// @Param namespace path string true "Namespace"
// @Param key path string true "Key"
// @Param body body map[string]interface{} true "{\"value\": ...}"
// @Success 201 {object} map[string]string "Confirmation message"
// @Failure 400 {object} server.ErrorBody
// @Failure 401 {object} server.ErrorBody
// @Security BearerAuth
// @Router /v1/{namespace}/{key} [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &body); err != nil || body == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Request body must be a JSON object")
	}
	value, ok := body["value"]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Missing value")
	}

	if err := h.service.Put(c.UserContext(), server.Param(c, "namespace"), server.Param(c, "key"), value); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(messageResponse{Message: "Value stored successfully"})
}

// HandleDelete removes a value.
// @Summary Delete Value
// @Description Removes a key. Deleting a missing key succeeds.
// @Tags kv
// @Param namespace path string true "Namespace"
// @Param key path string true "Key"
// @Success 204
// @Failure 400 {object} server.ErrorBody
// @Failure 401 {object} server.ErrorBody
// @Security BearerAuth
// @Router /v1/{namespace}/{key} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), server.Param(c, "namespace"), server.Param(c, "key")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleList lists the keys of a namespace.
// @Summary List Keys
// @Description Lists the keys of a namespace ordered by key, optionally filtered by a literal prefix.
// @Tags kv
// @Produce json
// @Param namespace path string true "Namespace"
// @Param prefix query string false "Key prefix"
// @Success 200 {object} map[string]interface{} "{\"keys\": [...]}"
// @Failure 400 {object} server.ErrorBody
// @Failure 401 {object} server.ErrorBody
// @Security BearerAuth
// @Router /v1/{namespace} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	entries, err := h.service.List(c.UserContext(), server.Param(c, "namespace"), server.Query(c, "prefix"))
	if err != nil {
		return h.fail(c, err)
	}

	keys := make([]keyView, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, keyView{
			Key:       e.Key,
			CreatedAt: e.CreatedAt.UTC().Format(TimestampFormat),
			UpdatedAt: e.UpdatedAt.UTC().Format(TimestampFormat),
		})
	}
	return c.JSON(keysResponse{Keys: keys})
}

// HandleListNamespaces lists namespaces holding keys.
// @Summary List Namespaces
// @Tags kv
// @Produce json
// @Success 200 {object} map[string]interface{} "{\"namespaces\": [...]}"
// @Failure 401 {object} server.ErrorBody
// @Security BearerAuth
// @Router /v1/namespaces [get]
func (h *Handler) HandleListNamespaces(c *fiber.Ctx) error {
	namespaces, err := h.service.Namespaces(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	views := make([]namespaceView, 0, len(namespaces))
	for _, ns := range namespaces {
		views = append(views, namespaceView{Name: ns.Name, CreatedAt: ns.CreatedAt.UTC().Format(TimestampFormat)})
	}
	return c.JSON(namespacesResponse{Namespaces: views})
}

// fail maps service errors to HTTP errors rendered by the app's error handler.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if status, message, ok := statusFor(err); ok {
		return fiber.NewError(status, message)
	}

	logger.WithRequestID(h.service.logger, c).Error("Store operation failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return err
}

// statusFor returns the client-facing status and message of a service error.
func statusFor(err error) (int, string, bool) {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound, "Key not found", true
	case errors.Is(err, ErrInvalidNamespace):
		return fiber.StatusBadRequest, "Namespace name must contain only lowercase letters, numbers, and hyphens", true
	case errors.Is(err, ErrInvalidKey):
		return fiber.StatusBadRequest, "Key must contain only alphanumeric characters, colons, underscores, dots, and hyphens", true
	case errors.Is(err, ErrValueTooLarge):
		return fiber.StatusBadRequest, "Value size must not exceed 400KB", true
	case errors.Is(err, ErrInvalidValue):
		return fiber.StatusBadRequest, "Value must be valid JSON", true
	}
	return 0, "", false
}
