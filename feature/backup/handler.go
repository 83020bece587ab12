package backup

import (
	"errors"

	"kv-storage/core/kv"
	"kv-storage/core/logger"
	"kv-storage/core/reconcile"
	"kv-storage/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for namespace snapshots.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the backup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/backups")
	group.Get("/:namespace", h.HandleList)
	group.Post("/:namespace", h.HandleExport)
	group.Delete("/:namespace", h.HandleRemove)
	group.Get("/:namespace/verify", h.HandleVerify)
	group.Post("/:namespace/restore", h.HandleRestore)
}

// HandleList lists the snapshots of a namespace.
// @Summary List Snapshots
// @Tags backup
// @Produce json
// @Param namespace path string true "Namespace"
// @Success 200 {object} map[string]interface{} "{\"snapshots\": [...]}"
// @Failure 400 {object} server.ErrorBody
// @Security BearerAuth
// @Router /backups/{namespace} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	infos, err := h.service.List(c.UserContext(), server.Param(c, "namespace"))
	if err != nil {
		return h.fail(c, err)
	}
	if infos == nil {
		infos = []Info{}
	}
	return c.JSON(fiber.Map{"snapshots": infos})
}

// HandleExport snapshots a namespace.
// @Summary Export Namespace
// @Description Reads every key of the namespace and writes a snapshot object.
// @Tags backup
// @Produce json
// @Param namespace path string true "Namespace"
// @Success 201 {object} Info
// @Failure 400 {object} server.ErrorBody
// @Security BearerAuth
// @Router /backups/{namespace} [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	info, err := h.service.Export(c.UserContext(), server.Param(c, "namespace"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// HandleRemove deletes a snapshot.
// @Summary Remove Snapshot
// @Tags backup
// @Param namespace path string true "Namespace"
// @Param object query string true "Snapshot object name"
// @Success 204
// @Failure 400 {object} server.ErrorBody
// @Security BearerAuth
// @Router /backups/{namespace} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	object := server.Query(c, "object")
	if object == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing object")
	}
	if err := h.service.Remove(c.UserContext(), server.Param(c, "namespace"), object); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleVerify compares a snapshot with the live namespace.
// @Summary Verify Snapshot
// @Description Diffs a snapshot (newest when object is omitted) against the live namespace.
// @Tags backup
// @Produce json
// @Param namespace path string true "Namespace"
// @Param object query string false "Snapshot object name"
// @Success 200 {object} VerifyResult
// @Failure 404 {object} server.ErrorBody
// @Security BearerAuth
// @Router /backups/{namespace}/verify [get]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	result, err := h.service.Verify(c.UserContext(), server.Param(c, "namespace"), server.Query(c, "object"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// HandleRestore restores a snapshot into the namespace.
// @Summary Restore Snapshot
// @Description Plans the writes needed to restore a snapshot and runs them when confirm=true.
// @Tags backup
// @Produce json
// @Param namespace path string true "Namespace"
// @Param object query string false "Snapshot object name"
// @Param prune query bool false "Delete keys absent from the snapshot"
// @Param confirm query bool false "Execute the planned actions"
// @Success 200 {object} RestoreResult
// @Failure 404 {object} server.ErrorBody
// @Security BearerAuth
// @Router /backups/{namespace}/restore [post]
func (h *Handler) HandleRestore(c *fiber.Ctx) error {
	opts := reconcile.Options{
		Prune:     c.QueryBool("prune"),
		Confirmed: c.QueryBool("confirm"),
	}
	opts.DryRun = !opts.Confirmed

	result, err := h.service.Restore(c.UserContext(), server.Param(c, "namespace"), server.Query(c, "object"), opts)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var minioErr minio.ErrorResponse
	var httpErr *kv.HTTPError
	switch {
	case errors.Is(err, ErrNoSnapshots):
		return fiber.NewError(fiber.StatusNotFound, "No snapshots found")
	case errors.Is(err, ErrForeignObject):
		return fiber.NewError(fiber.StatusBadRequest, "Object does not belong to this namespace")
	case errors.Is(err, kv.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid namespace")
	case errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey":
		return fiber.NewError(fiber.StatusNotFound, "Snapshot not found")
	case errors.As(err, &httpErr) && httpErr.StatusCode < fiber.StatusInternalServerError:
		return fiber.NewError(httpErr.StatusCode, httpErr.Message)
	}

	logger.WithRequestID(h.service.logger, c).Error("Backup operation failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return err
}
