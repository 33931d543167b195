// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"github.com/Zaniyar/grantmaster/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the crawler trigger and read endpoints.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log.Named("http"),
		uc:  usecase,
	}
}

// RegisterRoutes mounts all endpoints on router.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	api := router.Group("/api")

	crawler := api.Group("/crawler")
	crawler.Get("/scan-prs", h.GetScanPRs)
	crawler.Post("/pull-requests/:id", h.PostSynthesizePullRequest)
	crawler.Post("/rescan-stored", h.PostRescanStored)

	api.Get("/teams", h.GetTeam)
	api.Get("/proposals", h.GetProposal)
	api.Get("/pull-requests", h.ListPullRequests)
	api.Get("/pull-requests/:id", h.GetPullRequest)
}
