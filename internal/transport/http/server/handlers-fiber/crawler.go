package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type acceptedResponse struct {
	Status        string `json:"status"`
	IncludeClosed *bool  `json:"includeClosed,omitempty"`
	OnlyOpen      *bool  `json:"onlyOpen,omitempty"`
}

// GetScanPRs starts a background scan of the repository's pull requests.
func (h *Handler) GetScanPRs(c *fiber.Ctx) error {
	includeClosed, err := boolQuery(c, "include-closed")
	if err != nil {
		return writeError(c, err)
	}

	h.uc.RunScan(includeClosed)
	h.log.Infow("scan triggered", "include_closed", includeClosed)
	return c.Status(http.StatusAccepted).JSON(acceptedResponse{Status: "accepted", IncludeClosed: &includeClosed})
}

// PostRescanStored starts a background rescan of the stored pull requests.
func (h *Handler) PostRescanStored(c *fiber.Ctx) error {
	onlyOpen, err := boolQuery(c, "only-open")
	if err != nil {
		return writeError(c, err)
	}

	h.uc.RunRescanStored(onlyOpen)
	h.log.Infow("stored rescan triggered", "only_open", onlyOpen)
	return c.Status(http.StatusAccepted).JSON(acceptedResponse{Status: "accepted", OnlyOpen: &onlyOpen})
}

// PostSynthesizePullRequest synthesizes one pull request and returns its summary.
func (h *Handler) PostSynthesizePullRequest(c *fiber.Ctx) error {
	number, err := pullRequestNumber(c)
	if err != nil {
		return writeError(c, err)
	}

	summary, err := h.uc.SynthesizePullRequest(c.UserContext(), number)
	if err != nil {
		h.log.Infow("synthesis request failed", "pr", number, "error", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}
