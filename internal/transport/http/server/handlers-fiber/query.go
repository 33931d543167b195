package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// GetTeam returns a stored team by name.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	team, err := h.uc.Team(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(team)
}

// GetProposal returns a stored proposal by title.
func (h *Handler) GetProposal(c *fiber.Ctx) error {
	proposal, err := h.uc.Proposal(c.UserContext(), c.Query("title"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(proposal)
}

// GetPullRequest returns the stored summary of a pull request.
func (h *Handler) GetPullRequest(c *fiber.Ctx) error {
	number, err := pullRequestNumber(c)
	if err != nil {
		return writeError(c, err)
	}

	summary, err := h.uc.PullRequest(c.UserContext(), number)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}

// ListPullRequests returns every stored summary joined with its proposal and team.
func (h *Handler) ListPullRequests(c *fiber.Ctx) error {
	details, err := h.uc.PullRequests(c.UserContext())
	if err != nil {
		h.log.Errorw("list pull requests failed", "error", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(details)
}
