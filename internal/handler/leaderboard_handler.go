package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/leaderboard-backend/internal/model"
	"github.com/shinyyama/leaderboard-backend/internal/service"
)

const defaultPodiumSize = 3

type LeaderboardHandler struct {
	svc service.LeaderboardService
}

func NewLeaderboardHandler(svc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

type LeaderboardEntryResponse struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	TotalPoints int64  `json:"totalPoints"`
	Rank        int    `json:"rank"`
}

func (h *LeaderboardHandler) Get(c echo.Context) error {
	entries, err := h.svc.Leaderboard(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch leaderboard")
	}
	return c.JSON(http.StatusOK, toLeaderboardResponse(entries))
}

func (h *LeaderboardHandler) Podium(c echo.Context) error {
	n := defaultPodiumSize
	if s := c.QueryParam("n"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid n"))
		}
		n = parsed
	}
	entries, err := h.svc.Podium(c.Request().Context(), n)
	if err != nil {
		return respondError(c, err, "failed to fetch leaderboard")
	}
	return c.JSON(http.StatusOK, toLeaderboardResponse(entries))
}

func toLeaderboardResponse(entries []model.LeaderboardEntry) []LeaderboardEntryResponse {
	resp := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, LeaderboardEntryResponse{
			UserID:      e.UserID,
			Name:        e.Name,
			TotalPoints: e.TotalPoints,
			Rank:        e.Rank,
		})
	}
	return resp
}
