package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/leaderboard-backend/internal/model"
	"github.com/shinyyama/leaderboard-backend/internal/service"
)

type ClaimHandler struct {
	svc service.ClaimService
}

func NewClaimHandler(svc service.ClaimService) *ClaimHandler {
	return &ClaimHandler{svc: svc}
}

type claimRequest struct {
	UserID string `json:"userId"`
}

type ClaimResponse struct {
	Message       string       `json:"message"`
	User          UserResponse `json:"user"`
	ClaimedPoints int          `json:"claimedPoints"`
}

type ClaimEventResponse struct {
	ID        uint64  `json:"id"`
	UserID    string  `json:"userId"`
	UserName  *string `json:"userName"`
	Points    int     `json:"points"`
	Timestamp string  `json:"timestamp"`
}

func (h *ClaimHandler) Claim(c echo.Context) error {
	var req claimRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	res, err := h.svc.Claim(c.Request().Context(), req.UserID)
	if err != nil {
		return respondError(c, err, "failed to claim points")
	}
	return c.JSON(http.StatusOK, ClaimResponse{
		Message:       "Points claimed successfully",
		User:          toUserResponse(res.User),
		ClaimedPoints: res.ClaimedPoints,
	})
}

func (h *ClaimHandler) History(c echo.Context) error {
	list, err := h.svc.History(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch history")
	}
	resp := make([]ClaimEventResponse, 0, len(list))
	for _, e := range list {
		resp = append(resp, toClaimEventResponse(e.ClaimEvent, e.UserName))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ClaimHandler) UserHistory(c echo.Context) error {
	list, err := h.svc.UserHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch history")
	}
	resp := make([]ClaimEventResponse, 0, len(list))
	for _, e := range list {
		resp = append(resp, toClaimEventResponse(e.ClaimEvent, e.UserName))
	}
	return c.JSON(http.StatusOK, resp)
}

func toClaimEventResponse(e model.ClaimEvent, userName *string) ClaimEventResponse {
	return ClaimEventResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		UserName:  userName,
		Points:    e.Points,
		Timestamp: e.ClaimedAt.UTC().Format(time.RFC3339Nano),
	}
}
