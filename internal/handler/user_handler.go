package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/leaderboard-backend/internal/model"
	"github.com/shinyyama/leaderboard-backend/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type UserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalPoints int64  `json:"totalPoints"`
	CreatedAt   string `json:"createdAt"`
}

type CreateUserRequest struct {
	Name string `json:"name"`
}

func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, err := h.svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return respondError(c, err, "failed to create user")
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch users")
	}
	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch user")
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		TotalPoints: u.TotalPoints,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
