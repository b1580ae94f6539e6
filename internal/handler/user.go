package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventengine/eventengine/internal/auth"
	"github.com/eventengine/eventengine/internal/queue"
	"github.com/eventengine/eventengine/internal/repository"
	"github.com/eventengine/eventengine/internal/response"
	"github.com/eventengine/eventengine/internal/utils"
)

// UserHandler bundles dependencies for login, registration and
// attendance recording. PublishAttendance is optional; when set, a
// successful attend emits an event to the broker without blocking the
// response.
type UserHandler struct {
	Tokens            *auth.TokenService
	Users             UserStore
	Nodes             NodeStore
	Attendance        AttendanceStore
	BcryptCost        int
	PublishAttendance func(ctx context.Context, ev queue.AttendanceRecordedEvent) error
}

func NewUserHandler(tokens *auth.TokenService, users UserStore, nodes NodeStore, att AttendanceStore, bcryptCost int) *UserHandler {
	if tokens == nil || users == nil || nodes == nil || att == nil {
		panic("nil dependency passed to NewUserHandler")
	}
	return &UserHandler{
		Tokens:     tokens,
		Users:      users,
		Nodes:      nodes,
		Attendance: att,
		BcryptCost: bcryptCost,
	}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Klasa    string `json:"klasa"`
}

type attendReq struct {
	Token  string `json:"token"`
	NodeID uint64 `json:"node_id"`
}

// userPart is the user summary returned next to a fresh token.
type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Class string `json:"class"`
	Role  string `json:"role"`
}

// Login handles POST /user/login: verify credentials, issue a token.
// Unknown email and wrong password are indistinguishable to the
// caller.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return response.Error(c, http.StatusBadRequest, "Email and password are required")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to load user")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return response.Error(c, http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.Tokens.Issue(auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  userPart{ID: u.ID, Email: u.Email, Class: u.Class, Role: u.Role},
	})
}

// Register handles POST /user/register. Registering an existing email
// is rejected with a conflict; no duplicate row is ever created thanks
// to the unique key on users.email.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return response.Error(c, http.StatusBadRequest, "Email and password are required")
	}
	if strings.TrimSpace(req.Klasa) == "" {
		return response.Error(c, http.StatusBadRequest, "Class is required")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Email, req.Password, strings.TrimSpace(req.Klasa), h.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return response.Error(c, http.StatusConflict, "User already exists")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to register user")
	}
	return response.Success(c, http.StatusCreated,
		fmt.Sprintf("User %s registered successfully", req.Email), nil)
}

// Attend handles POST /user/attend. The user comes from the verified
// token, the node from the body. The attendance table's primary key
// makes a second attend for the same pair a conflict.
func (h *UserHandler) Attend(c echo.Context) error {
	var req attendReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NodeID == 0 {
		return response.Error(c, http.StatusBadRequest, "Node ID is required")
	}
	if req.Token == "" {
		return response.Error(c, http.StatusUnauthorized, "Token is required")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	claims, err := h.Tokens.Verify(ctx, req.Token)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	node, err := h.Nodes.GetByID(ctx, req.NodeID)
	if err != nil {
		if errors.Is(err, repository.ErrNodeNotFound) {
			return response.Error(c, http.StatusNotFound, "Node not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to load node")
	}

	at, err := h.Attendance.Record(ctx, claims.UserID, req.NodeID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRecorded) {
			return response.Error(c, http.StatusConflict, "Attendance already recorded")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to record attendance")
	}

	if h.PublishAttendance != nil {
		ev := queue.AttendanceRecordedEvent{
			UserID:     claims.UserID,
			Email:      claims.Email,
			NodeID:     node.ID,
			NodeName:   node.Name,
			Location:   node.Location,
			RecordedAt: at.Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			if err := h.PublishAttendance(pubCtx, ev); err != nil {
				log.Printf("attendance event publish failed: %v", err)
			}
		}()
	}

	return response.Success(c, http.StatusCreated,
		fmt.Sprintf("Attendance for node %d recorded successfully", req.NodeID), nil)
}
