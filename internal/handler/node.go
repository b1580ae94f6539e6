package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventengine/eventengine/internal/auth"
	"github.com/eventengine/eventengine/internal/repository"
	"github.com/eventengine/eventengine/internal/response"
)

// NodeHandler bundles dependencies for the node endpoints. Every
// request carries its token in the JSON body, so verification happens
// here after binding rather than in a header middleware.
type NodeHandler struct {
	Tokens *auth.TokenService
	Nodes  NodeStore
}

func NewNodeHandler(tokens *auth.TokenService, nodes NodeStore) *NodeHandler {
	if tokens == nil || nodes == nil {
		panic("nil dependency passed to NewNodeHandler")
	}
	return &NodeHandler{Tokens: tokens, Nodes: nodes}
}

// ----- DTOs -----

type tokenReq struct {
	Token string `json:"token"`
}

type nodeIDReq struct {
	Token  string `json:"token"`
	NodeID uint64 `json:"node_id"`
}

type nodeAddReq struct {
	Token        string  `json:"token"`
	NodeName     string  `json:"node_name"`
	NodeLocation string  `json:"node_location"`
	Description  *string `json:"description"`
}

type nodeUpdateReq struct {
	Token        string  `json:"token"`
	NodeID       uint64  `json:"node_id"`
	NodeName     *string `json:"node_name"`
	NodeLocation *string `json:"node_location"`
	Description  *string `json:"description"`
}

// storeCtx bounds a store call the same way across all handlers.
func storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// authorize verifies the body token and optionally requires the admin
// role. The error it returns is already a rendered response.
func (h *NodeHandler) authorize(ctx context.Context, c echo.Context, token string, needAdmin bool) (auth.Claims, error) {
	if token == "" {
		return auth.Claims{}, response.Error(c, http.StatusUnauthorized, "Token is required")
	}
	claims, err := h.Tokens.Verify(ctx, token)
	if err != nil {
		return auth.Claims{}, response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
	}
	if needAdmin && !auth.IsAdmin(claims) {
		return auth.Claims{}, response.Error(c, http.StatusForbidden, "Admin privileges required")
	}
	return claims, nil
}

// List handles POST /node/. Admin only. An empty store yields an empty
// array, not an error.
func (h *NodeHandler) List(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if _, err := h.authorize(ctx, c, req.Token, true); err != nil {
		return err
	}
	nodes, err := h.Nodes.List(ctx)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to load nodes")
	}
	return response.Success(c, http.StatusOK, "List of nodes retrieved successfully", nodes)
}

// Detail handles POST /node/details. Any authenticated caller.
func (h *NodeHandler) Detail(c echo.Context) error {
	var req nodeIDReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NodeID == 0 {
		return response.Error(c, http.StatusBadRequest, "Node ID is required")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if _, err := h.authorize(ctx, c, req.Token, false); err != nil {
		return err
	}
	node, err := h.Nodes.GetByID(ctx, req.NodeID)
	if err != nil {
		if errors.Is(err, repository.ErrNodeNotFound) {
			return response.Error(c, http.StatusNotFound, "Node not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to load node")
	}
	return response.Success(c, http.StatusOK,
		fmt.Sprintf("Details of node %d retrieved successfully", req.NodeID), node)
}

// Add handles POST /node/add. Admin only.
func (h *NodeHandler) Add(c echo.Context) error {
	var req nodeAddReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NodeName == "" {
		return response.Error(c, http.StatusBadRequest, "Node name is required")
	}
	if req.NodeLocation == "" {
		return response.Error(c, http.StatusBadRequest, "Node location is required")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if _, err := h.authorize(ctx, c, req.Token, true); err != nil {
		return err
	}
	if _, err := h.Nodes.Create(ctx, req.NodeName, req.NodeLocation, req.Description); err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to add node")
	}
	return response.Success(c, http.StatusCreated,
		fmt.Sprintf("Node with name %s added successfully", req.NodeName), nil)
}

// Update handles POST /node/update. Admin only; only supplied fields
// are written.
func (h *NodeHandler) Update(c echo.Context) error {
	var req nodeUpdateReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NodeID == 0 {
		return response.Error(c, http.StatusBadRequest, "Node ID is required")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if _, err := h.authorize(ctx, c, req.Token, true); err != nil {
		return err
	}
	if err := h.Nodes.Update(ctx, req.NodeID, req.NodeName, req.NodeLocation, req.Description); err != nil {
		if errors.Is(err, repository.ErrNodeNotFound) {
			return response.Error(c, http.StatusNotFound, "Node not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to update node")
	}
	return response.Success(c, http.StatusOK,
		fmt.Sprintf("Node with id %d updated successfully", req.NodeID), nil)
}

// Delete handles POST /node/delete. Admin only.
func (h *NodeHandler) Delete(c echo.Context) error {
	var req nodeIDReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NodeID == 0 {
		return response.Error(c, http.StatusBadRequest, "Node ID is required")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if _, err := h.authorize(ctx, c, req.Token, true); err != nil {
		return err
	}
	if err := h.Nodes.Delete(ctx, req.NodeID); err != nil {
		if errors.Is(err, repository.ErrNodeNotFound) {
			return response.Error(c, http.StatusNotFound, "Node not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to delete node")
	}
	return response.Success(c, http.StatusOK,
		fmt.Sprintf("Node with id %d deleted successfully", req.NodeID), nil)
}

// History, Export and Import are deliberate no-op stubs. They check
// that the body carries a token and a node id and acknowledge without
// touching the store. Do not add behavior here without a real design
// for node auditing.

// History handles POST /node/history. Not implemented.
func (h *NodeHandler) History(c echo.Context) error {
	return h.stub(c, "Node history is not implemented")
}

// Export handles POST /node/export. Not implemented.
func (h *NodeHandler) Export(c echo.Context) error {
	return h.stub(c, "Node export is not implemented")
}

// Import handles POST /node/import. Not implemented.
func (h *NodeHandler) Import(c echo.Context) error {
	return h.stub(c, "Node import is not implemented")
}

func (h *NodeHandler) stub(c echo.Context, msg string) error {
	var req nodeIDReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.NodeID == 0 {
		return response.Error(c, http.StatusBadRequest, "Node ID is required")
	}
	if req.Token == "" {
		return response.Error(c, http.StatusUnauthorized, "Token is required")
	}
	return response.Success(c, http.StatusOK, msg, nil)
}
