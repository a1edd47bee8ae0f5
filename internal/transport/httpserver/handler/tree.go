package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	memberdomain "kinship-app-go/internal/domain/member"
	treedomain "kinship-app-go/internal/domain/tree"
	"kinship-app-go/internal/transport/httpserver/middleware"
)

type setHeadsRequest struct {
	HeadA *string `json:"head_a"`
	HeadB *string `json:"head_b"`
}

type treeResponse struct {
	ID        string    `json:"id"`
	RootCode  string    `json:"root_code"`
	HeadA     *string   `json:"head_a"`
	HeadB     *string   `json:"head_b"`
	CreatedAt time.Time `json:"created_at"`
}

func toTreeResponse(t *treedomain.FamilyTree) treeResponse {
	return treeResponse{
		ID:        t.ID,
		RootCode:  t.RootCode,
		HeadA:     t.HeadA,
		HeadB:     t.HeadB,
		CreatedAt: t.CreatedAt,
	}
}

func (h *Handlers) GetMemberParents(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	edges, err := h.Trees.EdgesOf(r.Context(), code)
	if err != nil {
		h.log.InternalError("tree.parents: lookup failed", err, "code", code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, edges)
}

func (h *Handlers) GetMemberAncestors(w http.ResponseWriter, r *http.Request) {
	h.walk(w, r, h.Trees.Ancestors)
}

func (h *Handlers) GetMemberDescendants(w http.ResponseWriter, r *http.Request) {
	h.walk(w, r, h.Trees.Descendants)
}

func (h *Handlers) walk(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, code string, depth int) ([]treedomain.Relative, error),
) {
	code := chi.URLParam(r, "code")
	depth, _ := strconv.Atoi(r.URL.Query().Get("depth"))

	relatives, err := fn(r.Context(), code, depth)
	if err != nil {
		h.log.InternalError("tree.walk: traversal failed", err, "code", code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if relatives == nil {
		relatives = []treedomain.Relative{}
	}
	writeJSON(w, http.StatusOK, relatives)
}

func (h *Handlers) RemoveEdge(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	if actor.Role != memberdomain.RoleAdmin {
		writeError(w, http.StatusForbidden, "forbidden", "not permitted")
		return
	}

	code := chi.URLParam(r, "code")
	role := chi.URLParam(r, "role")

	if err := h.Trees.RemoveEdge(r.Context(), code, role); err != nil {
		switch {
		case errors.Is(err, treedomain.ErrInvalidParentRole):
			writeError(w, http.StatusBadRequest, "invalid_parent_role", "parent role must be father or mother")
		case errors.Is(err, treedomain.ErrEdgeNotFound):
			writeError(w, http.StatusNotFound, "edge_not_found", "edge not found")
		default:
			h.log.InternalError("tree.remove_edge: delete failed", err, "code", code, "role", role)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetMyTree(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	t, err := h.Trees.TreeOf(r.Context(), actor.Code)
	if err != nil {
		if errors.Is(err, treedomain.ErrTreeNotFound) {
			writeError(w, http.StatusNotFound, "tree_not_found", "not part of a family tree")
			return
		}
		h.log.InternalError("tree.me: lookup failed", err, "code", actor.Code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toTreeResponse(t))
}

func (h *Handlers) SetFamilyHeads(w http.ResponseWriter, r *http.Request) {
	var req setHeadsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	t, err := h.Trees.SetHeads(r.Context(), actor, req.HeadA, req.HeadB)
	if err != nil {
		switch {
		case errors.Is(err, treedomain.ErrTreeNotFound):
			writeError(w, http.StatusNotFound, "tree_not_found", "not part of a family tree")
		case errors.Is(err, treedomain.ErrNotHead):
			h.log.BusinessError("tree.set_heads: not head", err, "actor", actor.Code)
			writeError(w, http.StatusForbidden, "forbidden", "not permitted")
		case errors.Is(err, treedomain.ErrHeadNotMember):
			writeError(w, http.StatusBadRequest, "head_not_member", "family heads must be members of the tree")
		default:
			h.log.InternalError("tree.set_heads: update failed", err, "actor", actor.Code)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toTreeResponse(t))
}
