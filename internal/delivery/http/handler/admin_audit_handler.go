package handler

import (
	"net/http"
	"strconv"

	"healthapp-backend/internal/delivery/http/middleware"
	"healthapp-backend/internal/usecase"
	"healthapp-backend/pkg/response"
)

// AdminAuditHandler exposes the audit trail to admins.
type AdminAuditHandler struct {
	auditUsecase usecase.AuditUsecase
}

func NewAdminAuditHandler(auditUsecase usecase.AuditUsecase) *AdminAuditHandler {
	return &AdminAuditHandler{
		auditUsecase: auditUsecase,
	}
}

// ListRecent handles listing the newest audit entries
// @Summary List recent audit entries
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of entries (default 50)"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AdminAuditHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	roles, _ := middleware.GetRolesFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.auditUsecase.ListRecent(r.Context(), roles, limit)
	if err != nil {
		if err == usecase.ErrForbidden {
			response.Forbidden(w, "Admin role required")
			return
		}
		response.InternalServerError(w, "Failed to list audit entries")
		return
	}

	response.Success(w, http.StatusOK, "Audit entries retrieved successfully", entries)
}
