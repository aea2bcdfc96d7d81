package handler

import (
	"encoding/json"
	"net/http"

	"healthapp-backend/internal/delivery/dto"
	"healthapp-backend/internal/delivery/http/middleware"
	"healthapp-backend/internal/usecase"
	"healthapp-backend/pkg/response"
	"healthapp-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// AdminDoctorHandler exposes the activation workflow to admins.
type AdminDoctorHandler struct {
	activationUsecase usecase.DoctorActivationUsecase
	validator         *validator.CustomValidator
}

func NewAdminDoctorHandler(activationUsecase usecase.DoctorActivationUsecase, validator *validator.CustomValidator) *AdminDoctorHandler {
	return &AdminDoctorHandler{
		activationUsecase: activationUsecase,
		validator:         validator,
	}
}

// ListPending handles listing doctors awaiting a decision
// @Summary List pending doctors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/doctors/pending [get]
func (h *AdminDoctorHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	roles, _ := middleware.GetRolesFromContext(r.Context())

	doctors, err := h.activationUsecase.ListPending(r.Context(), roles)
	if err != nil {
		h.writeActivationError(w, err, "Failed to list pending doctors")
		return
	}

	response.Success(w, http.StatusOK, "Pending doctors retrieved successfully", doctors)
}

// ListActivated handles listing approved doctors
// @Summary List activated doctors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/doctors/activated [get]
func (h *AdminDoctorHandler) ListActivated(w http.ResponseWriter, r *http.Request) {
	roles, _ := middleware.GetRolesFromContext(r.Context())

	doctors, err := h.activationUsecase.ListApproved(r.Context(), roles)
	if err != nil {
		h.writeActivationError(w, err, "Failed to list activated doctors")
		return
	}

	response.Success(w, http.StatusOK, "Activated doctors retrieved successfully", doctors)
}

// CountPending handles counting doctors awaiting a decision
// @Summary Count pending doctors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors/pending/count [get]
func (h *AdminDoctorHandler) CountPending(w http.ResponseWriter, r *http.Request) {
	roles, _ := middleware.GetRolesFromContext(r.Context())

	count, err := h.activationUsecase.CountPending(r.Context(), roles)
	if err != nil {
		h.writeActivationError(w, err, "Failed to count pending doctors")
		return
	}

	response.Success(w, http.StatusOK, "Pending doctor count retrieved successfully", count)
}

// CountActivated handles counting approved doctors
// @Summary Count activated doctors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors/activated/count [get]
func (h *AdminDoctorHandler) CountActivated(w http.ResponseWriter, r *http.Request) {
	roles, _ := middleware.GetRolesFromContext(r.Context())

	count, err := h.activationUsecase.CountApproved(r.Context(), roles)
	if err != nil {
		h.writeActivationError(w, err, "Failed to count activated doctors")
		return
	}

	response.Success(w, http.StatusOK, "Activated doctor count retrieved successfully", count)
}

// Activate handles approving a pending doctor
// @Summary Activate a doctor
// @Description Approve a pending activation request
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors/{doctorId}/activate [post]
func (h *AdminDoctorHandler) Activate(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roles, _ := middleware.GetRolesFromContext(r.Context())

	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.activationUsecase.Approve(r.Context(), adminID, roles, doctorID)
	if err != nil {
		h.writeActivationError(w, err, "Failed to activate doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor activated successfully", doctor)
}

// Reject handles rejecting a pending doctor
// @Summary Reject a doctor
// @Description Reject a pending activation request with an optional reason
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param request body dto.RejectDoctorRequest false "Reject Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors/{doctorId}/reject [post]
func (h *AdminDoctorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roles, _ := middleware.GetRolesFromContext(r.Context())

	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	// Body is optional; an empty reason falls back to the stored default
	var req dto.RejectDoctorRequest
	json.NewDecoder(r.Body).Decode(&req)

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.activationUsecase.Reject(r.Context(), adminID, roles, doctorID, &req)
	if err != nil {
		h.writeActivationError(w, err, "Failed to reject doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor rejected successfully", doctor)
}

// Delete handles removing an approved doctor
// @Summary Delete a doctor
// @Description Remove an approved doctor and all their appointments
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors/{doctorId} [delete]
func (h *AdminDoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roles, _ := middleware.GetRolesFromContext(r.Context())

	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.activationUsecase.DeleteDoctor(r.Context(), adminID, roles, doctorID); err != nil {
		h.writeActivationError(w, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *AdminDoctorHandler) writeActivationError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrForbidden:
		response.Forbidden(w, "Admin role required")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrActivationConflict:
		response.Conflict(w, "Activation request has already been decided")
	case usecase.ErrDeleteNotApproved:
		response.Conflict(w, "Only approved doctors can be removed")
	default:
		response.InternalServerError(w, fallback)
	}
}
