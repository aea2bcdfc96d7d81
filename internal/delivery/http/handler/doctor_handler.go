package handler

import (
	"net/http"

	"healthapp-backend/internal/delivery/http/middleware"
	"healthapp-backend/internal/usecase"
	"healthapp-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DoctorHandler serves the patient-facing doctor directory and the doctor's
// own appointment dashboard.
type DoctorHandler struct {
	userProfileUsecase usecase.UserProfileUsecase
	appointmentUsecase usecase.AppointmentUsecase
}

func NewDoctorHandler(userProfileUsecase usecase.UserProfileUsecase, appointmentUsecase usecase.AppointmentUsecase) *DoctorHandler {
	return &DoctorHandler{
		userProfileUsecase: userProfileUsecase,
		appointmentUsecase: appointmentUsecase,
	}
}

// ListAvailable handles listing activated doctors
// @Summary List available doctors
// @Description List doctors patients can book with
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/available [get]
func (h *DoctorHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.userProfileUsecase.ListAvailableDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list available doctors")
		return
	}

	response.Success(w, http.StatusOK, "Available doctors retrieved successfully", doctors)
}

// ListMyAppointments handles listing all appointments for the doctor
// @Summary List my appointments as doctor
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/me/appointments [get]
func (h *DoctorHandler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListForDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// ListMyUpcomingAppointments handles listing still-scheduled future slots
// @Summary List my upcoming appointments as doctor
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/me/appointments/upcoming [get]
func (h *DoctorHandler) ListMyUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListUpcomingForDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

// CompleteAppointment handles marking an appointment as completed
// @Summary Complete an appointment
// @Description Mark a scheduled appointment as completed
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param appointmentId path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctors/me/appointments/{appointmentId}/complete [post]
func (h *DoctorHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Complete(r.Context(), doctorID, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentOwner:
			response.Forbidden(w, "Appointment does not belong to this account")
		case usecase.ErrAppointmentNotScheduled:
			response.Conflict(w, "Appointment is not in a scheduled state")
		default:
			response.InternalServerError(w, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}
