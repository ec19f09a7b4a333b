package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aulaflex/tutor-scheduler/internal/dto"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
	"github.com/aulaflex/tutor-scheduler/internal/httpresp"
	"github.com/aulaflex/tutor-scheduler/internal/middleware"
	ucBooking "github.com/aulaflex/tutor-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC   *ucBooking.CreateReservation
	respondUC  *ucBooking.RespondReservation
	completeUC *ucBooking.CompleteReservation
	cancelUC   *ucBooking.CancelReservation
	listUC     *ucBooking.ListReservations
}

func NewReservationHandler(
	createUC *ucBooking.CreateReservation,
	respondUC *ucBooking.RespondReservation,
	completeUC *ucBooking.CompleteReservation,
	cancelUC *ucBooking.CancelReservation,
	listUC *ucBooking.ListReservations,
) *ReservationHandler {
	return &ReservationHandler{
		createUC:   createUC,
		respondUC:  respondUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

type RespondReservationRequest struct {
	Action string `json:"action" binding:"required,oneof=confirm reject"`
	Reason string `json:"reason"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	studentID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed reservation payload.")
		return
	}

	res, remaining, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateReservationInput{
		StudentID: studentID,
		CourseID:  req.CourseID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"reservation":       res,
		"remaining_lessons": remaining,
	})
}

func (h *ReservationHandler) Respond(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Reservation id must be a uuid.")
		return
	}

	var req RespondReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Action must be confirm or reject.")
		return
	}

	res, err := h.respondUC.Execute(c.Request.Context(), ucBooking.RespondReservationInput{
		ReservationID: id,
		TeacherID:     teacherID,
		Action:        req.Action,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, gin.H{"reservation": res})
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Reservation id must be a uuid.")
		return
	}

	out, err := h.completeUC.Execute(c.Request.Context(), ucBooking.CompleteReservationInput{
		ReservationID: id,
		ActorID:       actorID,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"reservation":        out.Reservation,
		"is_fully_completed": out.IsFullyCompleted,
	})
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Reservation id must be a uuid.")
		return
	}

	var req CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Malformed cancel payload.")
		return
	}

	res, refunded, err := h.cancelUC.Execute(c.Request.Context(), ucBooking.CancelReservationInput{
		ReservationID: id,
		ActorID:       actorID,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"reservation":      res,
		"refunded_lessons": refunded,
	})
}

func (h *ReservationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	rows, err := h.listUC.Execute(c.Request.Context(), userID, role)
	if err != nil {
		httperr.From(c, err)
		return
	}

	items := make([]dto.ReservationListDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ReservationListDTO{
			UUID:             r.UUID,
			CourseTitle:      r.Course.Title,
			ReserveTime:      r.ReserveTime,
			EndTime:          r.EndTime(),
			TeacherStatus:    r.TeacherStatus,
			StudentStatus:    r.StudentStatus,
			ResponseDeadline: r.ResponseDeadline,
		})
	}

	httpresp.List(c, items)
}
