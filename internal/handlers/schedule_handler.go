package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aulaflex/tutor-scheduler/internal/httperr"
	"github.com/aulaflex/tutor-scheduler/internal/httpresp"
	"github.com/aulaflex/tutor-scheduler/internal/middleware"
	ucBooking "github.com/aulaflex/tutor-scheduler/internal/usecase/booking"
	ucSchedule "github.com/aulaflex/tutor-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	getUC      *ucSchedule.GetSchedule
	replaceUC  *ucSchedule.ReplaceSchedule
	conflictUC *ucBooking.CheckScheduleConflict
}

func NewScheduleHandler(
	getUC *ucSchedule.GetSchedule,
	replaceUC *ucSchedule.ReplaceSchedule,
	conflictUC *ucBooking.CheckScheduleConflict,
) *ScheduleHandler {
	return &ScheduleHandler{
		getUC:      getUC,
		replaceUC:  replaceUC,
		conflictUC: conflictUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotConfigRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

type ScheduleUpdateRequest struct {
	Slots []SlotConfigRequest `json:"slots" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ScheduleHandler) Get(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	slots, err := h.getUC.Execute(c.Request.Context(), teacherID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, gin.H{"available_slots": slots})
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed schedule payload.")
		return
	}

	slots := make([]ucSchedule.SlotConfig, len(req.Slots))
	for i, s := range req.Slots {
		slots[i] = ucSchedule.SlotConfig{
			Weekday:   s.Weekday,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			IsActive:  s.IsActive,
		}
	}

	out, err := h.replaceUC.Execute(c.Request.Context(), teacherID, slots)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"available_slots": out.Slots,
		"created":         out.Created,
		"deleted":         out.Deleted,
	})
}

func (h *ScheduleHandler) Conflicts(c *gin.Context) {
	teacherID := c.MustGet(middleware.ContextUserID).(uint)

	weekday, err := strconv.Atoi(c.Query("weekday"))
	if err != nil {
		httperr.BadRequest(c, "invalid_weekday", "weekday must be an integer.")
		return
	}

	report, err := h.conflictUC.Execute(c.Request.Context(), ucBooking.CheckScheduleConflictInput{
		TeacherID: teacherID,
		Weekday:   weekday,
		StartTime: c.Query("start_time"),
		EndTime:   c.Query("end_time"),
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, report)
}
