package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/httpresp"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/availability"
)

type RulesHandler struct {
	editor *availability.RuleEditor
}

func NewRulesHandler(editor *availability.RuleEditor) *RulesHandler {
	return &RulesHandler{editor: editor}
}

type RuleRequest struct {
	DayOfWeek    *int   `json:"day_of_week" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	SlotDuration int    `json:"slot_duration" binding:"required"`
}

type BlockedDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// ---- rules ----

func (h *RulesHandler) ListRules(c *gin.Context) {
	rules, err := h.editor.ListRules(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rules)
}

func (h *RulesHandler) CreateRule(c *gin.Context) {
	var req RuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.editor.CreateRule(c.Request.Context(), callerID(c), availability.RuleInput{
		ResourceID:   c.Param("id"),
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		SlotDuration: req.SlotDuration,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, rule)
}

func (h *RulesHandler) UpdateRule(c *gin.Context) {
	var req RuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.editor.UpdateRule(c.Request.Context(), callerID(c), c.Param("id"), availability.RuleInput{
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		SlotDuration: req.SlotDuration,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, rule)
}

func (h *RulesHandler) DeleteRule(c *gin.Context) {
	if err := h.editor.DeleteRule(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- blocked dates ----

func (h *RulesHandler) ListBlockedDates(c *gin.Context) {
	blocked, err := h.editor.ListBlockedDates(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, blocked)
}

func (h *RulesHandler) AddBlockedDate(c *gin.Context) {
	var req BlockedDateRequest
	if !bindJSON(c, &req) {
		return
	}

	bd, err := h.editor.AddBlockedDate(c.Request.Context(), callerID(c), availability.BlockedDateInput{
		ResourceID: c.Param("id"),
		Date:       req.Date,
		Reason:     req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, bd)
}

func (h *RulesHandler) RemoveBlockedDate(c *gin.Context) {
	if err := h.editor.RemoveBlockedDate(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
