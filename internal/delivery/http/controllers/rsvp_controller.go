package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"weddingrsvp/internal/delivery/http/helpers"
	"weddingrsvp/internal/domain"
)

// RSVPRequest is the guest-facing request body for POST /rsvp.
type RSVPRequest struct {
	EventID    string `json:"event_id"`
	FullName   string `json:"full_name" example:"Jane Doe"`
	Phone      string `json:"phone" example:"+55 11 99999-0000"`
	Attendance string `json:"attendance" enums:"yes,no" example:"yes"`
	Message    string `json:"message" example:"Parabéns!"`
}

// Validate implements Validator. Attendance must be "yes" or "no".
func (req RSVPRequest) Validate() []string {
	if _, ok := parseAttendance(req.Attendance); !ok {
		return []string{`attendance must be "yes" or "no"`}
	}
	return nil
}

func parseAttendance(s string) (attending, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return true, true
	case "no":
		return false, true
	default:
		return false, false
	}
}

func (req RSVPRequest) toInput() domain.SubmitResponseInput {
	attending, _ := parseAttendance(req.Attendance)
	return domain.SubmitResponseInput{
		EventID:    req.EventID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Attendance: attending,
		Message:    req.Message,
	}
}

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.ResponseService
}

func NewRSVPController(logger *slog.Logger, svc domain.ResponseService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Submit an RSVP
// @Description Guest confirmation form. Submitting twice records two responses.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param rsvp body RSVPRequest true "Guest answer"
// @Success 201 {object} controllers.ResponseSuccessResponse "data contains the recorded response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp [post]
func (c *RSVPController) Submit(w http.ResponseWriter, r *http.Request) {
	var req RSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	resp, err := c.Service.SubmitResponse(r.Context(), req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, resp)
}
