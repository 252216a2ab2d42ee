package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"weddingrsvp/internal/delivery/http/helpers"
	"weddingrsvp/internal/domain"
	"weddingrsvp/internal/listing"
)

// CreateResponseRequest is the request body for POST /responses (admin entry).
type CreateResponseRequest struct {
	EventID    string `json:"event_id"`
	FullName   string `json:"full_name" example:"Jane Doe"`
	Phone      string `json:"phone" example:"+55 11 99999-0000"`
	Attendance bool   `json:"attendance"`
	Message    string `json:"message"`
}

func (req CreateResponseRequest) toInput() domain.SubmitResponseInput {
	return domain.SubmitResponseInput{
		EventID:    req.EventID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Attendance: req.Attendance,
		Message:    req.Message,
	}
}

// UpdateResponseRequest is the request body for PATCH /responses/{responseID}. Omitted fields are unchanged.
// id, created_at and the resolved event are read-only and ignored when present.
type UpdateResponseRequest struct {
	EventID    *string `json:"event_id"`
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	Attendance *bool   `json:"attendance"`
	Message    *string `json:"message"`

	ID        json.RawMessage `json:"id" swaggerignore:"true"`
	CreatedAt json.RawMessage `json:"created_at" swaggerignore:"true"`
	Event     json.RawMessage `json:"event" swaggerignore:"true"`
}

func (req UpdateResponseRequest) toPatch() domain.ResponsePatch {
	return domain.ResponsePatch{
		EventID:    req.EventID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Attendance: req.Attendance,
		Message:    req.Message,
	}
}

// ResponseSuccessResponse is the success response envelope for write routes on a single response.
type ResponseSuccessResponse struct {
	Data  *domain.Response  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EnrichedResponseSuccessResponse is the success response envelope for GET /responses/{responseID} (200).
type EnrichedResponseSuccessResponse struct {
	Data  *domain.EnrichedResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListResponsesSuccessResponse is the success response envelope for GET /responses (200).
type ListResponsesSuccessResponse struct {
	Data  []*domain.EnrichedResponse `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// OverviewSuccessResponse is the success response envelope for GET /responses/overview (200).
type OverviewSuccessResponse struct {
	Data  listing.Overview  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ResponseController struct {
	Logger  *slog.Logger
	Service domain.ResponseService
	// ExportLocation is the time zone of exported dates. Nil means UTC.
	ExportLocation *time.Location
	Now            func() time.Time
}

func NewResponseController(logger *slog.Logger, svc domain.ResponseService, exportLocation *time.Location) *ResponseController {
	return &ResponseController{
		Logger:         logger,
		Service:        svc,
		ExportLocation: exportLocation,
		Now:            time.Now,
	}
}

// ListResponses godoc
// @Summary List responses
// @Description Returns responses newest first, each with its event (null when the event was deleted).
// @Tags responses
// @Produce json
// @Param event_id query string false "Only responses for this event"
// @Param confirmed query bool false "Only attending (true) or not attending (false) guests"
// @Success 200 {object} controllers.ListResponsesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /responses [get]
func (c *ResponseController) ListResponses(w http.ResponseWriter, r *http.Request) {
	filter, err := helpers.ParseResponseFilter(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	items, err := c.Service.ListResponses(r.Context(), filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// Overview godoc
// @Summary Response overview
// @Description Filtered responses with counters over the unfiltered listing. search matches name or phone.
// @Tags responses
// @Produce json
// @Param event_id query string false "Only responses for this event"
// @Param search query string false "Name or phone substring"
// @Param filter query string false "all, yes or no" Enums(all, yes, no)
// @Success 200 {object} controllers.OverviewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /responses/overview [get]
func (c *ResponseController) Overview(w http.ResponseWriter, r *http.Request) {
	q, err := helpers.ParseOverviewQuery(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	all, err := c.Service.ListResponses(r.Context(), q.Filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, listing.BuildOverview(all, q.Search, q.Attendance))
}

// Export godoc
// @Summary Export responses as CSV
// @Description Exports the responses matching the same parameters as the overview.
// @Tags responses
// @Produce text/csv
// @Param event_id query string false "Only responses for this event"
// @Param search query string false "Name or phone substring"
// @Param filter query string false "all, yes or no" Enums(all, yes, no)
// @Success 200 {file} file
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /responses/export [get]
func (c *ResponseController) Export(w http.ResponseWriter, r *http.Request) {
	q, err := helpers.ParseOverviewQuery(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	all, err := c.Service.ListResponses(r.Context(), q.Filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	items := listing.FilterResponses(all, q.Search, q.Attendance)

	// Headers are not written until the CSV is fully rendered.
	var buf bytes.Buffer
	if err := listing.WriteCSV(&buf, items, listing.ExportOptions{Location: c.ExportLocation}); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	now := c.Now()
	if c.ExportLocation != nil {
		now = now.In(c.ExportLocation)
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", listing.ExportFilename(now)))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// CreateResponse godoc
// @Summary Create a response (admin)
// @Description Records a response on behalf of a guest. The event is not required to exist.
// @Tags responses
// @Accept json
// @Produce json
// @Param response body CreateResponseRequest true "Response data"
// @Success 201 {object} controllers.ResponseSuccessResponse "data contains the created response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /responses [post]
func (c *ResponseController) CreateResponse(w http.ResponseWriter, r *http.Request) {
	var req CreateResponseRequest
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

// GetResponse godoc
// @Summary Get a response by ID
// @Tags responses
// @Produce json
// @Param responseID path string true "Response ID"
// @Success 200 {object} controllers.EnrichedResponseSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /responses/{responseID} [get]
func (c *ResponseController) GetResponse(w http.ResponseWriter, r *http.Request) {
	responseID, ok := helpers.RequirePathValue(w, r, "responseID")
	if !ok {
		return
	}
	resp, err := c.Service.GetResponse(r.Context(), responseID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "response not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// UpdateResponse godoc
// @Summary Update a response
// @Description Replaces the supplied fields; may re-point event_id or flip attendance.
// @Tags responses
// @Accept json
// @Produce json
// @Param responseID path string true "Response ID"
// @Param response body UpdateResponseRequest true "Fields to replace"
// @Success 200 {object} controllers.ResponseSuccessResponse "data contains the updated response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /responses/{responseID} [patch]
// @Router /responses/{responseID} [put]
func (c *ResponseController) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	responseID, ok := helpers.RequirePathValue(w, r, "responseID")
	if !ok {
		return
	}
	var req UpdateResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	resp, err := c.Service.UpdateResponse(r.Context(), responseID, req.toPatch())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "response not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// DeleteResponse godoc
// @Summary Delete a response
// @Tags responses
// @Produce json
// @Param responseID path string true "Response ID"
// @Success 200 {object} controllers.DeleteSuccessResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /responses/{responseID} [delete]
func (c *ResponseController) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	responseID, ok := helpers.RequirePathValue(w, r, "responseID")
	if !ok {
		return
	}
	if err := c.Service.DeleteResponse(r.Context(), responseID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "response not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}
