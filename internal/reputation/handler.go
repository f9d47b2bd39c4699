package reputation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
	httperr "github.com/lancera-lab/lancera-reputation/internal/core/errors"
	core "github.com/lancera-lab/lancera-reputation/internal/core/reputation"
)

// API exposes the counting pipeline over HTTP: ad-hoc count queries for
// operators, and a save endpoint that triggers the daily accumulation
// out of band.
type API struct {
	service *Service
	daily   *DailyJob
}

func NewAPI(service *Service, daily *DailyJob) *API {
	return &API{service: service, daily: daily}
}

// RegisterRoutes registers the reputation API routes on the given router.
func (a *API) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/api/v1/reputation")
	grp.GET("/:role/counts", a.HandleCounts)
	grp.POST("/:role/save", a.HandleSave)
}

type countsResponse struct {
	Role    core.Role     `json:"role"`
	Records []core.Record `json:"records"`
	Total   int           `json:"total"`
}

// HandleCounts handles GET /api/v1/reputation/:role/counts
// Query parameters: start, finish (RFC 3339), user_ids, actions
// (comma-separated), limit, offset.
func (a *API) HandleCounts(c *gin.Context) {
	role, ok := a.bindRole(c)
	if !ok {
		return
	}

	spec, ok := a.bindSpec(c)
	if !ok {
		return
	}

	actionIDs, ok := a.bindActions(c)
	if !ok {
		return
	}

	var (
		records []core.Record
		err     error
	)
	if actionIDs == nil {
		records, err = a.service.GetAll(c.Request.Context(), role, spec)
	} else {
		records, err = a.service.GetTarget(c.Request.Context(), role, actionIDs, spec)
	}
	if err != nil {
		if errors.Is(err, condition.ErrInvalidSpec) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidSpecError,
				Message:   "Invalid query condition",
				Details:   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to count reputation events",
			Details:   err.Error(),
		})
		return
	}

	if records == nil {
		records = []core.Record{}
	}
	c.JSON(http.StatusOK, countsResponse{Role: role, Records: records, Total: len(records)})
}

type saveRequest struct {
	Mode       string `json:"mode"`
	FinishDate string `json:"finish_date"`
}

// HandleSave handles POST /api/v1/reputation/:role/save
// Body: {"mode": "dry"|"run", "finish_date": "YYYY-MM-DD"} with mode
// defaulting to dry so an accidental call never double counts.
func (a *API) HandleSave(c *gin.Context) {
	role, ok := a.bindRole(c)
	if !ok {
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	if req.Mode == "" {
		req.Mode = string(RunModeDry)
	}
	mode, err := ParseRunMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid run mode",
			Details:   err.Error(),
		})
		return
	}

	result, err := a.daily.Run(c.Request.Context(), role, mode, req.FinishDate)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidJsonError,
				Message:   "Invalid finish date",
				Details:   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to save reputation counts",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (a *API) bindRole(c *gin.Context) (core.Role, bool) {
	role, err := core.ParseRole(c.Param("role"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnknownRoleError,
			Message:   "Unknown role",
			Details:   err.Error(),
		})
		return "", false
	}
	return role, true
}

func (a *API) bindSpec(c *gin.Context) (condition.Spec, bool) {
	var query struct {
		Start   string `form:"start"`
		Finish  string `form:"finish"`
		UserIDs string `form:"user_ids"`
		Limit   *int   `form:"limit"`
		Offset  *int   `form:"offset"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidSpecError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return condition.Spec{}, false
	}

	raw := map[string]any{}
	if query.Start != "" {
		raw[condition.KeyStartTime] = query.Start
	}
	if query.Finish != "" {
		raw[condition.KeyFinishTime] = query.Finish
	}
	if query.UserIDs != "" {
		raw[condition.KeyUserIDs] = strings.Split(query.UserIDs, ",")
	}
	if query.Limit != nil {
		raw[condition.KeyLimit] = *query.Limit
	}
	if query.Offset != nil {
		raw[condition.KeyOffset] = *query.Offset
	}

	spec, err := condition.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidSpecError,
			Message:   "Invalid query condition",
			Details:   err.Error(),
		})
		return condition.Spec{}, false
	}
	return spec, true
}

// bindActions parses the optional comma-separated actions parameter. A nil
// slice means "every action"; unknown IDs fail the request here so operators
// see typos instead of silently empty subsets.
func (a *API) bindActions(c *gin.Context) ([]core.ActionID, bool) {
	param := c.Query("actions")
	if param == "" {
		return nil, true
	}

	parts := strings.Split(param, ",")
	actionIDs := make([]core.ActionID, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || !core.ActionID(n).Known() {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidActionError,
				Message:   "Invalid action id",
				Details:   part,
			})
			return nil, false
		}
		actionIDs = append(actionIDs, core.ActionID(n))
	}
	return actionIDs, true
}
