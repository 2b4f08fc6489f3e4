package wizard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cotacao/infra/middleware"
	"cotacao/validation"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewWizardHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// StartSession godoc
// @Summary Start a quotation session.
// @Description Creates a new wizard session at the registration step and returns its session token.
// @Tags Wizard
// @Produce json
// @Success 201 {object} SessionResponse "Session token and initial state"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /wizard/session [post]
func (h *Handler) StartSession(c echo.Context) error {
	result, err := h.InterfaceService.Start(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

// GetState godoc
// @Summary Get the wizard state.
// @Description Returns the current state of the authenticated session.
// @Tags Wizard
// @Produce json
// @Success 200 {object} State "Wizard state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session Not Found"
// @Router /wizard/state [get]
// @Security ApiKeyAuth
func (h *Handler) GetState(c echo.Context) error {
	result, err := h.InterfaceService.Get(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// SubmitCustomer godoc
// @Summary Register the customer.
// @Description Stores the customer data and moves the wizard to plate entry.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body Customer true "Customer data"
// @Success 200 {object} State "Wizard state"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Invalid Step"
// @Router /wizard/customer [post]
// @Security ApiKeyAuth
func (h *Handler) SubmitCustomer(c echo.Context) error {
	var request Customer
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, detail(err.Error()))
	}
	if err := validation.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, detail(err.Error()))
	}

	result, err := h.InterfaceService.SubmitCustomer(c.Request().Context(), middleware.SessionID(c), request)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Consult godoc
// @Summary Look up a vehicle plate.
// @Description Validates the plate, queries the vehicle data and builds the quotation.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body ConsultRequest true "Vehicle plate"
// @Success 200 {object} State "Wizard state"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Invalid Step"
// @Router /wizard/consult [post]
// @Security ApiKeyAuth
func (h *Handler) Consult(c echo.Context) error {
	var request ConsultRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, detail(err.Error()))
	}

	result, err := h.InterfaceService.Consult(c.Request().Context(), middleware.SessionID(c), request.Plate)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// DismissError godoc
// @Summary Dismiss the error banner.
// @Tags Wizard
// @Produce json
// @Success 200 {object} State "Wizard state"
// @Failure 404 {object} map[string]string "Session Not Found"
// @Router /wizard/error [delete]
// @Security ApiKeyAuth
func (h *Handler) DismissError(c echo.Context) error {
	result, err := h.InterfaceService.DismissError(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Reset godoc
// @Summary Restart the wizard.
// @Description Returns the session to the registration step and discards any lookup in flight.
// @Tags Wizard
// @Produce json
// @Success 200 {object} State "Wizard state"
// @Failure 404 {object} map[string]string "Session Not Found"
// @Router /wizard/reset [post]
// @Security ApiKeyAuth
func (h *Handler) Reset(c echo.Context) error {
	result, err := h.InterfaceService.Reset(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ExportProposal godoc
// @Summary Download a plan proposal.
// @Description Renders the proposal PDF for the selected plan of the quotation.
// @Tags Wizard
// @Produce application/pdf
// @Param index path int true "Plan index"
// @Success 200 {file} file "Proposal PDF"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Plan Not Found"
// @Failure 409 {object} map[string]string "Invalid Step"
// @Router /wizard/plans/{index}/proposal [get]
// @Security ApiKeyAuth
func (h *Handler) ExportProposal(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detail("índice de plano inválido"))
	}

	export, err := h.InterfaceService.ExportPlan(c.Request().Context(), middleware.SessionID(c), index)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Blob(http.StatusOK, "application/pdf", export.Content)
}

func detail(message string) map[string]string {
	return map[string]string{"detail": message}
}

func errorResponse(c echo.Context, err error) error {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrPlanNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition):
		statusCode = http.StatusConflict
	}
	return c.JSON(statusCode, detail(err.Error()))
}
