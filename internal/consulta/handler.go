package consulta

import (
	"errors"
	"net/http"

	"cotacao/pkg/plate"
	"cotacao/validation"

	"github.com/labstack/echo/v4"
)

const missingKeyDetail = "Chave da API de placas não configurada."

type Handler struct {
	InterfaceService InterfaceService
}

func NewConsultaHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// Status godoc
// @Summary API status.
// @Tags Consulta
// @Produce json
// @Success 200 {object} StatusResponse "API Online"
// @Router /api [get]
func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "API Online"})
}

// ConsultarPlaca godoc
// @Summary Look up a plate on Placa FIPE.
// @Description Returns the vehicle data and FIPE values for the given plate.
// @Tags Consulta
// @Produce json
// @Param plate path string true "Vehicle plate"
// @Success 200 {object} plate.Response "Vehicle data"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Failure 503 {object} ErrorResponse "Upstream Unavailable"
// @Router /api/consultar-placa/{plate} [get]
func (h *Handler) ConsultarPlaca(c echo.Context) error {
	result, err := h.InterfaceService.ConsultarPlaca(c.Request().Context(), c.Param("plate"))
	if err != nil {
		var notFound *plate.NotFoundError
		var commErr *plate.CommunicationError
		switch {
		case errors.Is(err, plate.ErrMissingAPIKey):
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: missingKeyDetail})
		case errors.As(err, &notFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Detail: notFound.Message})
		case errors.As(err, &commErr):
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Detail: "Erro de comunicação com API de placas: " + commErr.Err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, result)
}

// CalcularCotacao godoc
// @Summary Calculate quotation plans.
// @Description Prices the plans for a FIPE value and classifies the vehicle.
// @Tags Consulta
// @Accept json
// @Produce json
// @Param request body QuotationRequest true "Quotation request"
// @Success 200 {object} QuotationResponse "Calculated plans"
// @Failure 400 {object} ErrorResponse "Bad Request"
// @Router /api/calcular-cotacao [post]
func (h *Handler) CalcularCotacao(c echo.Context) error {
	var request QuotationRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
	}
	if err := validation.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
	}

	result, err := h.InterfaceService.CalcularCotacao(request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}
