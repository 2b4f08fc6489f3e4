package consulta

import (
	"strings"

	"cotacao/internal/wizard"
	"cotacao/pkg/plate"
)

const (
	TipoCaminhao     = "caminhao"
	TipoMoto         = "moto"
	TipoDieselVan    = "diesel_van"
	TipoCarroPasseio = "carro_passeio"
)

type CepDetails struct {
	IsMetropolitan bool `json:"is_metropolitan"`
}

type QuotationRequest struct {
	ValorFipe   string            `json:"valor_fipe" validate:"required"`
	VehicleInfo plate.VehicleInfo `json:"vehicle_info"`
	CepDetails  CepDetails        `json:"cep_details"`
}

type QuotationResponse struct {
	ValorFipe   float64       `json:"valor_fipe"`
	TipoVeiculo string        `json:"tipo_veiculo"`
	Planos      []wizard.Plan `json:"planos"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// VehicleType buckets a vehicle by its segment and fuel, in this order of precedence.
func VehicleType(info plate.VehicleInfo) string {
	segmento := strings.ToLower(info.Segmento)
	combustivel := strings.ToLower(info.Combustivel)

	switch {
	case strings.Contains(segmento, "caminhao"), strings.Contains(segmento, "cao.trator"):
		return TipoCaminhao
	case strings.Contains(segmento, "moto"):
		return TipoMoto
	case strings.Contains(combustivel, "diesel"), strings.Contains(segmento, "camionete"), strings.Contains(segmento, "van"):
		return TipoDieselVan
	default:
		return TipoCarroPasseio
	}
}
