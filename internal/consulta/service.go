package consulta

import (
	"context"
	"errors"

	"cotacao/infra/metrics"
	"cotacao/internal/wizard"
	"cotacao/pkg/plate"
	"cotacao/validation"
)

type PlateClient interface {
	ConsultarPlaca(ctx context.Context, placa string) (*plate.Response, error)
}

type InterfaceService interface {
	ConsultarPlaca(ctx context.Context, placa string) (*plate.Response, error)
	CalcularCotacao(request QuotationRequest) (QuotationResponse, error)
}

type Service struct {
	client  PlateClient
	metrics *metrics.Metrics
}

func NewConsultaService(client PlateClient, m *metrics.Metrics) *Service {
	return &Service{client: client, metrics: m}
}

func (s *Service) ConsultarPlaca(ctx context.Context, placa string) (*plate.Response, error) {
	result, err := s.client.ConsultarPlaca(ctx, placa)
	s.metrics.ObserveUpstream(outcome(err))
	return result, err
}

// CalcularCotacao returns placeholder plans priced as a fixed share of the FIPE
// value until the rate table is available.
func (s *Service) CalcularCotacao(request QuotationRequest) (QuotationResponse, error) {
	fipe, err := validation.ParseFipeValue(request.ValorFipe)
	if err != nil {
		return QuotationResponse{}, err
	}

	return QuotationResponse{
		ValorFipe:   fipe,
		TipoVeiculo: VehicleType(request.VehicleInfo),
		Planos: []wizard.Plan{
			{Nome: "Plano Ouro (Calculado)", Descricao: "Cobertura completa", ValorMensalidade: fipe * 0.05, ValorAdesao: 100},
			{Nome: "Plano Prata (Calculado)", Descricao: "Cobertura essencial", ValorMensalidade: fipe * 0.03, ValorAdesao: 100},
		},
	}, nil
}

func outcome(err error) string {
	var notFound *plate.NotFoundError
	var commErr *plate.CommunicationError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, plate.ErrMissingAPIKey):
		return "missing_key"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &commErr):
		return "unavailable"
	default:
		return "error"
	}
}
