package consulta_test

import (
	"context"
	"cotacao/internal/consulta"
	"cotacao/pkg/plate"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	resp *plate.Response
	err  error
}

func (f fakeClient) ConsultarPlaca(context.Context, string) (*plate.Response, error) {
	return f.resp, f.err
}

func newEcho(client consulta.PlateClient) *echo.Echo {
	h := consulta.NewConsultaHandler(consulta.NewConsultaService(client, nil))
	e := echo.New()
	e.GET("/api", h.Status)
	e.GET("/api/consultar-placa/:plate", h.ConsultarPlaca)
	e.POST("/api/calcular-cotacao", h.CalcularCotacao)
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body consulta.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestStatus(t *testing.T) {
	t.Parallel()

	rec := serve(newEcho(fakeClient{}), http.MethodGet, "/api", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"API Online"}`, rec.Body.String())
}

func TestConsultarPlaca(t *testing.T) {
	t.Parallel()

	found := &plate.Response{
		Codigo:             1,
		InformacoesVeiculo: plate.VehicleInfo{Placa: "XYZ9A88", Marca: "FIAT"},
		Fipe:               []plate.Fipe{{Valor: "R$ 45.000,00"}},
	}

	t.Run("found", func(t *testing.T) {
		rec := serve(newEcho(fakeClient{resp: found}), http.MethodGet, "/api/consultar-placa/XYZ9A88", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body plate.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "FIAT", body.InformacoesVeiculo.Marca)
		assert.Equal(t, "R$ 45.000,00", body.Fipe[0].Valor)
	})

	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"missing key", plate.ErrMissingAPIKey, http.StatusInternalServerError, "Chave da API de placas não configurada."},
		{"not found", &plate.NotFoundError{Message: "placa não encontrada"}, http.StatusNotFound, "placa não encontrada"},
		{"unavailable", &plate.CommunicationError{Err: errors.New("dial tcp: timeout")}, http.StatusServiceUnavailable, "Erro de comunicação com API de placas: dial tcp: timeout"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(newEcho(fakeClient{err: tc.err}), http.MethodGet, "/api/consultar-placa/XYZ9A88", "")
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.detail, detail(t, rec))
		})
	}
}

func TestCalcularCotacao(t *testing.T) {
	t.Parallel()

	e := newEcho(fakeClient{})
	rec := serve(e, http.MethodPost, "/api/calcular-cotacao", `{
		"valor_fipe": "R$ 40.000,00",
		"vehicle_info": {"placa": "XYZ9A88", "segmento": "Moto", "combustivel": "Gasolina"},
		"cep_details": {"is_metropolitan": true}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body consulta.QuotationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 40000.0, body.ValorFipe, 0.001)
	assert.Equal(t, consulta.TipoMoto, body.TipoVeiculo)
	require.Len(t, body.Planos, 2)
	assert.Equal(t, "Plano Ouro (Calculado)", body.Planos[0].Nome)
	assert.InDelta(t, 2000.0, body.Planos[0].ValorMensalidade, 0.001)
	assert.InDelta(t, 1200.0, body.Planos[1].ValorMensalidade, 0.001)
	assert.InDelta(t, 100.0, body.Planos[1].ValorAdesao, 0.001)

	rec = serve(e, http.MethodPost, "/api/calcular-cotacao", `{"vehicle_info": {}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPost, "/api/calcular-cotacao", `{"valor_fipe": "sem valor"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVehicleType(t *testing.T) {
	t.Parallel()

	cases := map[string]plate.VehicleInfo{
		consulta.TipoCaminhao:     {Segmento: "Caminhao Pesado"},
		consulta.TipoMoto:         {Segmento: "MOTO", Combustivel: "Diesel"},
		consulta.TipoDieselVan:    {Segmento: "Auto", Combustivel: "Diesel"},
		consulta.TipoCarroPasseio: {Segmento: "Auto", Combustivel: "Flex"},
	}
	for want, info := range cases {
		assert.Equal(t, want, consulta.VehicleType(info))
	}
	assert.Equal(t, consulta.TipoDieselVan, consulta.VehicleType(plate.VehicleInfo{Segmento: "Camionete"}))
	assert.Equal(t, consulta.TipoCaminhao, consulta.VehicleType(plate.VehicleInfo{Segmento: "Cao.Trator"}))
}
