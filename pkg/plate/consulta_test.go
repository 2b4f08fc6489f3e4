package plate_test

import (
	"context"
	"cotacao/pkg/plate"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const foundBody = `{
	"codigo": 1,
	"informacoes_veiculo": {"placa": "XYZ9A88", "marca": "FIAT", "modelo": "ARGO DRIVE", "cor": "Branca",
		"ano": "2021", "ano_modelo": "2022", "combustivel": "Flex", "segmento": "Auto"},
	"fipe": [{"valor": "R$ 45.000,00"}]
}`

func upstream(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		assert.Equal(t, "/getplacafipe/XYZ9A88/secret", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestConsultarPlaca(t *testing.T) {
	t.Parallel()

	srv := upstream(t, http.StatusOK, foundBody, nil)
	client := plate.NewClient(srv.URL, "secret", nil)

	resp, err := client.ConsultarPlaca(context.Background(), "xyz-9a88")
	require.NoError(t, err)
	assert.Equal(t, "FIAT", resp.InformacoesVeiculo.Marca)
	assert.Equal(t, "2022", resp.InformacoesVeiculo.AnoModelo)
	require.Len(t, resp.Fipe, 1)
	assert.Equal(t, "R$ 45.000,00", resp.Fipe[0].Valor)
}

func TestConsultarPlacaMissingKey(t *testing.T) {
	t.Parallel()

	client := plate.NewClient("http://127.0.0.1:1", "", nil)
	_, err := client.ConsultarPlaca(context.Background(), "XYZ9A88")
	assert.ErrorIs(t, err, plate.ErrMissingAPIKey)
}

func TestConsultarPlacaNotFound(t *testing.T) {
	t.Parallel()

	t.Run("upstream message", func(t *testing.T) {
		t.Parallel()

		srv := upstream(t, http.StatusOK, `{"codigo": 0, "msg": "Placa não encontrada"}`, nil)
		_, err := plate.NewClient(srv.URL, "secret", nil).ConsultarPlaca(context.Background(), "XYZ9A88")

		var notFound *plate.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Placa não encontrada", notFound.Message)
	})

	t.Run("empty fipe", func(t *testing.T) {
		t.Parallel()

		srv := upstream(t, http.StatusOK, `{"codigo": 1, "fipe": []}`, nil)
		_, err := plate.NewClient(srv.URL, "secret", nil).ConsultarPlaca(context.Background(), "XYZ9A88")

		var notFound *plate.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Dados FIPE não encontrados.", notFound.Message)
	})
}

func TestConsultarPlacaCommunicationError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := plate.NewClient(url, "secret", nil).ConsultarPlaca(context.Background(), "XYZ9A88")

	var commErr *plate.CommunicationError
	assert.ErrorAs(t, err, &commErr)
}

func TestConsultarPlacaUpstreamStatus(t *testing.T) {
	t.Parallel()

	srv := upstream(t, http.StatusBadGateway, `oops`, nil)
	_, err := plate.NewClient(srv.URL, "secret", nil).ConsultarPlaca(context.Background(), "XYZ9A88")
	require.Error(t, err)

	var notFound *plate.NotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestConsultarPlacaUsesCache(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var hits int32
	srv := upstream(t, http.StatusOK, foundBody, &hits)
	client := plate.NewClient(srv.URL, "secret", rdb)

	for i := 0; i < 3; i++ {
		resp, err := client.ConsultarPlaca(context.Background(), "XYZ9A88")
		require.NoError(t, err)
		assert.Equal(t, "ARGO DRIVE", resp.InformacoesVeiculo.Modelo)
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	assert.True(t, mr.Exists("placa:XYZ9A88"))
}
