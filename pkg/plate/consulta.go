package plate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cotacao/validation"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultBaseURL  = "https://api.placafipe.com.br"
	cachePrefix     = "placa:"
	cacheTTL        = 30 * time.Minute
	upstreamTimeout = 15 * time.Second
	notFoundMessage = "Dados FIPE não encontrados."
)

var ErrMissingAPIKey = errors.New("chave da API de placas não configurada")

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	rdb        *redis.Client
}

// NewClient builds a Placa FIPE client. rdb may be nil, in which case every
// lookup goes to the upstream API.
func NewClient(baseURL, apiKey string, rdb *redis.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: upstreamTimeout},
		rdb:        rdb,
	}
}

func (c *Client) ConsultarPlaca(ctx context.Context, placa string) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	start := time.Now()
	placa = validation.NormalizePlate(placa)
	cacheKey := cachePrefix + placa

	if cached, ok := c.fromCache(ctx, cacheKey); ok {
		log.Printf("[PLACA FIPE] cache hit para placa %s", placa)
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/getplacafipe/%s/%s", c.baseURL, url.PathEscape(placa), url.PathEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição da placa: %w", err)
	}

	log.Printf("[PLACA FIPE] consultando placa %s", placa)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[PLACA FIPE] erro ao enviar requisição: %v", err)
		return nil, &CommunicationError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CommunicationError{Err: err}
	}
	log.Printf("[PLACA FIPE] status %d em %v", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API de placas respondeu com status %d", resp.StatusCode)
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON da placa: %w", err)
	}

	if !result.found() {
		msg := result.Msg
		if msg == "" {
			msg = notFoundMessage
		}
		return nil, &NotFoundError{Message: msg}
	}

	c.toCache(ctx, cacheKey, &result)
	return &result, nil
}

func (c *Client) fromCache(ctx context.Context, key string) (*Response, bool) {
	if c.rdb == nil {
		return nil, false
	}

	cached, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[PLACA FIPE] falha ao ler cache: %v", err)
		}
		return nil, false
	}

	var result Response
	if err := json.Unmarshal([]byte(cached), &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *Client) toCache(ctx context.Context, key string, result *Response) {
	if c.rdb == nil {
		return
	}

	data, _ := json.Marshal(result)
	if err := c.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		log.Printf("[PLACA FIPE] falha ao salvar placa no cache: %v", err)
	}
}
