package wizard

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

	"cotacao/pkg/plate"
)

type VehicleLookup interface {
	Lookup(ctx context.Context, placa string) (plate.Response, error)
}

// LookupError carries the message the wizard shows when the plate lookup fails.
type LookupError struct {
	Status  int
	Message string
}

func (e *LookupError) Error() string {
	return e.Message
}

// LookupMessage picks the banner text for a lookup failure.
func LookupMessage(err error) string {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) && lookupErr.Message != "" {
		return lookupErr.Message
	}
	return LookupFallback
}

// HTTPLookup calls GET {baseURL}/api/consultar-placa/{plate}.
type HTTPLookup struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPLookup(baseURL string, httpClient *http.Client) *HTTPLookup {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPLookup{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (l *HTTPLookup) Lookup(ctx context.Context, placa string) (plate.Response, error) {
	endpoint := fmt.Sprintf("%s/api/consultar-placa/%s", l.baseURL, url.PathEscape(placa))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return plate.Response{}, fmt.Errorf("erro ao criar requisição da consulta: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Printf("[WIZARD] falha na consulta da placa %s: %v", placa, err)
		return plate.Response{}, fmt.Errorf("erro ao consultar placa: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return plate.Response{}, fmt.Errorf("erro ao ler resposta da consulta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			log.Printf("[WIZARD] corpo de erro ilegível (status %d): %v", resp.StatusCode, err)
		}
		message := payload.Detail
		if message == "" {
			message = LookupFallback
		}
		return plate.Response{}, &LookupError{Status: resp.StatusCode, Message: message}
	}

	var result plate.Response
	if err := json.Unmarshal(body, &result); err != nil {
		return plate.Response{}, fmt.Errorf("erro ao decodificar resposta da consulta: %w", err)
	}
	return result, nil
}
