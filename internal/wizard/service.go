package wizard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"cotacao/infra/metrics"
	"cotacao/infra/token"
	"cotacao/pkg/proposal"

	"github.com/google/uuid"
)

type Renderer interface {
	Render(p proposal.Proposal) ([]byte, error)
}

// Publisher receives every state a session moves into.
type Publisher interface {
	Publish(sessionID string, state State)
}

type Export struct {
	FileName string
	Content  []byte
}

type InterfaceService interface {
	Start(ctx context.Context) (SessionResponse, error)
	Get(ctx context.Context, sessionID string) (State, error)
	SubmitCustomer(ctx context.Context, sessionID string, customer Customer) (State, error)
	Consult(ctx context.Context, sessionID string, placa string) (State, error)
	DismissError(ctx context.Context, sessionID string) (State, error)
	Reset(ctx context.Context, sessionID string) (State, error)
	ExportPlan(ctx context.Context, sessionID string, index int) (Export, error)
}

type Service struct {
	repository    InterfaceRepository
	lookup        VehicleLookup
	renderer      Renderer
	maker         token.Maker
	sessionTTL    time.Duration
	lookupTimeout time.Duration
	publisher     Publisher
	metrics       *metrics.Metrics

	// serializes load/transition/save; lookups run outside of it
	mu sync.Mutex
}

func NewWizardService(repository InterfaceRepository, lookup VehicleLookup, renderer Renderer, maker token.Maker, sessionTTL, lookupTimeout time.Duration) *Service {
	return &Service{
		repository:    repository,
		lookup:        lookup,
		renderer:      renderer,
		maker:         maker,
		sessionTTL:    sessionTTL,
		lookupTimeout: lookupTimeout,
	}
}

func (s *Service) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

func (s *Service) Start(ctx context.Context) (SessionResponse, error) {
	state := NewState(uuid.NewString())
	if err := s.repository.Save(ctx, state); err != nil {
		return SessionResponse{}, err
	}

	tok, _, err := s.maker.CreateToken(state.SessionID, s.sessionTTL)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("erro ao gerar token de sessão: %w", err)
	}

	log.Printf("[WIZARD] sessão %s iniciada", state.SessionID)
	return SessionResponse{Token: tok, State: state}, nil
}

func (s *Service) Get(ctx context.Context, sessionID string) (State, error) {
	return s.repository.Get(ctx, sessionID)
}

func (s *Service) SubmitCustomer(ctx context.Context, sessionID string, customer Customer) (State, error) {
	state, _, err := s.dispatch(ctx, sessionID, SubmitCustomer{Customer: customer})
	return state, err
}

func (s *Service) Consult(ctx context.Context, sessionID string, placa string) (State, error) {
	state, effect, err := s.dispatch(ctx, sessionID, Consult{Plate: placa, Token: uuid.NewString()})
	if err != nil {
		return state, err
	}

	lookup, ok := effect.(LookupEffect)
	if !ok {
		return state, nil
	}
	return s.runLookup(ctx, sessionID, lookup)
}

func (s *Service) DismissError(ctx context.Context, sessionID string) (State, error) {
	state, _, err := s.dispatch(ctx, sessionID, DismissError{})
	return state, err
}

func (s *Service) Reset(ctx context.Context, sessionID string) (State, error) {
	state, _, err := s.dispatch(ctx, sessionID, Reset{})
	return state, err
}

func (s *Service) ExportPlan(ctx context.Context, sessionID string, index int) (Export, error) {
	s.mu.Lock()
	state, err := s.repository.Get(ctx, sessionID)
	s.mu.Unlock()
	if err != nil {
		return Export{}, err
	}

	_, effect, err := Transition(state, ExportPlan{Index: index})
	if err != nil {
		return Export{}, err
	}

	export, ok := effect.(ExportEffect)
	if !ok {
		return Export{}, fmt.Errorf("%w: proposta", ErrInvalidTransition)
	}

	content, err := s.renderer.Render(export.Proposal)
	if err != nil {
		return Export{}, err
	}

	s.metrics.ObserveExport()
	return Export{
		FileName: proposal.FileName(export.Proposal.CustomerName, export.Proposal.Vehicle.Placa),
		Content:  content,
	}, nil
}

// runLookup performs the network call for a Consult and always dispatches its
// outcome, so the loading condition is cleared on every path. The outcome is
// written with a context detached from the caller: a client that hangs up must
// not leave the session stuck in loading.
func (s *Service) runLookup(ctx context.Context, sessionID string, effect LookupEffect) (State, error) {
	persistCtx := context.WithoutCancel(ctx)

	lookupCtx := ctx
	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.lookup.Lookup(lookupCtx, effect.Plate)

	var ev Event
	if err != nil {
		log.Printf("[WIZARD] consulta da placa %s falhou: %v", effect.Plate, err)
		s.metrics.ObserveLookup("error", time.Since(start))
		ev = LookupFailed{Token: effect.Token, Message: LookupMessage(err)}
	} else {
		s.metrics.ObserveLookup("success", time.Since(start))
		ev = LookupSucceeded{Token: effect.Token, Result: result}
	}

	state, _, err := s.dispatch(persistCtx, sessionID, ev)
	if errors.Is(err, ErrStaleLookup) {
		log.Printf("[WIZARD] resposta obsoleta da placa %s descartada (sessão %s)", effect.Plate, sessionID)
		return s.repository.Get(persistCtx, sessionID)
	}
	return state, err
}

func (s *Service) dispatch(ctx context.Context, sessionID string, ev Event) (State, Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return State{}, nil, err
	}

	next, effect, err := Transition(state, ev)
	if err != nil {
		return state, nil, err
	}
	next.Revision = state.Revision + 1

	if err := s.repository.Save(ctx, next); err != nil {
		return state, nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(sessionID, next)
	}
	return next, effect, nil
}
