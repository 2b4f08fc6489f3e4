package wizard

import (
	"errors"
	"fmt"
	"strings"

	"cotacao/pkg/proposal"
	"cotacao/validation"
)

var (
	ErrInvalidTransition = errors.New("ação não permitida nesta etapa")
	ErrStaleLookup       = errors.New("resposta de consulta descartada")
	ErrPlanNotFound      = errors.New("plano não encontrado")
)

// mockPlans stands in for the rate table the pricing backend would return.
// Fees do not depend on the FIPE value.
func mockPlans() []Plan {
	return []Plan{
		{Nome: "Plano Ouro", Descricao: "Cobertura completa", ValorMensalidade: 250.50, ValorAdesao: 100},
		{Nome: "Plano Prata", Descricao: "Cobertura essencial", ValorMensalidade: 180.75, ValorAdesao: 100},
	}
}

// Transition is the only way the wizard state changes. It never performs I/O;
// any work to be done is returned as an Effect.
func Transition(state State, ev Event) (State, Effect, error) {
	switch e := ev.(type) {
	case SubmitCustomer:
		if state.Step != StepRegistration {
			return state, nil, fmt.Errorf("%w: cadastro", ErrInvalidTransition)
		}
		customer := e.Customer
		state.Customer = &customer
		state.Step = StepPlateEntry
		return state, nil, nil

	case Consult:
		if state.Step != StepPlateEntry {
			return state, nil, fmt.Errorf("%w: consulta", ErrInvalidTransition)
		}
		placa := strings.ToUpper(e.Plate)
		// a rejected plate leaves any lookup in flight untouched
		if !validation.ValidatePlate(placa) {
			state.Error = &Banner{Title: PlateErrorTitle, Message: PlateErrorMessage}
			return state, nil, nil
		}
		state.Plate = placa
		state.Loading = true
		state.LoadingMessage = LoadingLookup
		state.Error = nil
		state.Vehicle = nil
		state.Quotation = nil
		state.PendingLookup = e.Token
		return state, LookupEffect{Token: e.Token, Plate: state.Plate}, nil

	case LookupSucceeded:
		if e.Token == "" || e.Token != state.PendingLookup {
			return state, nil, ErrStaleLookup
		}
		state = finishLookup(state)

		if len(e.Result.Fipe) == 0 {
			state.Error = &Banner{Title: LookupErrorTitle, Message: FipeMissing}
			return state, nil, nil
		}
		fipe, err := validation.ParseFipeValue(e.Result.Fipe[0].Valor)
		if err != nil {
			state.Error = &Banner{Title: LookupErrorTitle, Message: err.Error()}
			return state, nil, nil
		}

		vehicle := e.Result.InformacoesVeiculo
		state.Vehicle = &vehicle
		state.Quotation = &Quotation{ValorFipe: fipe, Planos: mockPlans()}
		state.Step = StepResult
		return state, nil, nil

	case LookupFailed:
		if e.Token == "" || e.Token != state.PendingLookup {
			return state, nil, ErrStaleLookup
		}
		state = finishLookup(state)
		message := e.Message
		if message == "" {
			message = LookupFallback
		}
		state.Error = &Banner{Title: LookupErrorTitle, Message: message}
		return state, nil, nil

	case DismissError:
		state.Error = nil
		return state, nil, nil

	case Reset:
		return NewState(state.SessionID), nil, nil

	case ExportPlan:
		if state.Step != StepResult || state.Quotation == nil || state.Vehicle == nil || state.Customer == nil {
			return state, nil, fmt.Errorf("%w: proposta", ErrInvalidTransition)
		}
		if e.Index < 0 || e.Index >= len(state.Quotation.Planos) {
			return state, nil, ErrPlanNotFound
		}
		plan := state.Quotation.Planos[e.Index]
		return state, ExportEffect{Proposal: proposal.Proposal{
			CustomerName:    state.Customer.Name,
			Vehicle:         *state.Vehicle,
			FipeValue:       state.Quotation.ValorFipe,
			PlanName:        plan.Nome,
			PlanDescription: plan.Descricao,
			MonthlyFee:      plan.ValorMensalidade,
			EnrollmentFee:   plan.ValorAdesao,
		}}, nil
	}

	return state, nil, fmt.Errorf("%w: evento desconhecido %T", ErrInvalidTransition, ev)
}

func finishLookup(state State) State {
	state.Loading = false
	state.LoadingMessage = ""
	state.PendingLookup = ""
	return state
}
