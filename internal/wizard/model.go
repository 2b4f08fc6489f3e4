package wizard

import (
	"cotacao/pkg/plate"
	"cotacao/pkg/proposal"
)

type Step int

const (
	StepRegistration Step = iota + 1
	StepPlateEntry
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepRegistration:
		return "registration"
	case StepPlateEntry:
		return "plate_entry"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

const (
	PlateErrorTitle   = "Erro na Placa!"
	PlateErrorMessage = "Formato de placa inválido."
	LookupErrorTitle  = "Erro na Consulta!"
	LookupFallback    = "Falha ao consultar a placa."
	FipeMissing       = "Dados FIPE não encontrados."
	LoadingLookup     = "A consultar dados do veículo..."
)

type Customer struct {
	Name  string `json:"name" validate:"required"`
	CPF   string `json:"cpf" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type Plan struct {
	Nome             string  `json:"nome"`
	Descricao        string  `json:"descricao"`
	ValorMensalidade float64 `json:"valor_mensalidade"`
	ValorAdesao      float64 `json:"valor_adesao"`
}

type Quotation struct {
	ValorFipe float64 `json:"valor_fipe"`
	Planos    []Plan  `json:"planos"`
}

// Banner is the dismissible error shown above the current step.
type Banner struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// State is one session's wizard record. Revision grows by one on every saved
// transition, so consumers can tell an older snapshot from a newer one.
type State struct {
	SessionID      string             `json:"session_id"`
	Revision       int64              `json:"revision"`
	Step           Step               `json:"step"`
	Customer       *Customer          `json:"customer,omitempty"`
	Plate          string             `json:"plate,omitempty"`
	Vehicle        *plate.VehicleInfo `json:"vehicle,omitempty"`
	Quotation      *Quotation         `json:"quotation,omitempty"`
	Error          *Banner            `json:"error,omitempty"`
	Loading        bool               `json:"loading"`
	LoadingMessage string             `json:"loading_message,omitempty"`
	PendingLookup  string             `json:"pending_lookup,omitempty"`
}

func NewState(sessionID string) State {
	return State{SessionID: sessionID, Step: StepRegistration}
}

type Event interface {
	event()
}

type SubmitCustomer struct {
	Customer Customer
}

type Consult struct {
	Plate string
	Token string
}

type LookupSucceeded struct {
	Token  string
	Result plate.Response
}

type LookupFailed struct {
	Token   string
	Message string
}

type DismissError struct{}

type Reset struct{}

type ExportPlan struct {
	Index int
}

func (SubmitCustomer) event()  {}
func (Consult) event()         {}
func (LookupSucceeded) event() {}
func (LookupFailed) event()    {}
func (DismissError) event()    {}
func (Reset) event()           {}
func (ExportPlan) event()      {}

// Effect describes work the service must perform after a transition.
type Effect interface {
	effect()
}

type LookupEffect struct {
	Token string
	Plate string
}

type ExportEffect struct {
	Proposal proposal.Proposal
}

func (LookupEffect) effect() {}
func (ExportEffect) effect() {}

type SessionResponse struct {
	Token string `json:"token"`
	State State  `json:"state"`
}

type ConsultRequest struct {
	Plate string `json:"plate"`
}
