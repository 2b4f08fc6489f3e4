package plate

import "fmt"

type VehicleInfo struct {
	Placa       string `json:"placa"`
	Marca       string `json:"marca"`
	Modelo      string `json:"modelo"`
	Cor         string `json:"cor"`
	Ano         string `json:"ano"`
	AnoModelo   string `json:"ano_modelo"`
	Combustivel string `json:"combustivel"`
	Segmento    string `json:"segmento"`
}

type Fipe struct {
	Valor string `json:"valor"`
}

// Response is the Placa FIPE payload, also served as-is by /api/consultar-placa.
type Response struct {
	Codigo             int         `json:"codigo"`
	Msg                string      `json:"msg,omitempty"`
	InformacoesVeiculo VehicleInfo `json:"informacoes_veiculo"`
	Fipe               []Fipe      `json:"fipe"`
}

func (r *Response) found() bool {
	return r.Codigo == 1 && len(r.Fipe) > 0
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

type CommunicationError struct {
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("erro de comunicação com API de placas: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}
