package domain

import "encoding/json"

// Mensagens estáveis no envelope de resposta. O cliente de dashboard usa
// MessageRateLimited para decidir o retry com backoff.
const (
	MessageRateLimited       = "rate_limited"
	MessageReconnectRequired = "reconnect_required"
)

// BatchRequest é uma chamada à API do Mercado Livre executada no servidor
// dentro de uma única ida e volta do cliente.
type BatchRequest struct {
	Endpoint string            `json:"endpoint"`
	Method   string            `json:"method,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

// BatchResult carrega o resultado de um BatchRequest. Ou Data ou Error está
// preenchido, nunca ambos; Success diz qual dos dois ler.
type BatchResult struct {
	Endpoint string          `json:"endpoint"`
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// OkBatchResult monta um resultado de sucesso.
func OkBatchResult(endpoint string, data json.RawMessage) BatchResult {
	return BatchResult{Endpoint: endpoint, Success: true, Data: data}
}

// ErrBatchResult monta um resultado de falha.
func ErrBatchResult(endpoint string, err error) BatchResult {
	return BatchResult{Endpoint: endpoint, Success: false, Error: err.Error()}
}

// DateRange é o par de datas cru enviado pelo cliente, antes da normalização
// para DateWindow.
type DateRange struct {
	Begin string `json:"begin"`
	End   string `json:"end"`
}

// DataRequest é o corpo da requisição de agregação (cliente → backend).
type DataRequest struct {
	UserID          string         `json:"user_id"`
	BatchRequests   []BatchRequest `json:"batch_requests"`
	DateRange       *DateRange     `json:"date_range"`
	Timezone        string         `json:"timezone"`
	PrevPeriod      bool           `json:"prev_period"`
	UseCache        bool           `json:"use_cache"`
	DisableTestData bool           `json:"disable_test_data"`
}

// DataResponse é o envelope de resposta da agregação. Sempre retorna HTTP 200
// e um corpo bem formado; falhas internas viajam em Success/Message.
type DataResponse struct {
	Success          bool          `json:"success"`
	Message          string        `json:"message,omitempty"`
	IsConnected      bool          `json:"is_connected"`
	MeliUserID       string        `json:"meli_user_id,omitempty"`
	BatchResults     []BatchResult `json:"batch_results"`
	DashboardData    DashboardData `json:"dashboard_data"`
	IsTestData       bool          `json:"is_test_data,omitempty"`
	HasDashboardData bool          `json:"has_dashboard_data"`
}

// FailureDataResponse monta o envelope de falha bem formado do contrato.
func FailureDataResponse(message string, connected bool) *DataResponse {
	return &DataResponse{
		Success:       false,
		Message:       message,
		IsConnected:   connected,
		BatchResults:  []BatchResult{},
		DashboardData: EmptyDashboardData(),
	}
}
