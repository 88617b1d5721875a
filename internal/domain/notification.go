package domain

// Tópicos de webhook do Mercado Livre que o backend reconhece.
const (
	TopicOrders    = "orders_v2"
	TopicItems     = "items"
	TopicQuestions = "questions"
	TopicMessages  = "messages"
	TopicShipments = "shipments"
)

// Notification é o payload enviado pelo Mercado Livre no webhook.
// Resource é o caminho do recurso afetado (ex.: /orders/2000003508419013).
type Notification struct {
	ID            string `json:"_id"`
	Topic         string `json:"topic"`
	Resource      string `json:"resource"`
	UserID        int64  `json:"user_id"`
	ApplicationID int64  `json:"application_id"`
	Attempts      int    `json:"attempts"`
	Sent          string `json:"sent"`
	Received      string `json:"received"`
}

// KnownTopic indica se o tópico é um dos tratados pelo backend. Tópicos
// desconhecidos são aceitos e ignorados para evitar reentregas.
func (n Notification) KnownTopic() bool {
	switch n.Topic {
	case TopicOrders, TopicItems, TopicQuestions, TopicMessages, TopicShipments:
		return true
	}
	return false
}
