package domain

import "time"

// Tipos lidos da API de pedidos do Mercado Livre. Somente leitura: este
// sistema nunca altera um pedido.

// OrderStatusPaid é o único status que entra nas métricas do dashboard.
const OrderStatusPaid = "paid"

type Order struct {
	ID          int64        `json:"id"`
	Status      string       `json:"status"`
	DateCreated time.Time    `json:"date_created"`
	DateClosed  *time.Time   `json:"date_closed"`
	TotalAmount float64      `json:"total_amount"`
	OrderItems  []OrderItem  `json:"order_items"`
	Shipping    *OrderShipping `json:"shipping"`
}

type OrderItem struct {
	Item      ItemRef `json:"item"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type ItemRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type OrderShipping struct {
	ReceiverAddress *ReceiverAddress `json:"receiver_address"`
}

type ReceiverAddress struct {
	State AddressState `json:"state"`
}

type AddressState struct {
	Name string `json:"name"`
}

// ReferenceDate é a data usada no re-filtro local da janela: date_closed
// quando presente, senão date_created.
func (o *Order) ReferenceDate() time.Time {
	if o.DateClosed != nil && !o.DateClosed.IsZero() {
		return *o.DateClosed
	}
	return o.DateCreated
}

// Province devolve o nome do estado de entrega, vazio quando o pedido não tem
// endereço de envio.
func (o *Order) Province() string {
	if o.Shipping == nil || o.Shipping.ReceiverAddress == nil {
		return ""
	}
	return o.Shipping.ReceiverAddress.State.Name
}

// OrderSearchPage é uma página de /orders/search.
type OrderSearchPage struct {
	Results []Order `json:"results"`
	Paging  Paging  `json:"paging"`
}

type Paging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
