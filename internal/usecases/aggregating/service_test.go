package aggregating

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	climocks "github.com/meliboard/meliboard-api/infrastructure/integrator/meli/mocks"
	"github.com/meliboard/meliboard-api/infrastructure/integrator/meli/meliclient"
	"github.com/meliboard/meliboard-api/internal/cache"
	"github.com/meliboard/meliboard-api/internal/config"
	"github.com/meliboard/meliboard-api/internal/domain"
	"github.com/meliboard/meliboard-api/internal/usecases/connecting"
	connmocks "github.com/meliboard/meliboard-api/internal/usecases/connecting/mocks"
)

var testRecord = &domain.TokenRecord{
	UserID:      "user-1",
	AccessToken: "APP_USR-123",
	MeliUserID:  987654,
}

func testWindow(t *testing.T) domain.DateWindow {
	t.Helper()
	window, err := domain.NewDateWindow(
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	)
	require.NoError(t, err)
	return window
}

func testDateRange(window domain.DateWindow) *domain.DateRange {
	return &domain.DateRange{Begin: window.FromISO(), End: window.ToISO()}
}

func newTestAggregator(t *testing.T, cfg *config.Aggregation) (*service, *connmocks.MockConnector, *climocks.MockClient) {
	ctrl := gomock.NewController(t)
	connector := connmocks.NewMockConnector(ctrl)
	client := climocks.NewMockClient(ctrl)

	if cfg == nil {
		cfg = &config.Aggregation{
			PageSize:           50,
			MaxPages:           20,
			MaxOrders:          500,
			BatchMaxConcurrent: 3,
		}
	}

	svc := NewService(connector, client, cache.NewResponseCache(time.Minute), cfg).(*service)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}

	return svc, connector, client
}

func paidOrder(id int64, reference time.Time, total float64, items ...domain.OrderItem) domain.Order {
	return domain.Order{
		ID:          id,
		Status:      "paid",
		DateCreated: reference,
		TotalAmount: total,
		OrderItems:  items,
	}
}

func TestProcessWithSingleOrder(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	order := paidOrder(1, time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC), 1000, domain.OrderItem{
		Item:      domain.ItemRef{ID: "MLB123", Title: "Fone bluetooth"},
		Quantity:  2,
		UnitPrice: 500,
	})
	order.Shipping = &domain.OrderShipping{
		ReceiverAddress: &domain.ReceiverAddress{State: domain.AddressState{Name: "São Paulo"}},
	}

	client.EXPECT().
		SearchOrders(gomock.Any(), "APP_USR-123", int64(987654), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{
			Results: []domain.Order{order},
			Paging:  domain.Paging{Total: 1, Offset: 0, Limit: 50},
		}, nil)

	client.EXPECT().
		GetUserVisits(gomock.Any(), "APP_USR-123", int64(987654), gomock.Any()).
		Return(100, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	require.True(t, response.Success)
	assert.True(t, response.IsConnected)
	assert.True(t, response.HasDashboardData)
	assert.False(t, response.IsTestData)
	assert.Equal(t, "987654", response.MeliUserID)

	summary := response.DashboardData.Summary
	assert.Equal(t, 1000.0, summary.GMV)
	assert.Equal(t, 2, summary.Units)
	assert.Equal(t, 500.0, summary.AvgTicket)
	assert.Equal(t, 100, summary.Visits)
	assert.Equal(t, 2.0, summary.Conversion)

	// Custos estimados como percentuais do GMV
	assert.Equal(t, 70.0, summary.Commissions)
	assert.Equal(t, 170.0, summary.Taxes)
	assert.Equal(t, 210.0, summary.IVA)
	assert.Equal(t, domain.ProvenanceEstimated, response.DashboardData.Provenance.Costs)
	assert.Equal(t, domain.ProvenanceMeasured, response.DashboardData.Provenance.Visits)

	require.Len(t, response.DashboardData.TopProducts, 1)
	assert.Equal(t, "MLB123", response.DashboardData.TopProducts[0].ID)
	assert.Equal(t, 1000.0, response.DashboardData.TopProducts[0].Revenue)

	require.Len(t, response.DashboardData.SalesByProvince, 1)
	assert.Equal(t, "São Paulo", response.DashboardData.SalesByProvince[0].Name)
}

func TestProcessTruncatesAtOrderCeiling(t *testing.T) {
	cfg := &config.Aggregation{
		PageSize:           2,
		MaxPages:           20,
		MaxOrders:          3,
		BatchMaxConcurrent: 3,
	}
	svc, connector, client := newTestAggregator(t, cfg)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	reference := time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)
	page := func(ids ...int64) *domain.OrderSearchPage {
		orders := make([]domain.Order, 0, len(ids))
		for _, id := range ids {
			orders = append(orders, paidOrder(id, reference, 100))
		}
		return &domain.OrderSearchPage{Results: orders, Paging: domain.Paging{Total: 10}}
	}

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 2, 0).
		Return(page(1, 2), nil)
	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 2, 2).
		Return(page(3, 4), nil)

	client.EXPECT().GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("indisponível"))

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	require.True(t, response.Success)
	// 3 pedidos de 100 após o truncamento, não 4
	assert.Equal(t, 300.0, response.DashboardData.Summary.GMV)
}

func TestProcessFiltersOrdersOutsideWindow(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	inside := paidOrder(1, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), 200)
	outside := paidOrder(2, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), 999)

	// date_closed dentro da janela prevalece sobre date_created fora dela
	closedAt := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	closedInside := paidOrder(3, time.Date(2026, 7, 28, 10, 0, 0, 0, time.UTC), 300)
	closedInside.DateClosed = &closedAt

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{
			Results: []domain.Order{inside, outside, closedInside},
			Paging:  domain.Paging{Total: 3},
		}, nil)

	client.EXPECT().GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(50, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	require.True(t, response.Success)
	assert.Equal(t, 500.0, response.DashboardData.Summary.GMV)
}

func TestProcessExcludesNonPaidOrders(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	paid := paidOrder(1, time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC), 1000)
	cancelled := paidOrder(2, time.Date(2026, 8, 11, 15, 0, 0, 0, time.UTC), 5000)
	cancelled.Status = "cancelled"

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{
			Results: []domain.Order{paid, cancelled},
			Paging:  domain.Paging{Total: 2},
		}, nil)

	client.EXPECT().GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(10, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	require.True(t, response.Success)
	// O pedido cancelado não entra em nenhuma métrica
	assert.Equal(t, 1000.0, response.DashboardData.Summary.GMV)
}

func TestProcessStopsPaginationOnShortPage(t *testing.T) {
	cfg := &config.Aggregation{
		PageSize:           2,
		MaxPages:           20,
		MaxOrders:          500,
		BatchMaxConcurrent: 3,
	}
	svc, connector, client := newTestAggregator(t, cfg)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	// A API reporta um total maior do que realmente devolve: a página curta
	// encerra a paginação sem novas chamadas
	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 2, 0).
		Return(&domain.OrderSearchPage{
			Results: []domain.Order{paidOrder(1, time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC), 100)},
			Paging:  domain.Paging{Total: 10},
		}, nil).
		Times(1)

	client.EXPECT().GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(10, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	require.True(t, response.Success)
	assert.Equal(t, 100.0, response.DashboardData.Summary.GMV)
}

func TestProcessVisitsFallback(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	order := paidOrder(1, time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC), 1000, domain.OrderItem{
		Item:      domain.ItemRef{ID: "MLB123", Title: "Fone bluetooth"},
		Quantity:  4,
		UnitPrice: 250,
	})

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{Results: []domain.Order{order}, Paging: domain.Paging{Total: 1}}, nil)

	client.EXPECT().
		GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, errors.New("visitas indisponíveis"))

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	require.True(t, response.Success)
	summary := response.DashboardData.Summary
	assert.Equal(t, 4*domain.VisitsFallbackPerUnit, summary.Visits)
	assert.Equal(t, domain.ConversionFallback, summary.Conversion)
	assert.Equal(t, domain.ProvenanceEstimated, response.DashboardData.Provenance.Visits)
}

func TestProcessMonthBucketsAreChronological(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	order := paidOrder(1, time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC), 400)

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{Results: []domain.Order{order}, Paging: domain.Paging{Total: 1}}, nil)
	client.EXPECT().GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(10, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	buckets := response.DashboardData.SalesByMonth
	require.Len(t, buckets, 6)
	assert.Equal(t, "2026-03", buckets[0].Month)
	assert.Equal(t, "2026-08", buckets[5].Month)
	assert.Equal(t, 400.0, buckets[5].Revenue)
	assert.Equal(t, 0.0, buckets[0].Revenue)
}

func TestProcessBucketsMonthsInRequestTimezone(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	// 01:00 UTC de 1º de agosto ainda é 31 de julho em São Paulo
	order := paidOrder(1, time.Date(2026, 8, 1, 1, 0, 0, 0, time.UTC), 400)

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{Results: []domain.Order{order}, Paging: domain.Paging{Total: 1}}, nil)
	client.EXPECT().GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(10, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
		Timezone:  "America/Sao_Paulo",
	})

	buckets := response.DashboardData.SalesByMonth
	require.Len(t, buckets, 6)
	assert.Equal(t, "2026-07", buckets[4].Month)
	assert.Equal(t, 400.0, buckets[4].Revenue)
	assert.Equal(t, "2026-08", buckets[5].Month)
	assert.Equal(t, 0.0, buckets[5].Revenue)
}

func TestProcessPrevPeriodSummary(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	order := paidOrder(1, time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC), 1000, domain.OrderItem{
		Item:     domain.ItemRef{ID: "MLB123", Title: "Fone"},
		Quantity: 10, UnitPrice: 100,
	})

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{Results: []domain.Order{order}, Paging: domain.Paging{Total: 1}}, nil)
	client.EXPECT().GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(1000, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:     "user-1",
		DateRange:  testDateRange(window),
		PrevPeriod: true,
	})

	prev := response.DashboardData.PrevSummary
	assert.Equal(t, 900.0, prev.GMV)
	assert.Equal(t, 8, prev.Units)
	assert.Equal(t, 880, prev.Visits)
	assert.Equal(t, domain.ProvenanceEstimated, response.DashboardData.Provenance.PrevPeriod)
}

func TestProcessWithoutOrdersReturnsSampleData(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{Results: []domain.Order{}, Paging: domain.Paging{Total: 0}}, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	require.True(t, response.Success)
	assert.False(t, response.HasDashboardData)
	assert.True(t, response.IsTestData)
	assert.NotZero(t, response.DashboardData.Summary.GMV)
}

func TestProcessWithoutOrdersAndTestDataDisabled(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{Results: []domain.Order{}, Paging: domain.Paging{Total: 0}}, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:          "user-1",
		DateRange:       testDateRange(window),
		DisableTestData: true,
	})

	require.True(t, response.Success)
	assert.False(t, response.HasDashboardData)
	assert.False(t, response.IsTestData)
	assert.Zero(t, response.DashboardData.Summary.GMV)
}

func TestProcessWhenNotConnected(t *testing.T) {
	svc, connector, _ := newTestAggregator(t, nil)

	connector.EXPECT().
		TokenForUser(gomock.Any(), "user-1").
		Return(nil, connecting.ErrNotConnected)

	response := svc.Process(context.Background(), &domain.DataRequest{UserID: "user-1"})

	assert.False(t, response.Success)
	assert.False(t, response.IsConnected)
	assert.NotNil(t, response.BatchResults)
	assert.NotNil(t, response.DashboardData.TopProducts)
}

func TestProcessWhenReconnectRequired(t *testing.T) {
	svc, connector, _ := newTestAggregator(t, nil)

	connector.EXPECT().
		TokenForUser(gomock.Any(), "user-1").
		Return(nil, connecting.ErrReconnectRequired)

	response := svc.Process(context.Background(), &domain.DataRequest{UserID: "user-1"})

	assert.False(t, response.Success)
	assert.Equal(t, domain.MessageReconnectRequired, response.Message)
}

func TestProcessWhenRateLimited(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)
	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(nil, meliclient.ErrRateLimited)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
	})

	assert.False(t, response.Success)
	assert.True(t, response.IsConnected)
	assert.Equal(t, domain.MessageRateLimited, response.Message)
}

func TestProcessWithInvalidDateRange(t *testing.T) {
	svc, _, _ := newTestAggregator(t, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: &domain.DateRange{Begin: "não é data", End: "também não"},
	})

	assert.False(t, response.Success)
	assert.Contains(t, response.Message, "data inicial inválida")
}

func TestProcessWithoutUserID(t *testing.T) {
	svc, _, _ := newTestAggregator(t, nil)

	response := svc.Process(context.Background(), &domain.DataRequest{})

	assert.False(t, response.Success)
	assert.Contains(t, response.Message, "user_id")
}

func TestProcessUsesCacheOnSecondCall(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil).Times(2)

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{
			Results: []domain.Order{paidOrder(1, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), 100)},
			Paging:  domain.Paging{Total: 1},
		}, nil).
		Times(1)
	client.EXPECT().
		GetUserVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(10, nil).
		Times(1)

	request := &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
		UseCache:  true,
	}

	first := svc.Process(context.Background(), request)
	second := svc.Process(context.Background(), request)

	assert.True(t, first.Success)
	assert.Equal(t, first.DashboardData.Summary.GMV, second.DashboardData.Summary.GMV)
}

func TestProcessRunsBatchRequests(t *testing.T) {
	svc, connector, client := newTestAggregator(t, nil)
	window := testWindow(t)

	connector.EXPECT().TokenForUser(gomock.Any(), "user-1").Return(testRecord, nil)

	client.EXPECT().
		SearchOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), 50, 0).
		Return(&domain.OrderSearchPage{Results: []domain.Order{}, Paging: domain.Paging{Total: 0}}, nil)

	client.EXPECT().
		Get(gomock.Any(), "APP_USR-123", "/users/me", gomock.Nil()).
		Return(json.RawMessage(`{"id":987654}`), nil)
	client.EXPECT().
		Get(gomock.Any(), "APP_USR-123", "/items/MLB123", gomock.Nil()).
		Return(nil, errors.New("item não encontrado"))

	response := svc.Process(context.Background(), &domain.DataRequest{
		UserID:    "user-1",
		DateRange: testDateRange(window),
		BatchRequests: []domain.BatchRequest{
			{Endpoint: "/users/me"},
			{Endpoint: "/items/MLB123"},
		},
	})

	require.Len(t, response.BatchResults, 2)

	byEndpoint := map[string]domain.BatchResult{}
	for _, result := range response.BatchResults {
		byEndpoint[result.Endpoint] = result
	}

	assert.True(t, byEndpoint["/users/me"].Success)
	assert.JSONEq(t, `{"id":987654}`, string(byEndpoint["/users/me"].Data))
	assert.False(t, byEndpoint["/items/MLB123"].Success)
	assert.Contains(t, byEndpoint["/items/MLB123"].Error, "não encontrado")
}
