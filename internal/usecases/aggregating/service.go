package aggregating

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/meliboard/meliboard-api/infrastructure/integrator/meli/meliclient"
	"github.com/meliboard/meliboard-api/internal/cache"
	"github.com/meliboard/meliboard-api/internal/config"
	"github.com/meliboard/meliboard-api/internal/domain"
	"github.com/meliboard/meliboard-api/internal/usecases/connecting"
	"github.com/meliboard/meliboard-api/pkg/utils"
)

const (
	topProductsLimit  = 5
	monthBucketsCount = 6
)

type service struct {
	connector connecting.Connector
	client    meliclient.Client
	respCache cache.ResponseCache
	cfg       *config.Aggregation

	// Relógio injetável para os testes de janela padrão.
	now func() time.Time
}

func NewService(
	connector connecting.Connector,
	client meliclient.Client,
	respCache cache.ResponseCache,
	cfg *config.Aggregation,
) Service {
	return &service{
		connector: connector,
		client:    client,
		respCache: respCache,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Process valida a requisição, resolve o token do usuário, agrega os pedidos
// da janela e executa os batch requests. Toda falha vira um envelope com
// success:false em vez de um erro.
func (s *service) Process(ctx context.Context, request *domain.DataRequest) *domain.DataResponse {
	if request == nil || request.UserID == "" {
		return domain.FailureDataResponse("user_id é obrigatório", false)
	}

	loc := resolveLocation(request.Timezone)
	window, err := s.resolveWindow(request, loc)
	if err != nil {
		return domain.FailureDataResponse(err.Error(), false)
	}

	record, err := s.connector.TokenForUser(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, connecting.ErrReconnectRequired) {
			return domain.FailureDataResponse(domain.MessageReconnectRequired, false)
		}
		return domain.FailureDataResponse(err.Error(), false)
	}

	cacheKey := cache.Key(request.UserID, batchFingerprint(request.BatchRequests), window.FromISO(), window.ToISO())
	if request.UseCache {
		if cached, found := s.respCache.Get(cacheKey); found {
			logrus.Debugf("aggregating: cache hit para o usuário %s", request.UserID)
			return cached
		}
	}

	orders, err := s.collectOrders(ctx, record, window)
	if err != nil {
		if errors.Is(err, meliclient.ErrRateLimited) {
			response := domain.FailureDataResponse(domain.MessageRateLimited, true)
			response.MeliUserID = strconv.FormatInt(record.MeliUserID, 10)
			return response
		}
		logrus.WithError(err).Errorf("aggregating: erro ao buscar pedidos do usuário %s", request.UserID)
		response := domain.FailureDataResponse("erro ao buscar pedidos", true)
		response.MeliUserID = strconv.FormatInt(record.MeliUserID, 10)
		return response
	}

	response := &domain.DataResponse{
		Success:      true,
		IsConnected:  true,
		MeliUserID:   strconv.FormatInt(record.MeliUserID, 10),
		BatchResults: s.runBatchRequests(ctx, record, request.BatchRequests),
	}

	if len(orders) == 0 {
		if request.DisableTestData {
			response.DashboardData = domain.EmptyDashboardData()
		} else {
			response.DashboardData = sampleDashboardData(window, loc)
			response.IsTestData = true
		}
		response.HasDashboardData = false
	} else {
		response.DashboardData = s.buildDashboard(ctx, record, orders, window, loc, request.PrevPeriod)
		response.HasDashboardData = true
	}

	if request.UseCache {
		s.respCache.Set(cacheKey, response)
	}

	return response
}

// InvalidateUser descarta as respostas em cache do usuário.
func (s *service) InvalidateUser(userID string) {
	s.respCache.Invalidate(userID)
}

func (s *service) resolveWindow(request *domain.DataRequest, loc *time.Location) (domain.DateWindow, error) {
	if request.DateRange == nil {
		return domain.DefaultDateWindow(s.now().In(loc)), nil
	}
	return domain.ParseDateRange(request.DateRange.Begin, request.DateRange.End)
}

// resolveLocation carrega o fuso horário da requisição. Um fuso ausente ou
// desconhecido cai em UTC, nunca em erro.
func resolveLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logrus.Warnf("aggregating: fuso horário desconhecido %q, usando UTC", timezone)
		return time.UTC
	}

	return loc
}

// collectOrders pagina /orders/search até esgotar o total, o limite de
// páginas ou o teto de pedidos, e re-filtra localmente por status e pela
// data de referência de cada pedido.
func (s *service) collectOrders(ctx context.Context, record *domain.TokenRecord, window domain.DateWindow) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)

	for page := 0; page < s.cfg.MaxPages; page++ {
		offset := page * s.cfg.PageSize

		result, err := s.client.SearchOrders(ctx, record.AccessToken, record.MeliUserID, window, s.cfg.PageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, order := range result.Results {
			// A API já filtra por order.status=paid; o re-filtro cobre
			// respostas frouxas do lado dela.
			if order.Status != domain.OrderStatusPaid {
				continue
			}
			if !window.Contains(order.ReferenceDate()) {
				continue
			}

			orders = append(orders, order)
			if len(orders) >= s.cfg.MaxOrders {
				logrus.Warnf("aggregating: teto de %d pedidos atingido, truncando a janela", s.cfg.MaxOrders)
				return orders, nil
			}
		}

		// Uma página curta encerra a paginação mesmo quando o total
		// reportado pela API diz que haveria mais.
		if len(result.Results) < s.cfg.PageSize || offset+s.cfg.PageSize >= result.Paging.Total {
			break
		}
	}

	return orders, nil
}

// buildDashboard deriva todos os blocos do dashboard em uma única passada
// sobre os pedidos. Os meses-calendário são agrupados no fuso horário do
// cliente.
func (s *service) buildDashboard(ctx context.Context, record *domain.TokenRecord, orders []domain.Order, window domain.DateWindow, loc *time.Location, prevPeriod bool) domain.DashboardData {
	summary := domain.SalesSummary{}
	productIndex := map[string]*domain.ProductStat{}
	provinceIndex := map[string]float64{}
	monthIndex := map[string]float64{}

	for i := range orders {
		order := &orders[i]

		summary.GMV += order.TotalAmount

		for _, item := range order.OrderItems {
			summary.Units += item.Quantity

			stat, ok := productIndex[item.Item.ID]
			if !ok {
				stat = &domain.ProductStat{ID: item.Item.ID, Title: item.Item.Title}
				productIndex[item.Item.ID] = stat
			}
			stat.Units += item.Quantity
			stat.Revenue += float64(item.Quantity) * item.UnitPrice
		}

		if province := order.Province(); province != "" {
			provinceIndex[province] += order.TotalAmount
		}

		monthIndex[order.ReferenceDate().In(loc).Format("2006-01")] += order.TotalAmount
	}

	summary.GMV = utils.RoundWithTwoDecimalPlace(summary.GMV)
	summary.ApplyCostEstimates()

	provenance := domain.DataProvenance{
		Visits:     domain.ProvenanceMeasured,
		Costs:      domain.ProvenanceEstimated,
		PrevPeriod: domain.ProvenanceEstimated,
	}

	visits, err := s.client.GetUserVisits(ctx, record.AccessToken, record.MeliUserID, window)
	if err != nil {
		logrus.WithError(err).Warn("aggregating: consulta de visitas falhou, usando estimativa")
		visits = summary.Units * domain.VisitsFallbackPerUnit
		provenance.Visits = domain.ProvenanceEstimated
	}
	summary.Visits = visits
	summary.ApplyDerivedMetrics()

	if provenance.Visits == domain.ProvenanceEstimated && summary.Units > 0 {
		summary.Conversion = domain.ConversionFallback
	}

	data := domain.DashboardData{
		Summary:          summary,
		SalesByMonth:     monthBuckets(monthIndex, window, loc),
		CostDistribution: domain.CostDistributionOf(summary),
		TopProducts:      topProducts(productIndex),
		SalesByProvince:  provinceStats(provinceIndex),
		Provenance:       provenance,
	}

	if prevPeriod {
		data.PrevSummary = scaledPrevSummary(summary)
	}

	return data
}

// scaledPrevSummary deriva o período anterior aplicando os fatores fixos
// sobre o resumo atual. É sempre marcado como estimado na proveniência.
func scaledPrevSummary(current domain.SalesSummary) domain.SalesSummary {
	prev := domain.SalesSummary{
		GMV:    utils.RoundWithTwoDecimalPlace(current.GMV * domain.PrevGMVRatio),
		Units:  int(float64(current.Units) * domain.PrevUnitsRatio),
		Visits: int(float64(current.Visits) * domain.PrevVisitsRatio),
	}
	prev.ApplyCostEstimates()
	prev.ApplyDerivedMetrics()
	return prev
}

// monthBuckets monta os últimos meses-calendário da janela em ordem
// cronológica, com meses sem venda zerados.
func monthBuckets(monthIndex map[string]float64, window domain.DateWindow, loc *time.Location) []domain.MonthBucket {
	buckets := make([]domain.MonthBucket, 0, monthBucketsCount)

	end := window.To.In(loc)
	anchor := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, loc)
	for i := monthBucketsCount - 1; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0).Format("2006-01")
		buckets = append(buckets, domain.MonthBucket{
			Month:   month,
			Revenue: utils.RoundWithTwoDecimalPlace(monthIndex[month]),
		})
	}

	return buckets
}

func topProducts(productIndex map[string]*domain.ProductStat) []domain.ProductStat {
	products := make([]domain.ProductStat, 0, len(productIndex))
	for _, stat := range productIndex {
		stat.Revenue = utils.RoundWithTwoDecimalPlace(stat.Revenue)
		products = append(products, *stat)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].ID < products[j].ID
	})

	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}

	return products
}

func provinceStats(provinceIndex map[string]float64) []domain.ProvinceStat {
	provinces := make([]domain.ProvinceStat, 0, len(provinceIndex))
	for name, revenue := range provinceIndex {
		provinces = append(provinces, domain.ProvinceStat{
			Name:    name,
			Revenue: utils.RoundWithTwoDecimalPlace(revenue),
		})
	}

	sort.Slice(provinces, func(i, j int) bool {
		if provinces[i].Revenue != provinces[j].Revenue {
			return provinces[i].Revenue > provinces[j].Revenue
		}
		return provinces[i].Name < provinces[j].Name
	})

	return provinces
}

// batchFingerprint resume os endpoints pedidos para compor a chave de cache.
func batchFingerprint(requests []domain.BatchRequest) string {
	if len(requests) == 0 {
		return "dashboard"
	}

	endpoints := make([]string, 0, len(requests))
	for _, request := range requests {
		endpoints = append(endpoints, request.Endpoint)
	}
	sort.Strings(endpoints)

	return strings.Join(endpoints, ",")
}
