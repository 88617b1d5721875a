package aggregating

import (
	"time"

	"github.com/meliboard/meliboard-api/internal/domain"
)

// sampleDashboardData monta um dashboard de demonstração para contas recém
// conectadas sem vendas na janela. A resposta carrega is_test_data para o
// front-end exibir o aviso de dados de exemplo.
func sampleDashboardData(window domain.DateWindow, loc *time.Location) domain.DashboardData {
	summary := domain.SalesSummary{
		GMV:    45600.00,
		Units:  128,
		Visits: 3200,
	}
	summary.ApplyCostEstimates()
	summary.ApplyDerivedMetrics()

	monthIndex := map[string]float64{}
	data := domain.DashboardData{
		Summary:          summary,
		PrevSummary:      scaledPrevSummary(summary),
		SalesByMonth:     monthBuckets(monthIndex, window, loc),
		CostDistribution: domain.CostDistributionOf(summary),
		TopProducts: []domain.ProductStat{
			{ID: "MLB0000000001", Title: "Fone de ouvido bluetooth", Units: 42, Revenue: 12600.00},
			{ID: "MLB0000000002", Title: "Carregador turbo 20W", Units: 35, Revenue: 8750.00},
			{ID: "MLB0000000003", Title: "Capa de celular reforçada", Units: 28, Revenue: 5600.00},
			{ID: "MLB0000000004", Title: "Película de vidro 3D", Units: 15, Revenue: 2250.00},
			{ID: "MLB0000000005", Title: "Suporte veicular magnético", Units: 8, Revenue: 1840.00},
		},
		SalesByProvince: []domain.ProvinceStat{
			{Name: "São Paulo", Revenue: 21500.00},
			{Name: "Rio de Janeiro", Revenue: 9800.00},
			{Name: "Minas Gerais", Revenue: 7400.00},
			{Name: "Paraná", Revenue: 4200.00},
			{Name: "Bahia", Revenue: 2700.00},
		},
		Provenance: domain.DataProvenance{
			Visits:     domain.ProvenanceEstimated,
			Costs:      domain.ProvenanceEstimated,
			PrevPeriod: domain.ProvenanceEstimated,
		},
	}

	// Distribui o GMV de exemplo nos meses da janela para o gráfico não
	// aparecer vazio
	share := summary.GMV / float64(len(data.SalesByMonth))
	for i := range data.SalesByMonth {
		data.SalesByMonth[i].Revenue = share
	}

	return data
}
