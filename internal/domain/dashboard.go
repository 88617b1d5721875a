package domain

import "github.com/meliboard/meliboard-api/pkg/utils"

// Percentuais fixos aplicados sobre o GMV na estimativa de custos. Não há
// dado de tarifa por item na resposta de pedidos, então o resumo de custos é
// uma aproximação declarada, nunca uma soma medida.
const (
	CommissionRate = 0.07
	TaxRate        = 0.17
	ShippingRate   = 0.03
	DiscountRate   = 0.05
	RefundRate     = 0.02
	IVARate        = 0.21
)

// Fatores de redução aplicados ao resumo atual para derivar o período
// anterior sem uma segunda passada completa de agregação.
const (
	PrevGMVRatio    = 0.90
	PrevUnitsRatio  = 0.85
	PrevVisitsRatio = 0.88
)

// VisitsFallbackPerUnit e ConversionFallback preenchem o resumo quando a
// consulta de visitas falha, em vez de deixar campos indefinidos.
const (
	VisitsFallbackPerUnit = 25
	ConversionFallback    = 4.0
)

// Provenance identifica se um bloco do dashboard foi medido na API ou
// estimado localmente.
type Provenance string

const (
	ProvenanceMeasured  Provenance = "measured"
	ProvenanceEstimated Provenance = "estimated"
)

// DataProvenance acompanha a origem de cada bloco derivado do DashboardData.
type DataProvenance struct {
	Visits     Provenance `json:"visits"`
	Costs      Provenance `json:"costs"`
	PrevPeriod Provenance `json:"prev_period"`
}

// SalesSummary é o resumo de vendas de um período.
type SalesSummary struct {
	GMV         float64 `json:"gmv"`
	Units       int     `json:"units"`
	AvgTicket   float64 `json:"avg_ticket"`
	Commissions float64 `json:"commissions"`
	Taxes       float64 `json:"taxes"`
	Shipping    float64 `json:"shipping"`
	Discounts   float64 `json:"discounts"`
	Refunds     float64 `json:"refunds"`
	IVA         float64 `json:"iva"`
	Visits      int     `json:"visits"`
	Conversion  float64 `json:"conversion"`
}

// MonthBucket acumula receita por mês-calendário ("2006-01").
type MonthBucket struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ProductStat acumula unidades e receita por item.
type ProductStat struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
}

// ProvinceStat acumula receita por estado de entrega.
type ProvinceStat struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// CostSlice é uma fatia do gráfico de distribuição de custos.
type CostSlice struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// DashboardData é o agregado derivado exposto ao front-end. Todos os campos
// são sempre preenchidos; consumidores não precisam de null-checks.
type DashboardData struct {
	Summary          SalesSummary   `json:"summary"`
	PrevSummary      SalesSummary   `json:"prev_summary"`
	SalesByMonth     []MonthBucket  `json:"sales_by_month"`
	CostDistribution []CostSlice    `json:"cost_distribution"`
	TopProducts      []ProductStat  `json:"top_products"`
	SalesByProvince  []ProvinceStat `json:"sales_by_province"`
	Provenance       DataProvenance `json:"provenance"`
}

// EmptyDashboardData retorna um agregado bem formado com tudo zerado, usado
// nas respostas de falha para manter o contrato sempre-parseável.
func EmptyDashboardData() DashboardData {
	return DashboardData{
		SalesByMonth:     []MonthBucket{},
		CostDistribution: []CostSlice{},
		TopProducts:      []ProductStat{},
		SalesByProvince:  []ProvinceStat{},
		Provenance: DataProvenance{
			Visits:     ProvenanceEstimated,
			Costs:      ProvenanceEstimated,
			PrevPeriod: ProvenanceEstimated,
		},
	}
}

// ApplyCostEstimates preenche os campos de custo do resumo a partir do GMV.
func (s *SalesSummary) ApplyCostEstimates() {
	s.Commissions = utils.RoundWithTwoDecimalPlace(s.GMV * CommissionRate)
	s.Taxes = utils.RoundWithTwoDecimalPlace(s.GMV * TaxRate)
	s.Shipping = utils.RoundWithTwoDecimalPlace(s.GMV * ShippingRate)
	s.Discounts = utils.RoundWithTwoDecimalPlace(s.GMV * DiscountRate)
	s.Refunds = utils.RoundWithTwoDecimalPlace(s.GMV * RefundRate)
	s.IVA = utils.RoundWithTwoDecimalPlace(s.GMV * IVARate)
}

// ApplyDerivedMetrics recalcula ticket médio e conversão a partir dos campos
// base, com os zeros definidos do contrato.
func (s *SalesSummary) ApplyDerivedMetrics() {
	s.AvgTicket = 0
	if s.Units > 0 {
		s.AvgTicket = utils.RoundWithTwoDecimalPlace(s.GMV / float64(s.Units))
	}

	s.Conversion = 0
	if s.Visits > 0 {
		s.Conversion = utils.RoundWithTwoDecimalPlace(float64(s.Units) / float64(s.Visits) * 100)
	}
}

// CostDistributionOf monta as fatias do gráfico de custos a partir do resumo.
func CostDistributionOf(s SalesSummary) []CostSlice {
	return []CostSlice{
		{Label: "Comissões", Amount: s.Commissions},
		{Label: "Impostos", Amount: s.Taxes},
		{Label: "Frete", Amount: s.Shipping},
		{Label: "Descontos", Amount: s.Discounts},
		{Label: "Reembolsos", Amount: s.Refunds},
		{Label: "IVA", Amount: s.IVA},
	}
}
