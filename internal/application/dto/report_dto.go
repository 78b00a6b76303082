package dto

import "github.com/shopspring/decimal"

// ReportWindowRequest ventana de tiempo común a los reportes de movimientos.
// Default: últimos 30 días. Filtros opcionales por usuario y tipo (in|out).
type ReportWindowRequest struct {
	From   string `query:"from"`
	To     string `query:"to"`
	UserID string `query:"user_id"`
	Type   string `query:"type"`
	Limit  int    `query:"limit"`
}

// DateRange rango resuelto que acompaña cada respuesta de reporte.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TotalProductsResponse conteo de productos.
type TotalProductsResponse struct {
	TotalProducts int `json:"total_products"`
}

// TotalUnitsResponse suma de unidades en inventario.
type TotalUnitsResponse struct {
	TotalUnits int64 `json:"total_units"`
}

// TotalValueResponse valor total del inventario.
type TotalValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}

// StockRankItem fila de ranking por cantidad.
type StockRankItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// LowStockItem producto en alerta de stock.
type LowStockItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	StockMin  int64  `json:"stock_min"`
}

// KPIResponse indicadores del período.
type KPIResponse struct {
	Range          DateRange       `json:"range"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	AlertCount     int             `json:"alert_count"`
	InboundUnits   int64           `json:"inbound_units"`
	OutboundUnits  int64           `json:"outbound_units"`
	OutboundCost   decimal.Decimal `json:"outbound_cost"`
}

// DailySeriesItem punto diario de entradas/salidas.
type DailySeriesItem struct {
	Day      string `json:"day"` // YYYY-MM-DD
	Inbound  int64  `json:"inbound"`
	Outbound int64  `json:"outbound"`
}

// DailySeriesResponse serie diaria del período.
type DailySeriesResponse struct {
	Range  DateRange         `json:"range"`
	Series []DailySeriesItem `json:"series"`
}

// ConsumptionItem consumo por producto.
type ConsumptionItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Total     int64  `json:"total"`
}

// TopConsumptionResponse productos más consumidos del período.
type TopConsumptionResponse struct {
	Range DateRange         `json:"range"`
	Items []ConsumptionItem `json:"items"`
}

// CategoryConsumptionItem consumo por categoría.
type CategoryConsumptionItem struct {
	CategoryID *string `json:"category_id"`
	Category   string  `json:"category"`
	Total      int64   `json:"total"`
}

// CategoryConsumptionResponse consumo agrupado por categoría.
type CategoryConsumptionResponse struct {
	Range DateRange                 `json:"range"`
	Items []CategoryConsumptionItem `json:"items"`
}

// UserMovementItem entradas/salidas por usuario.
type UserMovementItem struct {
	UserID   *string `json:"user_id"`
	UserName *string `json:"user_name"`
	Inbound  int64   `json:"inbound"`
	Outbound int64   `json:"outbound"`
}

// UserMovementsResponse movimientos agrupados por usuario.
type UserMovementsResponse struct {
	Range DateRange          `json:"range"`
	Items []UserMovementItem `json:"items"`
}
