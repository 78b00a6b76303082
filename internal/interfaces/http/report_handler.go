package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-api/internal/application/dto"
	"github.com/tu-usuario/inventario-api/internal/application/usecase"
)

// ReportHandler reportes de solo lectura y export CSV (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func windowRequest(c *fiber.Ctx) dto.ReportWindowRequest {
	return dto.ReportWindowRequest{
		From:   c.Query("from"),
		To:     c.Query("to"),
		UserID: c.Query("user_id"),
		Type:   c.Query("type"),
		Limit:  c.QueryInt("limit"),
	}
}

// TotalProducts godoc
// @Summary      Total de productos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalProductsResponse
// @Router       /api/reports/total-products [get]
func (h *ReportHandler) TotalProducts(c *fiber.Ctx) error {
	out, err := h.uc.TotalProducts(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// TotalUnits godoc
// @Summary      Unidades totales en inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalUnitsResponse
// @Router       /api/reports/total-units [get]
func (h *ReportHandler) TotalUnits(c *fiber.Ctx) error {
	out, err := h.uc.TotalUnits(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// TotalValue godoc
// @Summary      Valor monetario del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalValueResponse
// @Router       /api/reports/total-value [get]
func (h *ReportHandler) TotalValue(c *fiber.Ctx) error {
	out, err := h.uc.TotalValue(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// TopStock godoc
// @Summary      Productos con mayor existencia
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (1-100)"  default(5)
// @Success      200  {array}  dto.StockRankItem
// @Router       /api/reports/top-stock [get]
func (h *ReportHandler) TopStock(c *fiber.Ctx) error {
	out, err := h.uc.TopStock(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// BottomStock godoc
// @Summary      Productos con menor existencia
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (1-100)"  default(5)
// @Success      200  {array}  dto.StockRankItem
// @Router       /api/reports/bottom-stock [get]
func (h *ReportHandler) BottomStock(c *fiber.Ctx) error {
	out, err := h.uc.BottomStock(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en alerta de stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItem
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// KPIs godoc
// @Summary      Indicadores del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.KPIResponse
// @Router       /api/reports/kpis [get]
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.KPIs(c.Context(), windowRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DailySeries godoc
// @Summary      Serie diaria de entradas/salidas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Param        type     query  string  false  "in | out"
// @Success      200  {object}  dto.DailySeriesResponse
// @Router       /api/reports/daily-series [get]
func (h *ReportHandler) DailySeries(c *fiber.Ctx) error {
	out, err := h.uc.DailySeries(c.Context(), windowRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// TopConsumption godoc
// @Summary      Productos más consumidos del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Límite (1-100)"  default(5)
// @Success      200  {object}  dto.TopConsumptionResponse
// @Router       /api/reports/top-consumption [get]
func (h *ReportHandler) TopConsumption(c *fiber.Ctx) error {
	out, err := h.uc.TopConsumption(c.Context(), windowRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ConsumptionByCategory godoc
// @Summary      Consumo agrupado por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.CategoryConsumptionResponse
// @Router       /api/reports/consumption-by-category [get]
func (h *ReportHandler) ConsumptionByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ConsumptionByCategory(c.Context(), windowRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MovementsByUser godoc
// @Summary      Entradas/salidas por usuario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.UserMovementsResponse
// @Router       /api/reports/movements-by-user [get]
func (h *ReportHandler) MovementsByUser(c *fiber.Ctx) error {
	out, err := h.uc.MovementsByUser(c.Context(), windowRequest(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar movimientos del período como CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        from     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Param        type     query  string  false  "in | out"
// @Success      200  {string}  string  "CSV"
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.ExportCSV(c.Context(), windowRequest(c))
	if err != nil {
		return fail(c, err)
	}
	filename := "movimientos_" + time.Now().Format("20060102") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
