package manufacturing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

const orderIDLayout = "20060102"

// OrderIDPrefix prefijo de los IDs del día: MO-YYYYMMDD-.
func OrderIDPrefix(day time.Time) string {
	return "MO-" + day.Format(orderIDLayout) + "-"
}

// FormatOrderID arma MO-YYYYMMDD-NNN (secuencia con al menos 3 dígitos).
func FormatOrderID(day time.Time, seq int) string {
	return fmt.Sprintf("%s%03d", OrderIDPrefix(day), seq)
}

// ParseOrderSequence extrae la secuencia de un ID MO-YYYYMMDD-NNN.
func ParseOrderSequence(id string) (int, bool) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "MO" || len(parts[1]) != len(orderIDLayout) {
		return 0, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// NextOrderID siguiente ID del día a partir del último emitido (vacío si no hay ninguno).
// Un último ID de otro día o ilegible reinicia la secuencia en 1.
func NextOrderID(day time.Time, lastID string) string {
	seq := 1
	if strings.HasPrefix(lastID, OrderIDPrefix(day)) {
		if last, ok := ParseOrderSequence(lastID); ok {
			seq = last + 1
		}
	}
	return FormatOrderID(day, seq)
}

// BatchCode código de lote BATCH-<epoch-ms>.
func BatchCode(now time.Time) string {
	return fmt.Sprintf("BATCH-%d", now.UnixMilli())
}

// NewDraftOrder orden nueva en DRAFT: fórmula, empaque y distribución vacíos, rendimiento en cero.
func NewDraftOrder(companyID string) entity.ManufacturingOrder {
	return entity.ManufacturingOrder{
		CompanyID:         companyID,
		ManufacturingType: entity.ManufacturingTypeInternal,
		Concentration:     entity.ConcentrationEDT,
		BottleSizeMl:      decimal.Zero,
		Formula:           []entity.FormulaLine{},
		PackagingItems:    []entity.PackagingItem{},
		Distribution:      []entity.DistributionLine{},
		Status:            entity.OrderStatusDraft,
	}
}
