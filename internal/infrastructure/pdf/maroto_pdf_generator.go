// Package pdf genera la hoja de lote que acompaña a la orden de fabricación en planta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + N° Orden + Lote   │  QR del lote         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: tipo, concentración, sucursal, fechas, estado        │
//	│  RENDIMIENTO: teórico / esperado / unidades / real           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FÓRMULA ESCALADA: Material | % | Densidad | ml | g          │
//	│  DISPONIBILIDAD: materias primas y empaque                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROCESO: maceración, enfriado, filtrado, QC                 │
//	│  COSTOS: desglose + por ml + por frasco + PVP sugerido       │
//	│  FIRMAS: Elaboró / Revisó QC / Aprobó                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/application/ports"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	mfg "github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
)

var _ ports.BatchSheetGenerator = (*MarotoBatchSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 45, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoBatchSheetGenerator implementa ports.BatchSheetGenerator usando Maroto v2.
type MarotoBatchSheetGenerator struct{}

// NewMarotoBatchSheetGenerator construye el generador.
func NewMarotoBatchSheetGenerator() *MarotoBatchSheetGenerator {
	return &MarotoBatchSheetGenerator{}
}

// GenerateBatchSheet genera el PDF y devuelve sus bytes.
func (g *MarotoBatchSheetGenerator) GenerateBatchSheet(_ context.Context, sheet ports.BatchSheet) ([]byte, error) {
	if sheet.Order == nil || sheet.Plan == nil {
		return nil, fmt.Errorf("pdf: la hoja de lote requiere orden y plan")
	}
	order, plan := sheet.Order, sheet.Plan

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de lote "+order.BatchCode, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderDataRows(order, sheet)...)
	m.AddRows(yieldRow(plan.Yield))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("FÓRMULA ESCALADA"))
	m.AddRows(tableHeaderRow("Material", "%", "Densidad", "ml", "g"))
	m.AddRows(formulaRows(plan.ScaledFormula)...)

	m.AddRows(sectionTitle("DISPONIBILIDAD EN SUCURSAL"))
	if !mfg.BranchAssigned(plan.BranchID) {
		m.AddRows(noteRow("Orden sin sucursal asignada: no se consultó inventario.", colorDanger))
	}
	m.AddRows(tableHeaderRow("Material / Empaque", "Unidad", "Requerido", "Disponible", "Estado"))
	m.AddRows(availabilityRows(plan)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("PROCESO Y CONTROL DE CALIDAD"))
	m.AddRows(processRows(order)...)

	m.AddRows(sectionTitle("COSTOS"))
	m.AddRows(costsRow(plan.Costs))

	m.AddRows(line.NewRow(8))
	m.AddRows(signaturesRow())
	m.AddRows(noteRow("Generado: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), colorGray))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto, N° de orden y lote (izq) y QR del lote (der).
func headerRow(order *entity.ManufacturingOrder) core.Row {
	return row.New(28).Add(
		col.New(9).Add(
			text.New("HOJA DE LOTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(order.ProductName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6,
			}),
			text.New("Orden: "+order.ID, props.Text{Size: 9, Top: 15, Color: colorGray}),
			text.New("Lote: "+order.BatchCode, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 21, Color: colorPrimary,
			}),
		),
		col.New(3).Add(code.NewQr(order.BatchCode, props.Rect{Percent: 90, Center: true})),
	)
}

func orderDataRows(order *entity.ManufacturingOrder, sheet ports.BatchSheet) []core.Row {
	branch := nonEmpty(sheet.BranchName, nonEmpty(order.BranchID, "Sin asignar"))
	return []core.Row{
		row.New(6).Add(
			labelValue(3, "Tipo", string(order.ManufacturingType)),
			labelValue(3, "Concentración", string(order.Concentration)),
			labelValue(3, "Sucursal", branch),
			labelValue(3, "Estado", string(order.Status)),
		),
		row.New(6).Add(
			labelValue(3, "Frasco", order.BottleSizeMl.String()+" ml"),
			labelValue(3, "Unidades", fmt.Sprintf("%d", order.UnitsRequested)),
			labelValue(3, "Fabricación", formatDate(order.ManufacturingDate)),
			labelValue(3, "Vencimiento", formatDate(order.ExpiryDate)),
		),
		row.New(6).Add(
			labelValue(6, "Responsable", nonEmpty(order.ResponsibleEmployeeID, "—")),
			labelValue(6, "Entrega", formatDate(order.DueAt)),
		),
	}
}

func yieldRow(y entity.Yield) core.Row {
	actual := "—"
	if y.ActualMl != nil {
		actual = y.ActualMl.StringFixed(2) + " ml"
	}
	return row.New(8).Add(
		labelValue(3, "Volumen teórico", y.TheoreticalMl.StringFixed(2)+" ml"),
		labelValue(3, "Volumen esperado", y.ExpectedMl.StringFixed(2)+" ml"),
		labelValue(3, "Unidades esperadas", fmt.Sprintf("%d", y.ExpectedUnits)),
		labelValue(3, "Real / Rendimiento", actual+" / "+y.YieldPercentage.StringFixed(1)+"%"),
	)
}

// tableHeaderRow: cabecera de cinco columnas (4/2/2/2/2).
func tableHeaderRow(labels ...string) core.Row {
	sizes := []int{4, 2, 2, 2, 2}
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func formulaRows(lines []dto.ScaledLineResponse) []core.Row {
	if len(lines) == 0 {
		return []core.Row{noteRow("La orden no tiene fórmula cargada.", colorGray)}
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, dataRow(
			l.MaterialName,
			l.Percentage.StringFixed(2),
			l.Density.StringFixed(3),
			l.RequiredMl.StringFixed(2),
			l.RequiredG.StringFixed(2),
			nil,
		))
	}
	return result
}

func availabilityRows(plan *dto.PlanResponse) []core.Row {
	result := make([]core.Row, 0, len(plan.Materials)+len(plan.Packaging))
	for _, r := range plan.Materials {
		result = append(result, dataRow(
			r.MaterialName, r.Unit,
			r.Required.StringFixed(2), r.Available.StringFixed(2),
			statusLabel(r.IsSufficient), statusColor(r.IsSufficient),
		))
	}
	for _, r := range plan.Packaging {
		result = append(result, dataRow(
			r.Name, "pcs",
			r.Required.StringFixed(0), r.Available.StringFixed(0),
			statusLabel(r.IsSufficient), statusColor(r.IsSufficient),
		))
	}
	if len(result) == 0 {
		result = append(result, noteRow("Sin materiales ni empaque.", colorGray))
	}
	return result
}

func processRows(order *entity.ManufacturingOrder) []core.Row {
	chilling, filtration, qc := "—", "—", "Pendiente"
	if order.Chilling != nil {
		chilling = fmt.Sprintf("%s h a %s °C", order.Chilling.Hours.String(), order.Chilling.TemperatureC.String())
	}
	if order.Filtration != nil {
		filtration = fmt.Sprintf("%d etapas, %s µm", order.Filtration.Stages, order.Filtration.Micron.String())
	}
	if order.QC != nil {
		qc = fmt.Sprintf("%s (apariencia: %s, claridad: %s, olor: %s)",
			nonEmpty(order.QC.Result, "Pendiente"),
			nonEmpty(order.QC.Appearance, "—"),
			nonEmpty(order.QC.Clarity, "—"),
			nonEmpty(order.QC.OdorMatch, "—"),
		)
	}
	loss := order.ProcessLoss
	return []core.Row{
		row.New(6).Add(
			labelValue(3, "Maceración", fmt.Sprintf("%d días", order.MacerationDays)),
			labelValue(4, "Enfriado", chilling),
			labelValue(5, "Filtrado", filtration),
		),
		row.New(6).Add(
			labelValue(12, "Pérdidas (mezcla / filtrado / llenado)", fmt.Sprintf("%s%% / %s%% / %s%%",
				loss.MixingLossPct.String(), loss.FiltrationLossPct.String(), loss.FillingLossPct.String())),
		),
		row.New(6).Add(labelValue(12, "QC", qc)),
	}
}

// costsRow: desglose a la izquierda, unitarios a la derecha.
func costsRow(c entity.Costs) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Right: 1})
	}
	return row.New(30).Add(
		col.New(3).Add(
			label("Materias primas:"), label("Mano de obra:"), label("Indirectos:"),
			label("Empaque:"), label("Otros:"), label("TOTAL:"),
		),
		col.New(3).Add(
			value(formatMoney(c.Materials)), value(formatMoney(c.Labor)), value(formatMoney(c.Overhead)),
			value(formatMoney(c.Packaging)), value(formatMoney(c.Other)), value(formatMoney(c.Total)),
		),
		col.New(3).Add(
			label("Costo por ml:"), label("Costo por frasco:"), label("PVP sugerido:"),
		),
		col.New(3).Add(
			value(c.PerMl.StringFixed(6)), value(formatMoney(c.PerBottle)), value(formatMoney(c.SuggestedRetail)),
		),
	)
}

func signaturesRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(4).Add(
			text.New("______________________", props.Text{Size: 9, Align: align.Center, Top: 6}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 12, Color: colorGray}),
		)
	}
	return row.New(20).Add(sig("Elaboró"), sig("Revisó QC"), sig("Aprobó"))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(s, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
	})))
}

func noteRow(s string, color *props.Color) core.Row {
	return row.New(5).Add(col.New(12).Add(text.New(s, props.Text{Size: 7.5, Color: color, Top: 1})))
}

func labelValue(size int, label, value string) core.Col {
	return col.New(size).Add(
		text.New(label+": ", props.Text{Style: fontstyle.Bold, Size: 7.5, Top: 1}),
		text.New(value, props.Text{Size: 7.5, Top: 1, Left: float64(len(label)*2 + 4)}),
	)
}

func dataRow(first, c2, c3, c4, c5 string, lastColor *props.Color) core.Row {
	cell := func(a align.Type) props.Text {
		return props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
	}
	last := cell(align.Right)
	if lastColor != nil {
		last.Color = lastColor
		last.Style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(4).Add(text.New(first, cell(align.Left))),
		col.New(2).Add(text.New(c2, cell(align.Right))),
		col.New(2).Add(text.New(c3, cell(align.Right))),
		col.New(2).Add(text.New(c4, cell(align.Right))),
		col.New(2).Add(text.New(c5, last)),
	)
}

func statusLabel(ok bool) string {
	if ok {
		return "OK"
	}
	return "FALTANTE"
}

func statusColor(ok bool) *props.Color {
	if ok {
		return colorGray
	}
	return colorDanger
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con 3 decimales e inserta comas de miles en la parte entera.
// Ej: 1234567.5 → "1,234,567.500"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(3)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
