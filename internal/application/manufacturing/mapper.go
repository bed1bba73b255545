package manufacturing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	mfg "github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
)

// applyRequest copia los campos editables del request sobre la orden.
// No toca ID, empresa, lote, estado ni fechas de auditoría.
func applyRequest(order *entity.ManufacturingOrder, in dto.OrderRequest) error {
	mt := in.ManufacturingType
	if mt == "" {
		mt = entity.ManufacturingTypeInternal
	}
	if !mt.IsValid() {
		return fmt.Errorf("%w: manufacturing_type %q", domain.ErrInvalidInput, in.ManufacturingType)
	}
	conc := in.Concentration
	if conc == "" {
		conc = entity.ConcentrationEDT
	}
	if !conc.IsValid() {
		return fmt.Errorf("%w: concentration %q", domain.ErrInvalidInput, in.Concentration)
	}

	order.ProductName = strings.TrimSpace(in.ProductName)
	order.ManufacturingType = mt
	order.Concentration = conc
	order.ResponsibleEmployeeID = in.ResponsibleEmployeeID
	order.BottleSizeMl = in.BottleSizeMl
	order.UnitsRequested = in.UnitsRequested
	order.BranchID = strings.TrimSpace(in.BranchID)
	order.ManufacturingDate = in.ManufacturingDate
	order.ExpiryDate = in.ExpiryDate
	order.DueAt = in.DueAt
	order.ProcessLoss = in.ProcessLoss
	order.MacerationDays = in.MacerationDays
	order.Chilling = in.Chilling
	order.Filtration = in.Filtration
	order.QC = in.QC

	order.Formula = make([]entity.FormulaLine, 0, len(in.Formula))
	for _, l := range in.Formula {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if l.Kind == "" {
			l.Kind = mfg.ClassifyIngredient(l.MaterialName)
		}
		order.Formula = append(order.Formula, l)
	}
	order.PackagingItems = append(make([]entity.PackagingItem, 0, len(in.PackagingItems)), in.PackagingItems...)
	order.Distribution = make([]entity.DistributionLine, 0, len(in.Distribution))
	for _, d := range in.Distribution {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		order.Distribution = append(order.Distribution, d)
	}

	order.Costs.Labor = in.Costs.Labor
	order.Costs.Overhead = in.Costs.Overhead
	order.Costs.Other = in.Costs.Other
	order.Yield.ActualMl = in.ActualMl
	order.Yield.ActualUnits = in.ActualUnits
	return nil
}

func toOrderResponse(o *entity.ManufacturingOrder) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:                    o.ID,
		CompanyID:             o.CompanyID,
		BatchCode:             o.BatchCode,
		ProductName:           o.ProductName,
		ManufacturingType:     o.ManufacturingType,
		Concentration:         o.Concentration,
		ResponsibleEmployeeID: o.ResponsibleEmployeeID,
		BottleSizeMl:          o.BottleSizeMl,
		UnitsRequested:        o.UnitsRequested,
		BranchID:              o.BranchID,
		ManufacturingDate:     o.ManufacturingDate,
		ExpiryDate:            o.ExpiryDate,
		DueAt:                 o.DueAt,
		Formula:               o.Formula,
		ProcessLoss:           o.ProcessLoss,
		MacerationDays:        o.MacerationDays,
		Chilling:              o.Chilling,
		Filtration:            o.Filtration,
		QC:                    o.QC,
		PackagingItems:        o.PackagingItems,
		Distribution:          o.Distribution,
		Costs:                 o.Costs,
		Yield:                 o.Yield,
		Status:                o.Status,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

func toValidationResponse(errs mfg.ErrorMap) dto.ValidationResponse {
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return dto.ValidationResponse{Valid: errs.Valid(), Errors: out}
}

func toScaledResponse(scaled []mfg.ScaledLine) []dto.ScaledLineResponse {
	out := make([]dto.ScaledLineResponse, 0, len(scaled))
	for _, l := range scaled {
		out = append(out, dto.ScaledLineResponse{
			MaterialID:   l.MaterialID,
			MaterialName: l.MaterialName,
			Kind:         l.Kind,
			Percentage:   l.Percentage,
			Density:      l.Density,
			RequiredMl:   l.RequiredMl,
			RequiredG:    l.RequiredG,
		})
	}
	return out
}
