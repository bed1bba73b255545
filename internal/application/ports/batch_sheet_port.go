package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
)

// BatchSheet datos de la hoja de lote impresa para planta.
type BatchSheet struct {
	Order       *entity.ManufacturingOrder
	Plan        *dto.PlanResponse
	BranchName  string
	GeneratedAt time.Time
}

// BatchSheetGenerator renderiza la hoja de lote (PDF).
type BatchSheetGenerator interface {
	GenerateBatchSheet(ctx context.Context, sheet BatchSheet) ([]byte, error)
}
