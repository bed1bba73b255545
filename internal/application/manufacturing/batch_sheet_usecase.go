package manufacturing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Perfumeria-api/internal/application/ports"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
)

// BatchSheetUseCase genera la hoja de lote (PDF) que acompaña la orden en planta.
type BatchSheetUseCase struct {
	planning   *PlanningUseCase
	branchRepo repository.BranchRepository
	generator  ports.BatchSheetGenerator
	now        func() time.Time
}

// NewBatchSheetUseCase construye el caso de uso.
func NewBatchSheetUseCase(
	planning *PlanningUseCase,
	branchRepo repository.BranchRepository,
	generator ports.BatchSheetGenerator,
) *BatchSheetUseCase {
	return &BatchSheetUseCase{planning: planning, branchRepo: branchRepo, generator: generator, now: time.Now}
}

// Generate devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *BatchSheetUseCase) Generate(ctx context.Context, companyID, orderID string) ([]byte, string, error) {
	order, err := loadOrder(uc.planning.orderRepo, companyID, orderID)
	if err != nil {
		return nil, "", err
	}
	plan, err := uc.planning.planFor(order)
	if err != nil {
		return nil, "", err
	}

	branchName := ""
	if order.BranchID != "" {
		branch, err := uc.branchRepo.GetByID(order.BranchID)
		if err != nil {
			return nil, "", err
		}
		if branch != nil && branch.CompanyID == companyID {
			branchName = branch.Name
		}
	}

	pdf, err := uc.generator.GenerateBatchSheet(ctx, ports.BatchSheet{
		Order:       order,
		Plan:        plan,
		BranchName:  branchName,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("hoja de lote: %w", err)
	}
	return pdf, fmt.Sprintf("%s_%s.pdf", order.ID, order.BatchCode), nil
}
