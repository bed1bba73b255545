package manufacturing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	mfg "github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
	"github.com/jhoicas/Perfumeria-api/pkg/logger"
)

// LifecycleUseCase avanza órdenes por su ciclo de vida de forma transaccional:
// bloquea la fila (SELECT FOR UPDATE), valida, aplica la transición y hace Commit o Rollback.
type LifecycleUseCase struct {
	txRunner TxRunner
	settings Settings
	log      *logger.Logger
	now      func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(txRunner TxRunner, settings Settings, log *logger.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{txRunner: txRunner, settings: settings, log: log, now: time.Now}
}

// Advance mueve la orden a su siguiente estado.
// Errores: domain.ErrNotFound, *mfg.TransitionError (ErrIllegalTransition / ErrValidation),
// domain.ErrInsufficientStock si EnforceStockOnStart está activo y falta stock al iniciar.
func (uc *LifecycleUseCase) Advance(ctx context.Context, companyID, orderID string) (*dto.TransitionResponse, error) {
	now := uc.now()
	var result *dto.TransitionResponse

	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.ManufacturingOrderRepository,
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryLevelRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}

		tr, err := mfg.Advance(*order, now)
		if err != nil {
			return err
		}

		if tr.From == entity.OrderStatusDraft && uc.settings.EnforceStockOnStart {
			if err := uc.checkStock(productRepo, inventoryRepo, &tr.Order); err != nil {
				return err
			}
		}

		next := tr.Order
		next.Yield = mfg.RecomputeYield(&next)
		next.UpdatedAt = now
		if err := orderRepo.Update(&next); err != nil {
			return err
		}
		result = &dto.TransitionResponse{
			From:                     tr.From,
			To:                       tr.To,
			StampedManufacturingDate: tr.StampedManufacturingDate,
			Order:                    *toOrderResponse(&next),
		}
		return nil
	})
	if err != nil {
		var te *mfg.TransitionError
		if errors.As(err, &te) {
			ev := uc.log.Warn().Str("order_id", orderID).Str("from", string(te.From)).Err(te.Reason)
			if len(te.Errors) > 0 {
				ev = ev.Strs("fields", te.Errors.Fields())
			}
			ev.Msg("avance de orden rechazado")
		}
		return nil, err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("from", string(result.From)).
		Str("to", string(result.To)).
		Msg("orden de fabricación avanzada")
	return result, nil
}

// checkStock rechaza el inicio de producción si algún material o empaque no alcanza en la sucursal.
func (uc *LifecycleUseCase) checkStock(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryLevelRepository,
	order *entity.ManufacturingOrder,
) error {
	products, inventory, err := loadPlanData(productRepo, inventoryRepo, order)
	if err != nil {
		return err
	}
	p := computePlan(order, products, inventory, uc.settings)

	var missing []string
	for _, r := range mfg.MaterialShortages(p.materials) {
		missing = append(missing, nonEmpty(r.MaterialName, r.MaterialID))
	}
	for _, r := range mfg.PackagingShortages(p.packaging) {
		missing = append(missing, nonEmpty(r.Name, r.ProductID))
	}
	if len(missing) == 0 {
		return nil
	}
	if !mfg.BranchAssigned(order.BranchID) {
		return fmt.Errorf("%w: la orden no tiene sucursal asignada", domain.ErrInsufficientStock)
	}
	return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, strings.Join(missing, ", "))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
