package manufacturing

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Perfumeria-api/internal/application/dto"
	"github.com/jhoicas/Perfumeria-api/internal/domain"
	"github.com/jhoicas/Perfumeria-api/internal/domain/entity"
	mfg "github.com/jhoicas/Perfumeria-api/internal/domain/manufacturing"
	"github.com/jhoicas/Perfumeria-api/internal/domain/repository"
	"github.com/jhoicas/Perfumeria-api/pkg/logger"
)

// Reintentos ante colisión del ID diario (dos altas simultáneas leen el mismo último ID).
const maxCreateAttempts = 3

// OrderUseCase casos de uso CRUD para órdenes de fabricación.
// El estado no se modifica aquí: solo LifecycleUseCase lo avanza.
type OrderUseCase struct {
	repo        repository.ManufacturingOrderRepository
	productRepo repository.ProductRepository
	settings    Settings
	log         *logger.Logger
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	repo repository.ManufacturingOrderRepository,
	productRepo repository.ProductRepository,
	settings Settings,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{repo: repo, productRepo: productRepo, settings: settings, log: log, now: time.Now}
}

// Create crea una orden en DRAFT con ID MO-YYYYMMDD-NNN y código de lote.
func (uc *OrderUseCase) Create(companyID string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	now := uc.now()
	order := mfg.NewDraftOrder(companyID)
	if err := applyRequest(&order, in); err != nil {
		return nil, err
	}
	order.BatchCode = mfg.BatchCode(now)
	order.CreatedAt = now
	order.UpdatedAt = now
	if err := refreshDerived(uc.productRepo, &order, uc.settings); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		last, err := uc.repo.LastIDWithPrefix(mfg.OrderIDPrefix(now))
		if err != nil {
			return nil, err
		}
		order.ID = mfg.NextOrderID(now, last)
		err = uc.repo.Create(&order)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == maxCreateAttempts {
			return nil, err
		}
		uc.log.Warn().Str("order_id", order.ID).Int("attempt", attempt).Msg("ID de orden duplicado, reintentando")
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("company_id", companyID).
		Str("batch_code", order.BatchCode).
		Msg("orden de fabricación creada")
	return toOrderResponse(&order), nil
}

// GetByID obtiene una orden de la empresa.
func (uc *OrderUseCase) GetByID(companyID, id string) (*dto.OrderResponse, error) {
	order, err := loadOrder(uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List lista órdenes por empresa con paginación; status vacío = todos los estados.
func (uc *OrderUseCase) List(companyID string, filter repository.OrderFilter, limit, offset int) (*dto.OrderListResponse, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, filter.Status)
	}
	list, err := uc.repo.ListByCompany(companyID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.NewPageResponse(limit, offset, len(items)),
	}, nil
}

// Update reemplaza los campos editables y recalcula rendimiento y costos.
// Una orden CLOSED es de solo lectura.
func (uc *OrderUseCase) Update(companyID, id string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	order, err := loadOrder(uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusClosed {
		return nil, fmt.Errorf("%w: la orden %s está cerrada", domain.ErrConflict, id)
	}
	if err := applyRequest(order, in); err != nil {
		return nil, err
	}
	order.UpdatedAt = uc.now()
	if err := refreshDerived(uc.productRepo, order, uc.settings); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete elimina una orden; solo se permite en DRAFT.
func (uc *OrderUseCase) Delete(companyID, id string) error {
	order, err := loadOrder(uc.repo, companyID, id)
	if err != nil {
		return err
	}
	if order.Status != entity.OrderStatusDraft {
		return fmt.Errorf("%w: solo se eliminan órdenes en DRAFT (actual: %s)", domain.ErrConflict, order.Status)
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("order_id", id).Msg("orden de fabricación eliminada")
	return nil
}

// Validate ejecuta el validador sobre la orden guardada.
func (uc *OrderUseCase) Validate(companyID, id string) (*dto.ValidationResponse, error) {
	order, err := loadOrder(uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	res := toValidationResponse(mfg.Validate(order))
	return &res, nil
}
