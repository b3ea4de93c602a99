package service

import (
	"context"
	"math"
	"strings"
	"time"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/events"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const publishTimeout = 2 * time.Second

type StockLedgerService interface {
	RecordStockChange(ctx context.Context, req *RecordStockChangeRequest, actorID *uuid.UUID) (*model.StockHistory, error)
	ListAll(ctx context.Context) ([]model.StockHistory, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]model.StockHistory, error)
}

type RecordStockChangeRequest struct {
	ProductID    string `json:"productId" validate:"required,uuid"`
	ChangeAmount *int   `json:"changeAmount" validate:"required,min=-1000000000,max=1000000000"`
	Reason       string `json:"reason" validate:"max=500"`
}

type stockLedgerService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	historyRepo repository.StockHistoryRepository
	publisher   events.Publisher
	log         *zap.Logger
}

func NewStockLedgerService(db *gorm.DB, pRepo repository.ProductRepository, hRepo repository.StockHistoryRepository, publisher events.Publisher, log *zap.Logger) StockLedgerService {
	return &stockLedgerService{
		db:          db,
		productRepo: pRepo,
		historyRepo: hRepo,
		publisher:   publisher,
		log:         log,
	}
}

func (s *stockLedgerService) RecordStockChange(ctx context.Context, req *RecordStockChangeRequest, actorID *uuid.UUID) (*model.StockHistory, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := validate(req); err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperror.Validation("productId must be a valid id",
			apperror.FieldError{Field: "productId", Message: "productId must be a valid id"})
	}

	var (
		entry   *model.StockHistory
		product *model.Product
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, product, err = applyStockChange(tx, s.productRepo, s.historyRepo, stockChange{
			productID: productID,
			amount:    *req.ChangeAmount,
			reason:    req.Reason,
			actorID:   actorID,
		})
		return err
	})
	if err != nil {
		if apperror.Is(err, apperror.KindInvalidOperation) {
			s.log.Info("stock change rejected",
				zap.String("product_id", productID.String()),
				zap.Int("change_amount", *req.ChangeAmount))
		}
		return nil, err
	}

	s.log.Info("stock change recorded",
		zap.String("entry_id", entry.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("change_amount", entry.ChangeAmount),
		zap.Int("quantity", entry.NewQuantity))

	publish(ctx, s.publisher, s.log, stockChangedEvent(entry, product))
	return entry, nil
}

func (s *stockLedgerService) ListAll(ctx context.Context) ([]model.StockHistory, error) {
	entries, err := s.historyRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return entries, nil
}

func (s *stockLedgerService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]model.StockHistory, error) {
	entries, err := s.historyRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return entries, nil
}

type stockChange struct {
	productID uuid.UUID
	amount    int
	reason    string
	actorID   *uuid.UUID
}

// applyStockChange moves a product's quantity and appends the matching ledger
// entry inside tx. Any error leaves nothing behind once tx rolls back.
func applyStockChange(tx *gorm.DB, products repository.ProductRepository, history repository.StockHistoryRepository, change stockChange) (*model.StockHistory, *model.Product, error) {
	product, err := products.FindForUpdate(tx, change.productID)
	if err != nil {
		return nil, nil, storeError(err, msgProductNotFound)
	}

	if change.amount > 0 && product.Quantity > math.MaxInt-change.amount {
		return nil, nil, apperror.InvalidOperation(msgStockTooLarge)
	}
	if product.Quantity+change.amount < 0 {
		return nil, nil, apperror.InvalidOperation(msgNegativeStock)
	}

	updatedBy := "system"
	if change.actorID != nil {
		updatedBy = change.actorID.String()
	}

	// The guard is re-evaluated by the store against the live row.
	applied, err := products.ApplyQuantityDelta(tx, product.ID, change.amount, updatedBy)
	if err != nil {
		return nil, nil, apperror.Unexpected(err)
	}
	if !applied {
		return nil, nil, apperror.InvalidOperation(msgNegativeStock)
	}

	current, err := products.FindForUpdate(tx, product.ID)
	if err != nil {
		return nil, nil, storeError(err, msgProductNotFound)
	}

	entry := &model.StockHistory{
		ProductID:        current.ID,
		ChangeAmount:     change.amount,
		PreviousQuantity: current.Quantity - change.amount,
		NewQuantity:      current.Quantity,
		Reason:           change.reason,
		UpdatedBy:        change.actorID,
		CreatedAt:        time.Now(),
	}
	if err := history.Create(tx, entry); err != nil {
		return nil, nil, apperror.Unexpected(err)
	}
	entry.Product = current.Summary()

	return entry, current, nil
}

func stockChangedEvent(entry *model.StockHistory, product *model.Product) events.Event {
	entryID := entry.ID
	return events.Event{
		Type:         events.StockChanged,
		ProductID:    product.ID,
		SKU:          product.SKU,
		Name:         product.Name,
		Quantity:     entry.NewQuantity,
		ChangeAmount: entry.ChangeAmount,
		Reason:       entry.Reason,
		EntryID:      &entryID,
		ActorID:      entry.UpdatedBy,
		OccurredAt:   entry.CreatedAt,
	}
}

func productEvent(t events.Type, product *model.Product, actorID *uuid.UUID) events.Event {
	return events.Event{
		Type:       t,
		ProductID:  product.ID,
		SKU:        product.SKU,
		Name:       product.Name,
		Quantity:   product.Quantity,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
}

// publish hands a committed change to subscribers. Delivery problems are
// logged and never reach the caller.
func publish(ctx context.Context, publisher events.Publisher, log *zap.Logger, evt events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := publisher.Publish(ctx, evt); err != nil {
		log.Warn("event publish failed",
			zap.String("type", string(evt.Type)),
			zap.String("product_id", evt.ProductID.String()),
			zap.Error(err))
	}
}
