package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/foodiecrew/catering-backend/pkg/db/models"
	"github.com/foodiecrew/catering-backend/pkg/enums"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service persists confirmed bookings.
type Service interface {
	SubmitBooking(ctx context.Context, input SubmitInput) (*Summary, error)
}

// Line is one cart entry at submission time. Quantity is the per-guest
// cart count; the stored order item quantity is Quantity * GuestCount.
type Line struct {
	MenuItemID uuid.UUID
	UnitPrice  int64
	Quantity   int
}

// SubmitInput carries everything needed to persist a confirmed booking.
type SubmitInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string

	EventName     string
	EventLocation string
	EventDate     time.Time
	GuestCount    int
	TotalAmount   int64
	Notes         *string

	Lines []Line
}

// Summary is returned once a booking has been written.
type Summary struct {
	OrderID     uuid.UUID
	CustomerID  uuid.UUID
	TotalAmount int64
	Status      enums.OrderStatus
	ItemCount   int
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an order persistence service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// SubmitBooking writes customer, order, and order items in a single
// transaction. A failure at any step leaves no partial rows behind.
func (s *service) SubmitBooking(ctx context.Context, input SubmitInput) (*Summary, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	var summary *Summary
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := repo.CreateCustomer(ctx, &models.Customer{
			ID:      uuid.New(),
			Name:    input.CustomerName,
			Email:   input.CustomerEmail,
			Phone:   input.CustomerPhone,
			Address: input.CustomerAddress,
		})
		if err != nil {
			return fmt.Errorf("creating customer: %w", err)
		}

		order, err := repo.CreateOrder(ctx, &models.Order{
			ID:            uuid.New(),
			CustomerID:    customer.ID,
			EventName:     input.EventName,
			EventLocation: input.EventLocation,
			EventDate:     input.EventDate,
			GuestCount:    input.GuestCount,
			TotalAmount:   input.TotalAmount,
			Status:        enums.OrderStatusPending,
			Notes:         input.Notes,
		})
		if err != nil {
			return fmt.Errorf("creating order: %w", err)
		}

		items := make([]models.OrderItem, 0, len(input.Lines))
		for _, line := range input.Lines {
			items = append(items, models.OrderItem{
				ID:         uuid.New(),
				OrderID:    order.ID,
				MenuItemID: line.MenuItemID,
				// plates to prepare, not cart count
				Quantity: line.Quantity * input.GuestCount,
				Price:    line.UnitPrice,
			})
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return fmt.Errorf("creating order items: %w", err)
		}

		summary = &Summary{
			OrderID:     order.ID,
			CustomerID:  customer.ID,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			ItemCount:   len(items),
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submitting booking")
	}
	return summary, nil
}

func validateSubmitInput(input SubmitInput) error {
	details := map[string]string{}
	if input.CustomerName == "" {
		details["name"] = "required"
	}
	if input.CustomerEmail == "" {
		details["email"] = "required"
	}
	if input.CustomerPhone == "" {
		details["phone"] = "required"
	}
	if input.CustomerAddress == "" {
		details["address"] = "required"
	}
	if input.EventDate.IsZero() {
		details["event_date"] = "required"
	}
	if input.GuestCount <= 0 {
		details["guest_count"] = "must be positive"
	}
	if len(input.Lines) == 0 {
		details["items"] = "at least one menu item required"
	}
	for _, line := range input.Lines {
		if line.MenuItemID == uuid.Nil || line.Quantity <= 0 {
			details["items"] = "each item needs an id and a positive quantity"
			break
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid booking submission").WithDetails(details)
	}
	return nil
}
