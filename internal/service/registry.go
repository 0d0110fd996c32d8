package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/api"
	"github.com/Somethings1/fintrack-sub000/internal/bus"
	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/notice"
)

// Typed per-collection service façades.
type (
	TransactionService  = Entities[model.Transaction, *model.Transaction]
	AccountService      = Entities[model.Account, *model.Account]
	SavingService       = Entities[model.Saving, *model.Saving]
	CategoryService     = Entities[model.Category, *model.Category]
	SubscriptionService = Entities[model.Subscription, *model.Subscription]
)

// NotificationService adds the mark-read batch operation on top of the
// generic façade.
type NotificationService struct {
	*Entities[model.Notification, *model.Notification]
}

// MarkRead marks the notifications read on the backend, then flips the cached
// records and publishes the notifications topic.
func (s *NotificationService) MarkRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	payload := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	err := s.client.Do(ctx, http.MethodPut, "/api/notifications/mark-read", payload, nil)
	if err != nil {
		s.notify.Error(notice.ForTransportError("marking notifications read", err))
		return err
	}
	now := time.Now().UTC()
	for _, id := range ids {
		n, err := s.repo.GetByID(ctx, id)
		if err != nil {
			s.log.Warnw("marked notification missing locally", "id", id, "error", err)
			continue
		}
		n.Read = true
		n.Touch(now)
		if err := s.repo.Put(ctx, n); err != nil {
			return err
		}
	}
	s.notify.Success(fmt.Sprintf("%d notification(s) marked as read", len(ids)))
	s.bus.Publish(bus.Topic(model.Notifications))
	return nil
}

// Registry holds one service per collection, constructed once at startup and
// shared process-wide.
type Registry struct {
	Transactions  *TransactionService
	Accounts      *AccountService
	Savings       *SavingService
	Categories    *CategoryService
	Subscriptions *SubscriptionService
	Notifications *NotificationService
}

func NewRegistry(
	client *api.Client,
	c *Collections,
	b *bus.RefreshBus,
	n notice.Notifier,
	log *zap.SugaredLogger,
) *Registry {
	return &Registry{
		Transactions:  newEntities(client, c.Transactions, model.Transactions, "transaction", b, n, log),
		Accounts:      newEntities(client, c.Accounts, model.Accounts, "account", b, n, log),
		Savings:       newEntities(client, c.Savings, model.Savings, "saving", b, n, log),
		Categories:    newEntities(client, c.Categories, model.Categories, "category", b, n, log),
		Subscriptions: newEntities(client, c.Subscriptions, model.Subscriptions, "subscription", b, n, log),
		Notifications: &NotificationService{
			Entities: newEntities(client, c.Notifications, model.Notifications, "notification", b, n, log),
		},
	}
}
