// Package email provides email queueing and sending functionality.
package email

import (
	"context"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

const limitReachedSubject = "You have reached your monthly spending limit"

// Notifier implements the adapter.LimitNotifier interface by enqueueing
// alert jobs to the email queue. Actual delivery happens asynchronously in
// the Worker, so a slow or unavailable provider never stalls a ledger write.
type Notifier struct {
	queue adapter.EmailQueueRepository
}

// NewNotifier creates a new queue-backed limit notifier.
func NewNotifier(queue adapter.EmailQueueRepository) *Notifier {
	return &Notifier{
		queue: queue,
	}
}

// SendLimitReachedEmail queues a limit reached alert for the user.
func (n *Notifier) SendLimitReachedEmail(ctx context.Context, name, email string) error {
	templateData := map[string]interface{}{
		"user_name": name,
	}

	job := entity.NewEmailJob(
		entity.TemplateLimitReached,
		email,
		name,
		limitReachedSubject,
		templateData,
	)

	if err := n.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue limit reached email",
			err,
		)
	}

	return nil
}

var _ adapter.LimitNotifier = (*Notifier)(nil)
