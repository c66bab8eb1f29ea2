package pub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const TransactionEventsChannel = "transaction_events"

// TransactionEventPublisher fans committed ledger events out over Redis
// pub/sub for dashboards and notification consumers. Publishing is best
// effort and always happens after commit.
type TransactionEventPublisher struct {
	rdb *redis.Client
}

func NewTransactionEventPublisher(rdb *redis.Client) *TransactionEventPublisher {
	return &TransactionEventPublisher{rdb: rdb}
}

type TransactionEvent struct {
	EventType       string    `json:"event_type"` // account.created, transaction.completed, transfer.completed
	AccountNumber   string    `json:"account_number"`
	RelatedAccount  string    `json:"related_account,omitempty"`
	TransactionType string    `json:"transaction_type"`
	Amount          string    `json:"amount"`
	BalanceAfter    string    `json:"balance_after"`
	ProcessedBy     string    `json:"processed_by"`
	Timestamp       time.Time `json:"timestamp"`
}

func (p *TransactionEventPublisher) Publish(ctx context.Context, event *TransactionEvent) error {
	event.Timestamp = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.rdb.Publish(ctx, TransactionEventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
