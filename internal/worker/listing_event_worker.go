package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"estatehub/internal/model"
	"estatehub/internal/repository"
)

// ListingEventWorker drains the listing event queue into MySQL so the
// request path never waits on activity bookkeeping.
type ListingEventWorker struct {
	conn      *amqp.Connection
	repo      *repository.ListingEventRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewListingEventWorker(conn *amqp.Connection, repo *repository.ListingEventRepository, queueName string) *ListingEventWorker {
	return &ListingEventWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *ListingEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event model.ListingEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode listing event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.Create(&event); err != nil {
					log.Printf("worker persist listing event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ListingEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
