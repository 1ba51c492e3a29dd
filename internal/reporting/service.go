package reporting

import (
	"context"
	"encoding/json"
	"log"
	"time"

	kafkax "github.com/chadee/pos-backend/internal/kafka"
	"github.com/chadee/pos-backend/internal/orders"
	kafkago "github.com/segmentio/kafka-go"
)

// Service consumes order-created events and keeps the live daily sales
// counters current. The day an order counts toward is derived from its
// creation time in the shop's timezone, matching the daily report.
type Service struct {
	Counters Counters
	Location *time.Location
}

// HandleOrderCreated is installed as the consumer handler.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	seen, err := s.Counters.SeenEvent(ctx, env.EventID)
	if err != nil {
		// counting an order twice is worse than a delayed retry
		return err
	}
	if seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	day := p.CreatedAt.In(s.Location).Format("2006-01-02")
	if err := s.Counters.RecordOrder(ctx, day, p.Total, p.Items); err != nil {
		return err
	}
	log.Printf("recorded order %s: day=%s total=%s items=%d", p.OrderID, day, p.Total, len(p.Items))
	return nil
}
