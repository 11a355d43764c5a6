package service

import (
	"context"

	"fulfillment-ledger/internal/core/domain"

	"github.com/rs/zerolog"
)

// LogAlerter escalates arrivals as structured warnings.
type LogAlerter struct {
	log zerolog.Logger
}

func NewLogAlerter(log zerolog.Logger) *LogAlerter {
	return &LogAlerter{log: log}
}

func (a *LogAlerter) Alert(_ context.Context, actor domain.Actor, orders []domain.Order) error {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.String())
	}
	a.log.Warn().
		Str("actor", actor.String()).
		Int("pending", len(orders)).
		Strs("order_ids", ids).
		Msg("new orders awaiting action")
	return nil
}
