package audit

import (
	"go.uber.org/zap"

	"github.com/BarberProDZ/salon-scheduler/internal/logger"
)

type Event struct {
	ShopID   uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink est la destination des événements ; *Logger écrit en base
type Sink interface {
	Log(shopID uint, userID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	logger Sink
	queue  chan Event
}

func NewDispatcher(l Sink) *Dispatcher {
	d := &Dispatcher{
		logger: l,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.ShopID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			logger.L().Warn("audit write failed", zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// file pleine : on abandonne l'audit, jamais la requête
		logger.L().Warn("audit queue full, dropping event",
			zap.String("action", ev.Action))
	}
}
