package queue

import (
	"context"
	"time"

	"github.com/octabyte/hostel-gommon/enums"
	"github.com/octabyte/hostel-gommon/models"
	"github.com/octabyte/hostel-gommon/utils"
	"github.com/octabyte/hostel-gommon/utils/logger"
	"go.uber.org/zap"
)

// SessionEvent is the message published for every session transition.
type SessionEvent struct {
	Event  enums.SessionEvent `json:"event"`
	Email  string             `json:"email,omitempty"`
	UserID string             `json:"user_id,omitempty"`
	Role   enums.Role         `json:"role,omitempty"`
	At     time.Time          `json:"at"`
}

// SessionEventPublisher forwards session transitions to the broker. It is
// registered on a session.Manager as an observer.
type SessionEventPublisher struct {
	publisher  Publisher
	routingKey string
	now        func() time.Time
}

func NewSessionEventPublisher(p Publisher, routingKey string) *SessionEventPublisher {
	if routingKey == "" {
		routingKey = DefaultRoutingKey
	}
	return &SessionEventPublisher{publisher: p, routingKey: routingKey, now: time.Now}
}

// SessionChanged publishes the event. Failures are only logged.
func (p *SessionEventPublisher) SessionChanged(ctx context.Context, event enums.SessionEvent, s models.Session) {
	msg := SessionEvent{
		Event:  event,
		Email:  s.User.Email(),
		UserID: s.User.ID(),
		Role:   s.User.Role(),
		At:     p.now().UTC(),
	}

	body, err := utils.StructToBytes(msg)
	if err != nil {
		logger.LogError("failed to encode session event", zap.Error(err))
		return
	}

	key := p.routingKey + "." + string(event)
	if err := p.publisher.Publish(ctx, key, body); err != nil {
		logger.LogError("failed to publish session event",
			zap.String("routing_key", key),
			zap.Error(err),
		)
	}
}
