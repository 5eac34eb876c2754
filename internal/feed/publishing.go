package feed

import (
	"context"

	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// PublishingEvents is a RoomEventRepository that announces every successful
// create and delete on a Broker. Publish failures are logged, not returned:
// the write already happened.
type PublishingEvents struct {
	repository.RoomEventRepository
	broker Broker
}

// NewPublishingEvents wraps repo.
func NewPublishingEvents(repo repository.RoomEventRepository, broker Broker) *PublishingEvents {
	return &PublishingEvents{RoomEventRepository: repo, broker: broker}
}

func (p *PublishingEvents) Create(ctx context.Context, event *domain.RoomEvent) error {
	if err := p.RoomEventRepository.Create(ctx, event); err != nil {
		return err
	}
	p.publish(ctx, Change{Kind: Created, RoomID: event.RoomID, Event: *event})
	return nil
}

func (p *PublishingEvents) Delete(ctx context.Context, id string) error {
	event, err := p.RoomEventRepository.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := p.RoomEventRepository.Delete(ctx, id); err != nil {
		return err
	}
	p.publish(ctx, Change{Kind: Deleted, RoomID: event.RoomID, Event: *event})
	return nil
}

func (p *PublishingEvents) DeleteByRoom(ctx context.Context, roomID string) ([]string, error) {
	ids, err := p.RoomEventRepository.DeleteByRoom(ctx, roomID)
	if err != nil {
		return ids, err
	}
	for _, id := range ids {
		p.publish(ctx, Change{Kind: Deleted, RoomID: roomID, Event: domain.RoomEvent{ID: id, RoomID: roomID}})
	}
	return ids, nil
}

func (p *PublishingEvents) publish(ctx context.Context, change Change) {
	if err := p.broker.Publish(ctx, change); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"component": "feed",
			"room_id":   change.RoomID,
			"event_id":  change.Event.ID,
		}).Error("Failed to publish feed change")
	}
}
