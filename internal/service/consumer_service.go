// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"copygate-be/internal/dto"
	"copygate-be/internal/entity"
	"copygate-be/internal/repository/specification"
	"copygate-be/internal/repository/unitofwork"
	"copygate-be/pkg/events"
	"copygate-be/pkg/gate"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IEventPublisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher IEventPublisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishGateRunMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Persisting gate run %s (status: %s)", payload.RunId, payload.Result.GateStatus)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// Idempotency: redelivered messages must not duplicate audit rows.
	existing, err := uow.GateRunRepository().FindOne(ctx, specification.ByID{ID: payload.RunId})
	if err != nil {
		log.Printf("[ERROR] Failed to check gate run %s: %v", payload.RunId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if existing != nil {
		log.Printf("[WARN] Gate run %s already persisted, skipping", payload.RunId)
		msg.Ack()
		return
	}

	run := toGateRunEntity(&payload)

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.GateRunRepository().Create(ctx, run); err != nil {
		log.Printf("[ERROR] Failed to create gate run %s: %v", payload.RunId, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	cs.mirrorEvents(ctx, &payload)

	log.Printf("[SUCCESS] Gate run persisted: %s", payload.RunId)
	msg.Ack()
}

// mirrorEvents forwards the decision to the external bus. Mirror
// failures are logged only; the row is already committed.
func (cs *consumerService) mirrorEvents(ctx context.Context, payload *dto.PublishGateRunMessage) {
	if cs.eventPublisher == nil {
		return
	}

	var pass2Score *float64
	if payload.Result.Pass2.Active {
		pass2Score = payload.Result.Pass2.Score
	}
	pass1Score := 0.0
	if payload.Result.Pass1.Score != nil {
		pass1Score = *payload.Result.Pass1.Score
	}

	checked := events.NewGateCheckedEvent(
		payload.JobID, payload.PropertySlug, payload.Result.GateStatus,
		pass1Score, pass2Score, payload.Result.GateOpen,
	)
	if err := cs.eventPublisher.Publish(ctx, checked); err != nil {
		log.Printf("[WARN] Failed to mirror %s event: %v", checked.EventType(), err)
	}

	if payload.Result.OverrideApplied {
		overridden := events.NewGateOverriddenEvent(payload.JobID, payload.PropertySlug, payload.Result.OverrideNote)
		if err := cs.eventPublisher.Publish(ctx, overridden); err != nil {
			log.Printf("[WARN] Failed to mirror %s event: %v", overridden.EventType(), err)
		}
	}
}

func toGateRunEntity(payload *dto.PublishGateRunMessage) *entity.GateRun {
	run := &entity.GateRun{
		Id:           payload.RunId,
		JobID:        payload.JobID,
		PropertySlug: payload.PropertySlug,
		ProfileID:    payload.ProfileID,
		GateStatus:   payload.Result.GateStatus,
		GateOpen:     payload.Result.GateOpen,
		OverrideNote: payload.Result.OverrideNote,
		Result:       &payload.Result,
		CreatedAt:    time.Now(),
	}
	if payload.Result.Pass1.Score != nil {
		run.Pass1Score = *payload.Result.Pass1.Score
	}
	if payload.Result.GateStatus != gate.StatusError && payload.Result.Pass2.Active {
		run.Pass2Score = payload.Result.Pass2.Score
	}
	return run
}
