package service

import (
	"context"
	"encoding/json"

	"clinivoice-be/internal/dto"
	"clinivoice-be/internal/pkg/logger"
	"clinivoice-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IBroadcastService interface {
	Consume(ctx context.Context) error
}

// broadcastService bridges the in-process event bus and the websocket hub:
// every appended message is pushed to the clients watching that session.
type broadcastService struct {
	pubSub *gochannel.GoChannel
	hub    *websocket.Hub
	logger logger.ILogger
}

func NewBroadcastService(pubSub *gochannel.GoChannel, hub *websocket.Hub, log logger.ILogger) IBroadcastService {
	return &broadcastService{
		pubSub: pubSub,
		hub:    hub,
		logger: log,
	}
}

func (bs *broadcastService) Consume(ctx context.Context) error {
	messages, err := bs.pubSub.Subscribe(ctx, TopicMessageAppended)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			bs.processMessage(msg)
		}
	}()

	return nil
}

func (bs *broadcastService) processMessage(msg *message.Message) {
	var payload dto.PublishTranscriptMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		bs.logger.Error("BroadcastService", "Failed to unmarshal transcript event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	bs.hub.BroadcastMessage(payload.SessionId, payload.Message)
	msg.Ack()
}
