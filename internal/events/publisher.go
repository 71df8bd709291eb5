package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Routing keys published to the topic exchange. The realtime/chat service
// consumes these; this core never delivers messages itself.
const (
	KeyConversationCreated = "conversation.created"
	KeyPaymentConfirmed    = "payment.confirmed"
	KeyWithdrawalApproved  = "withdrawal.approved"
)

type ConversationCreated struct {
	ConversationID uint `json:"conversation_id"`
	Participant1   uint `json:"participant_1"`
	Participant2   uint `json:"participant_2"`
}

type PaymentConfirmed struct {
	TransactionID uint   `json:"transaction_id"`
	PayerID       uint   `json:"payer_id"`
	RecipientID   uint   `json:"recipient_id"`
	Amount        int64  `json:"amount"`
	ProviderRef   string `json:"provider_ref"`
}

type WithdrawalApproved struct {
	WithdrawalID uint  `json:"withdrawal_id"`
	UserID       uint  `json:"user_id"`
	Amount       int64 `json:"amount"`
}

// Publisher notifies collaborators about domain events. Publishing is
// best-effort: callers log failures but never roll back state over them.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *logrus.Logger
}

func NewAMQPPublisher(url, exchange string, log *logrus.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Timestamp:   time.Now(),
		Body:        body,
	})
}

func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NopPublisher drops events; used when AMQP is not configured and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
