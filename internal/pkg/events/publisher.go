package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"gomarket/internal/pkg/logger"
)

// Tipos de evento publicados pelo GoMarket.
const (
	EventFavoritesUpdated = "favorites.updated"
	EventOrderPlaced      = "order.placed"
)

var (
	// ErrBufferFull é retornado quando a fila interna do publisher está cheia.
	ErrBufferFull = errors.New("fila de eventos cheia")
	// ErrPublisherClosed é retornado depois que a goroutine de escrita terminou.
	ErrPublisherClosed = errors.New("publisher de eventos encerrado")
)

// Envelope é o formato (v1) de todos os eventos.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	SessionID    string          `json:"session_id"`
	Payload      json.RawMessage `json:"payload"`
}

// NewEnvelope serializa o payload e monta o envelope.
func NewEnvelope(eventType, sessionID string, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("serializar payload de %s: %w", eventType, err)
	}
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		SessionID:    sessionID,
		Payload:      raw,
	}, nil
}

// Publisher publica envelopes num tópico. A chave de partição é o ID da sessão.
type Publisher interface {
	Publish(ctx context.Context, topic string, env Envelope) error
}

// NopPublisher descarta os eventos. Usado quando o Kafka não está configurado.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Envelope) error { return nil }

// KafkaPublisher enfileira mensagens numa fila em memória e uma goroutine as escreve no Kafka.
// Publish nunca bloqueia: com a fila cheia retorna ErrBufferFull.
type KafkaPublisher struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	logger  logger.Logger
}

// NewKafkaPublisher cria o publisher. O tópico vem em cada mensagem.
func NewKafkaPublisher(brokers []string, buf int, log logger.Logger) *KafkaPublisher {
	if buf <= 0 {
		buf = 1
	}
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		logger:  log,
	}
}

// Start inicia a goroutine de escrita. Ao cancelar ctx, drena a fila e fecha o writer.
func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *KafkaPublisher) drain() {
	for {
		select {
		case m := <-p.inbox:
			p.write(m)
		default:
			if err := p.w.Close(); err != nil {
				p.logger.Error("Falha ao fechar writer do Kafka.", err)
			}
			return
		}
	}
}

func (p *KafkaPublisher) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.logger.Error(fmt.Sprintf("Falha ao publicar evento no tópico %s.", m.Topic), err)
	}
}

// Publish enfileira o envelope para o tópico.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, env Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("serializar envelope: %w", err)
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(env.SessionID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(env.EventType)},
			{Key: "x-event-version", Value: []byte(fmt.Sprint(env.EventVersion))},
		},
	}
	select {
	case <-p.closeCh:
		return ErrPublisherClosed
	default:
	}

	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// WaitClosed espera a goroutine de escrita terminar.
func (p *KafkaPublisher) WaitClosed() { <-p.closeCh }
