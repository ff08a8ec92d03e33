package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Command is the message published for the external mailer.
type Command struct {
	Target  string `json:"target"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSender publishes confirmations to a topic. The recipient is the
// message key so one recipient's mails stay ordered.
type KafkaSender struct {
	writer messageWriter
}

func NewKafkaSender(brokersCSV, topic string) *KafkaSender {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return &KafkaSender{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

func (s *KafkaSender) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(Command{Target: to, Subject: subject, Content: body})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(to),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

func (s *KafkaSender) Close() error {
	return s.writer.Close()
}
