// Package broadcaster drains the trade outbox into Kafka. It is the
// only component that moves records past SENT, so settlement never
// blocks on the broker being up.
package broadcaster

import (
	"context"
	"log"
	"strconv"
	"time"

	"makerbook/infra/outbox"

	"github.com/IBM/sarama"
)

type Broadcaster struct {
	outbox   *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(
	ob *outbox.Outbox,
	brokers []string,
	topic string,
) (*Broadcaster, error) {

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		outbox:   ob,
		producer: producer,
		topic:    topic,
	}, nil
}

// ------------------------------------------------
// START LOOP
// ------------------------------------------------

func (b *Broadcaster) Start(ctx context.Context) {
	log.Println("[broadcaster] started")

	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case <-ticker.C:
				b.drainOnce()
				b.retrySent()
			}
		}
	}()
}

// ------------------------------------------------
// DRAIN LOGIC
// ------------------------------------------------

// drainOnce publishes every NEW trade record. Marking SENT before the
// publish means a crash produces at-least-once delivery, never loss.
func (b *Broadcaster) drainOnce() {
	_ = b.outbox.ScanByState(outbox.StateNew, func(seq uint64, rec outbox.Record) error {
		b.publish(seq, rec)
		return nil
	})
}

// retrySent re-publishes records stuck in SENT from a previous crash.
func (b *Broadcaster) retrySent() {
	_ = b.outbox.ScanByState(outbox.StateSent, func(seq uint64, rec outbox.Record) error {
		if time.Since(time.Unix(0, rec.LastAttempt)) < 5*time.Second {
			return nil
		}
		b.publish(seq, rec)
		return nil
	})
}

func (b *Broadcaster) publish(seq uint64, rec outbox.Record) {
	_ = b.outbox.UpdateState(seq, outbox.StateSent, rec.Retries+1)

	msg := &sarama.ProducerMessage{
		Topic: b.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(seq, 10)),
		Value: sarama.ByteEncoder(rec.Payload),
	}

	if _, _, err := b.producer.SendMessage(msg); err != nil {
		log.Printf("[broadcaster] publish seq=%d failed: %v", seq, err)
		return // stays SENT, retried later
	}

	_ = b.outbox.UpdateState(seq, outbox.StateAcked, rec.Retries+1)
}

// ------------------------------------------------
// SHUTDOWN
// ------------------------------------------------

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
