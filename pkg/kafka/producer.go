package kafka

import (
	"crypto/tls"
	"fmt"
	"os"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/nais/exchangerator/pkg/config"
	"github.com/nais/exchangerator/pkg/event"
)

type Producer interface {
	Produce(msg Message) (int64, error)
	ProduceEvent(event.Event) (int64, error)

	Close() error
}

type producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg config.Config, tlsConfig *tls.Config, logger *log.Logger) (Producer, error) {
	producerCfg := sarama.NewConfig()
	producerCfg.Net.TLS.Enable = cfg.Kafka.TLS.Enabled
	producerCfg.Net.TLS.Config = tlsConfig
	producerCfg.Producer.RequiredAcks = sarama.WaitForAll
	producerCfg.Producer.Return.Errors = true
	producerCfg.Producer.Return.Successes = true
	producerCfg.ClientID, _ = os.Hostname()
	sarama.Logger = logger

	syncProducer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, producerCfg)
	if err != nil {
		return nil, err
	}

	return &producer{
		producer: syncProducer,
		topic:    cfg.Kafka.Topic,
	}, nil
}

func (p *producer) Produce(msg Message) (offset int64, err error) {
	producerMessage := &sarama.ProducerMessage{
		Topic:     p.topic,
		Value:     sarama.ByteEncoder(msg),
		Timestamp: time.Now(),
	}
	_, offset, err = p.producer.SendMessage(producerMessage)
	return
}

func (p *producer) ProduceEvent(e event.Event) (int64, error) {
	message, err := e.Marshal()
	if err != nil {
		return -1, fmt.Errorf("marshalling event: %w", err)
	}

	return p.Produce(message)
}

func (p *producer) Close() error {
	return p.producer.Close()
}
