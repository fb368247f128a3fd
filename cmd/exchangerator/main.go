package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/nais/exchangerator/pkg/azure/client"
	"github.com/nais/exchangerator/pkg/config"
	"github.com/nais/exchangerator/pkg/kafka"
	"github.com/nais/exchangerator/pkg/logger"
	"github.com/nais/exchangerator/pkg/output"
	"github.com/nais/exchangerator/pkg/provisioner"
)

func main() {
	if err := run(); err != nil {
		log.Errorf("fatal: %+v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger.Setup(cfg.Debug)

	cfg.Print([]string{
		config.AzureAuthClientSecret,
	})

	if err := cfg.Validate(cfg.Required()); err != nil {
		return err
	}

	azureClient, err := client.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating azure client: %w", err)
	}
	defer azureClient.Close()

	sinks := []output.Sink{
		output.NewConsole(os.Stdout),
	}
	if cfg.Output.Clipboard {
		sinks = append(sinks, output.NewClipboard())
	}

	var producer kafka.Producer
	if cfg.Kafka.Enabled {
		var tlsConfig *tls.Config
		if cfg.Kafka.TLS.Enabled {
			tlsConfig = &tls.Config{}
		}

		producer, err = kafka.NewProducer(*cfg, tlsConfig, log.StandardLogger())
		if err != nil {
			return fmt.Errorf("creating kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warnf("closing kafka producer: %+v", err)
			}
		}()
	}

	if _, err := provisioner.New(azureClient, cfg, producer, sinks...).Provision(ctx); err != nil {
		return err
	}

	return nil
}
