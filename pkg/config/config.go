package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-viper/mapstructure/v2"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Azure       AzureConfig       `json:"azure"`
	Application ApplicationConfig `json:"application"`
	Exchange    ExchangeConfig    `json:"exchange"`
	Kafka       KafkaConfig       `json:"kafka"`
	Output      OutputConfig      `json:"output"`
	Debug       bool              `json:"debug"`
}

type AzureConfig struct {
	Auth                      AzureAuth       `json:"auth"`
	Tenant                    AzureTenant     `json:"tenant"`
	Retry                     AzureRetry      `json:"retry"`
	Pagination                AzurePagination `json:"pagination"`
	DelayBetweenModifications time.Duration   `json:"delay-between-modifications"`
}

type AzureAuth struct {
	Flow         string          `json:"flow"`
	ClientId     string          `json:"client-id"`
	ClientSecret string          `json:"client-secret"`
	Google       AzureAuthGoogle `json:"google"`
}

type AzureAuthGoogle struct {
	ProjectId string `json:"project-id"`
}

type AzureTenant struct {
	Id string `json:"id"`
}

type AzureRetry struct {
	MaxDuration time.Duration `json:"max-duration"`
}

type AzurePagination struct {
	MaxPages int `json:"max-pages"`
}

type ApplicationConfig struct {
	DisplayName   string `json:"display-name"`
	IdentifierUri string `json:"identifier-uri"`
	Certificate   bool   `json:"certificate"`
}

type ExchangeConfig struct {
	ResourceAppId        string `json:"resource-app-id"`
	ServicePrincipalName string `json:"service-principal-name"`
	DelegatedScope       string `json:"delegated-scope"`
	AppRole              string `json:"app-role"`
}

type KafkaConfig struct {
	Enabled bool     `json:"enabled"`
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
	TLS     KafkaTLS `json:"tls"`
}

type KafkaTLS struct {
	Enabled bool `json:"enabled"`
}

type OutputConfig struct {
	Clipboard bool `json:"clipboard"`
}

// Authentication flows for acquiring Microsoft Graph tokens.
const (
	FlowDeviceCode        = "devicecode"
	FlowClientCredentials = "clientcredentials"
	FlowAzureCli          = "azurecli"
	FlowGoogle            = "google"
)

const (
	// DefaultAuthClientId is the well-known client ID for the first-party
	// 'Microsoft Graph Command Line Tools' application, which allows the device code
	// flow without registering a client of our own first.
	DefaultAuthClientId = "14d82eec-204b-4c2f-b7e8-296a70dab67e"

	// DefaultExchangeResourceAppId is the well-known application ID for the
	// 'Office 365 Exchange Online' resource. It is identical across all tenants.
	DefaultExchangeResourceAppId        = "00000002-0000-0ff1-ce00-000000000000"
	DefaultExchangeServicePrincipalName = "Office 365 Exchange Online"
	DefaultExchangeDelegatedScope       = "EWS.AccessAsUser.All"
	DefaultExchangeAppRole              = "full_access_as_app"
)

// Configuration options
const (
	AzureAuthFlow                  = "azure.auth.flow"
	AzureAuthClientId              = "azure.auth.client-id"
	AzureAuthClientSecret          = "azure.auth.client-secret"
	AzureAuthGoogleProjectId       = "azure.auth.google.project-id"
	AzureTenantId                  = "azure.tenant.id"
	AzureRetryMaxDuration          = "azure.retry.max-duration"
	AzureDelayBetweenModifications = "azure.delay-between-modifications"
	AzurePaginationMaxPages        = "azure.pagination.max-pages"
	ApplicationDisplayName         = "application.display-name"
	ApplicationIdentifierUri       = "application.identifier-uri"
	ApplicationCertificate         = "application.certificate"
	ExchangeResourceAppId          = "exchange.resource-app-id"
	ExchangeServicePrincipalName   = "exchange.service-principal-name"
	ExchangeDelegatedScope         = "exchange.delegated-scope"
	ExchangeAppRole                = "exchange.app-role"
	OutputClipboard                = "output.clipboard"
	KafkaEnabled                   = "kafka.enabled"
	KafkaBrokers                   = "kafka.brokers"
	KafkaTopic                     = "kafka.topic"
	KafkaTLSEnabled                = "kafka.tls.enabled"
	DebugEnabled                   = "debug"
)

func init() {
	// Automatically read configuration options from environment variables.
	// e.g. --azure.tenant.id will be configurable using EXCHANGERATOR_AZURE_TENANT_ID.
	viper.SetEnvPrefix("EXCHANGERATOR")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Read configuration file from working directory and/or /etc.
	// File formats supported include JSON, TOML, YAML, HCL, envfile and Java properties config files
	viper.SetConfigName("exchangerator")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/exchangerator")

	flag.String(AzureAuthFlow, FlowDeviceCode, "Authentication flow for Microsoft Graph. One of 'devicecode', 'clientcredentials', 'azurecli' or 'google'.")
	flag.String(AzureAuthClientId, DefaultAuthClientId, "Client ID for the application used to authenticate against Microsoft Graph.")
	flag.String(AzureAuthClientSecret, "", "Client secret for the authenticating application. Required for the 'clientcredentials' flow.")
	flag.String(AzureAuthGoogleProjectId, "", "Google project ID containing the service account used for federated credentials. Required for the 'google' flow.")

	flag.String(AzureTenantId, "", "ID or primary domain of the Azure AD tenant to provision in.")

	flag.Duration(AzureRetryMaxDuration, 30*time.Second, "Maximum total duration for retries of read operations against Microsoft Graph. 0 disables retries.")
	flag.Duration(AzureDelayBetweenModifications, 3*time.Second, "Delay between successive modifications of the same Graph resource.")
	flag.Int(AzurePaginationMaxPages, 1000, "Maximum number of pages to fetch for any list operation against Microsoft Graph.")

	flag.String(ApplicationDisplayName, "MigrationWiz", "Display name for the provisioned application.")
	flag.String(ApplicationIdentifierUri, "", "Application ID URI for the provisioned application. Defaults to api://<client-id>.")
	flag.Bool(ApplicationCertificate, false, "Additionally issue a certificate key credential for the provisioned application.")

	flag.String(ExchangeResourceAppId, DefaultExchangeResourceAppId, "Application ID of the resource to grant access to.")
	flag.String(ExchangeServicePrincipalName, DefaultExchangeServicePrincipalName, "Display name of the resource service principal exposing the app role.")
	flag.String(ExchangeDelegatedScope, DefaultExchangeDelegatedScope, "Value of the delegated permission scope to grant.")
	flag.String(ExchangeAppRole, DefaultExchangeAppRole, "Value of the application permission role to assign.")

	flag.Bool(OutputClipboard, true, "Copy the client secret to the clipboard if a clipboard helper is found on PATH.")

	flag.Bool(KafkaEnabled, false, "Publish an event to Kafka after provisioning.")
	flag.StringSlice(KafkaBrokers, []string{"localhost:9092"}, "Comma-separated list of Kafka brokers.")
	flag.String(KafkaTopic, "exchangerator-events", "Kafka topic to publish events to.")
	flag.Bool(KafkaTLSEnabled, false, "Use TLS for connecting to Kafka.")

	flag.Bool(DebugEnabled, false, "Debug mode toggle")
}

// Print out all configuration options except secret stuff.
func (c Config) Print(redacted []string) {
	ok := func(key string) bool {
		for _, forbiddenKey := range redacted {
			if forbiddenKey == key {
				return false
			}
		}
		return true
	}

	var keys sort.StringSlice = viper.AllKeys()

	keys.Sort()
	for _, key := range keys {
		if ok(key) {
			log.Printf("%s: %s", key, viper.GetString(key))
		} else {
			log.Printf("%s: ***REDACTED***", key)
		}
	}
}

// Required returns the configuration keys that must be set for the configured
// authentication flow.
func (c Config) Required() []string {
	required := []string{
		AzureAuthClientId,
		AzureTenantId,
		ApplicationDisplayName,
		ExchangeResourceAppId,
		ExchangeServicePrincipalName,
		ExchangeDelegatedScope,
		ExchangeAppRole,
	}

	switch c.Azure.Auth.Flow {
	case FlowClientCredentials:
		required = append(required, AzureAuthClientSecret)
	case FlowGoogle:
		required = append(required, AzureAuthGoogleProjectId)
	}

	return required
}

func (c Config) Validate(required []string) error {
	present := func(key string) bool {
		for _, requiredKey := range required {
			if requiredKey == key {
				return len(viper.GetString(requiredKey)) > 0
			}
		}
		return true
	}
	var keys sort.StringSlice = viper.AllKeys()
	errs := make([]string, 0)

	keys.Sort()
	for _, key := range keys {
		if !present(key) {
			errs = append(errs, fmt.Sprintf("required key '%s' not configured", key))
		}
	}

	switch c.Azure.Auth.Flow {
	case FlowDeviceCode, FlowClientCredentials, FlowAzureCli, FlowGoogle:
	default:
		errs = append(errs, fmt.Sprintf("key '%s' must be one of '%s', '%s', '%s' or '%s'", AzureAuthFlow, FlowDeviceCode, FlowClientCredentials, FlowAzureCli, FlowGoogle))
	}

	if len(c.Azure.Auth.ClientId) > 0 && !govalidator.IsUUID(c.Azure.Auth.ClientId) {
		errs = append(errs, fmt.Sprintf("key '%s' must be a valid UUID", AzureAuthClientId))
	}

	if len(c.Exchange.ResourceAppId) > 0 && !govalidator.IsUUID(c.Exchange.ResourceAppId) {
		errs = append(errs, fmt.Sprintf("key '%s' must be a valid UUID", ExchangeResourceAppId))
	}

	for _, err := range errs {
		log.Error(err)
	}
	if len(errs) > 0 {
		return errors.New("invalid configuration values")
	}
	return nil
}

func decoderHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "json"
	dc.ErrorUnused = true
}

func New() (*Config, error) {
	var err error
	var cfg Config

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	flag.Parse()

	err = viper.BindPFlags(flag.CommandLine)
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&cfg, decoderHook)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultConfig mirrors the flag defaults for use in tests.
func DefaultConfig() *Config {
	return &Config{
		Azure: AzureConfig{
			Auth: AzureAuth{
				Flow:     FlowDeviceCode,
				ClientId: DefaultAuthClientId,
			},
			Retry: AzureRetry{
				MaxDuration: 30 * time.Second,
			},
			Pagination: AzurePagination{
				MaxPages: 1000,
			},
			DelayBetweenModifications: 3 * time.Second,
		},
		Application: ApplicationConfig{
			DisplayName: "MigrationWiz",
		},
		Exchange: ExchangeConfig{
			ResourceAppId:        DefaultExchangeResourceAppId,
			ServicePrincipalName: DefaultExchangeServicePrincipalName,
			DelegatedScope:       DefaultExchangeDelegatedScope,
			AppRole:              DefaultExchangeAppRole,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "exchangerator-events",
		},
		Output: OutputConfig{
			Clipboard: true,
		},
	}
}
