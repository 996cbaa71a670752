package httpclient

import (
	"net/http"

	"github.com/illuscio-dev/httpentities-go/bundled"
	"github.com/illuscio-dev/httpentities-go/converter"
	"github.com/rs/zerolog"
)

// FactoryOption configures a Factory.
type FactoryOption func(factory *Factory)

// WithRequestFilter appends filter to the request filters of every client.
func WithRequestFilter(filter RequestFilter) FactoryOption {
	return func(factory *Factory) {
		if filter != nil {
			factory.requestFilters = append(factory.requestFilters, filter)
		}
	}
}

// WithResponseFilter appends filter to the response filters of every client.
func WithResponseFilter(filter ResponseFilter) FactoryOption {
	return func(factory *Factory) {
		if filter != nil {
			factory.responseFilters = append(factory.responseFilters, filter)
		}
	}
}

// WithLogger sets the logger of every client. The default discards output.
func WithLogger(logger zerolog.Logger) FactoryOption {
	return func(factory *Factory) {
		factory.logger = logger
	}
}

// WithHTTPClient sets the http.Client used to send requests. The configured timeout is
// not applied to it.
func WithHTTPClient(httpClient *http.Client) FactoryOption {
	return func(factory *Factory) {
		factory.httpClient = httpClient
	}
}

// Factory creates clients sharing one converter.Manager, one set of filters and one
// http.Client.
type Factory struct {
	config          Config
	manager         *converter.Manager
	requestFilters  []RequestFilter
	responseFilters []ResponseFilter
	logger          zerolog.Logger
	httpClient      *http.Client
}

// NewFactory validates config and returns a Factory. A nil manager is replaced with a
// manager holding the bundled default converters.
func NewFactory(
	config Config, manager *converter.Manager, opts ...FactoryOption,
) (*Factory, error) {
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	factory := &Factory{
		config:  config,
		manager: manager,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(factory)
	}

	if factory.manager == nil {
		factory.manager = bundled.NewManager(converter.WithLogger(factory.logger))
	}
	if factory.httpClient == nil {
		factory.httpClient = &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   config.Timeout,
		}
	}

	return factory, nil
}

// ConverterManager returns the manager shared by the factory's clients.
func (factory *Factory) ConverterManager() *converter.Manager {
	return factory.manager
}

// Config returns the validated configuration with defaults applied.
func (factory *Factory) Config() Config {
	return factory.config
}

// NewClient returns a Client using the factory's manager, filters and configuration.
func (factory *Factory) NewClient() *Client {
	headers := make(http.Header, len(factory.config.Headers))
	for key, value := range factory.config.Headers {
		headers.Set(key, value)
	}

	return &Client{
		config:          factory.config,
		defaultHeaders:  headers,
		manager:         factory.manager,
		requestFilters:  append([]RequestFilter{}, factory.requestFilters...),
		responseFilters: append([]ResponseFilter{}, factory.responseFilters...),
		logger:          factory.logger,
		httpClient:      factory.httpClient,
	}
}
