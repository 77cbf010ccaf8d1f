package wallet

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Default polling parameters.
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultWaitTimeout  = 10 * time.Second
)

// Option configures a Pipeline.
type Option func(*pipelineConfig)

type pipelineConfig struct {
	logger       *zap.Logger
	registerer   prometheus.Registerer
	pollInterval time.Duration
}

func defaultPipelineConfig() *pipelineConfig {
	return &pipelineConfig{
		logger:       zap.NewNop(),
		pollInterval: DefaultPollInterval,
	}
}

// WithLogger sets the pipeline's logger. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(c *pipelineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegisterer registers the pipeline's metrics on reg. Without it the
// metrics are collected but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *pipelineConfig) {
		c.registerer = reg
	}
}

// WithPollInterval sets the delay between result polls while a transaction
// is still pending.
func WithPollInterval(d time.Duration) Option {
	return func(c *pipelineConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// DialOption configures a Client.
type DialOption func(*clientConfig)

type clientConfig struct {
	logger      *zap.Logger
	httpClient  *http.Client
	token       string
	waitTimeout time.Duration
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		logger:      zap.NewNop(),
		waitTimeout: DefaultWaitTimeout,
	}
}

// WithAuthToken sends token as a bearer token with every request.
func WithAuthToken(token string) DialOption {
	return func(c *clientConfig) {
		c.token = token
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(h *http.Client) DialOption {
	return func(c *clientConfig) {
		c.httpClient = h
	}
}

// WithWaitTimeout sets how long the daemon holds a single wait request
// open before answering with a timed out result.
func WithWaitTimeout(d time.Duration) DialOption {
	return func(c *clientConfig) {
		c.waitTimeout = d
	}
}

// WithClientLogger sets the client's logger.
func WithClientLogger(l *zap.Logger) DialOption {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
