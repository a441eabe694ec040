package flossdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "memory", "valkey" or "redis"
	addrs    []string
	password string

	palettePath string
	keyPrefix   string

	workers       int
	queueSize     int
	maxCandidates uint64
	timeout       time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey stores collections in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores collections in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithMemory keeps collections in process memory (the default).
// They are lost when the client is closed.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMemory
		c.addrs = nil
		c.password = ""
	})
}

// WithPaletteFile loads the palette from a data file instead of the bundled DMC
// palette. Files ending in .json hold an array of {name, description, color};
// anything else is read as repeating name/description/hex lines.
func WithPaletteFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.palettePath = path
	})
}

// WithKeyPrefix namespaces collection keys in Valkey/Redis. Default: "flossdex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithWorkers sets how many searches run concurrently. Default: 2.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithQueueSize sets how many searches may wait for a worker. Default: 64.
func WithQueueSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.queueSize = n
	})
}

// WithMaxCandidates rejects searches that would score more than n blends.
// Default: 2,000,000. Zero disables the ceiling.
func WithMaxCandidates(n uint64) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxCandidates = n
	})
}

// WithTimeout bounds every search. Zero (default) leaves the deadline to the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
