package mapping

import (
	"log/slog"
	"net/http"
)

// Option configures a Registry, Transport or Client. Options that do not
// apply to the value being built are ignored.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	registry       *Registry
	base           http.RoundTripper
	prepareHeaders *bool
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry sets the registry whose global table a Transport or Client
// falls back to. Defaults to DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithTransport sets the real transport used by Passthrough mappings.
// Defaults to DefaultBaseTransport().
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// WithPrepareHeaders sets the initial header-preparation toggle of a
// Registry.
func WithPrepareHeaders(enabled bool) Option {
	return func(o *options) { o.prepareHeaders = &enabled }
}
