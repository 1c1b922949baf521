package collect

import (
	"time"

	"github.com/dszqbsm/rankedfilms/proxy"
	"go.uber.org/zap"
)

type options struct {
	logger    *zap.Logger
	timeout   time.Duration // http超时时间，0表示不限制
	proxy     proxy.ProxyFunc
	userAgent string
}

var defaultOptions = options{
	logger:    zap.NewNop(),
	userAgent: DefaultUserAgent,
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(opts *options) {
		opts.timeout = timeout
	}
}

func WithProxy(p proxy.ProxyFunc) Option {
	return func(opts *options) {
		opts.proxy = p
	}
}

func WithUserAgent(ua string) Option {
	return func(opts *options) {
		opts.userAgent = ua
	}
}
