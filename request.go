package fetchx

// RequestOption configures a single call. Per-call options replace the
// client-level defaults for that call only.
type RequestOption interface {
	apply(*requestConfig)
}

// requestConfig holds everything known about one call.
type requestConfig struct {
	pathParams   map[string]any
	query        Params
	headerParams Headers
	headers      Headers
	body         any

	parseAs         *ParseAs
	redirect        RedirectMode
	querySerializer QuerySerializer
	bodySerializer  BodySerializer
	transport       Transport
}

// funcOption wraps a function to implement RequestOption
type funcOption struct {
	f func(*requestConfig)
}

func (fo *funcOption) apply(cfg *requestConfig) {
	fo.f(cfg)
}

// WithPathParams sets the values substituted into the {name} placeholders of
// the path template.
func WithPathParams(params map[string]any) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.pathParams = params
		},
	}
}

// WithQuery sets the query parameters.
func WithQuery(params Params) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.query = params
		},
	}
}

// WithQueryMap sets the query parameters from a map, in key order.
func WithQueryMap(params map[string]any) RequestOption {
	return WithQuery(ParamsFromMap(params))
}

// WithHeaderParams sets the header parameter group. It has the highest
// priority of all header sources.
func WithHeaderParams(headers Headers) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.headerParams = headers
		},
	}
}

// WithHeaders sets call-level headers. They override the client headers and
// are overridden by header params.
func WithHeaders(headers Headers) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.headers = headers
		},
	}
}

// WithBody sets the request body. It is passed to the body serializer.
func WithBody(body any) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.body = body
		},
	}
}

// WithParseAs selects how a successful response body is materialized.
func WithParseAs(p ParseAs) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.parseAs = &p
		},
	}
}

// WithRequestRedirect overrides the redirect mode for this call.
func WithRequestRedirect(mode RedirectMode) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.redirect = mode
		},
	}
}

// WithRequestQuerySerializer replaces the query serializer for this call.
func WithRequestQuerySerializer(s QuerySerializer) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.querySerializer = s
		},
	}
}

// WithRequestBodySerializer replaces the body serializer for this call.
func WithRequestBodySerializer(s BodySerializer) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.bodySerializer = s
		},
	}
}

// WithRequestTransport replaces the transport for this call. Client policies
// still wrap it.
func WithRequestTransport(t Transport) RequestOption {
	return &funcOption{
		f: func(cfg *requestConfig) {
			cfg.transport = t
		},
	}
}

// applyOptions applies all request options to the config.
func applyOptions(opts []RequestOption) *requestConfig {
	cfg := &requestConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(cfg)
		}
	}
	return cfg
}
