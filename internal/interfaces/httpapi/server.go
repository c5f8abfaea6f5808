package httpapi

import (
	"net/http"

	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName        string
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	// ExposeErrors sends internal error detail to clients. Off in prod.
	ExposeErrors bool
}

func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "teamhub"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)

	var chain http.Handler = recoverPanic(logger, mux)
	chain = LimitBody(cfg.MaxBodyBytes, chain)
	chain = ExposeErrors(cfg.ExposeErrors, chain)
	chain = CORS(cfg.CORSAllowedOrigins, chain)
	chain = RequestLogging(logger, chain)
	chain = RequestID(chain)
	return RequestTracing(cfg.ServiceName, chain)
}
