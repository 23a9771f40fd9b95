package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/config"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/metrics"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/token"
)

type Server struct {
	Service *hydra.Service
	Stores  store.Stores
	Config  func() *config.HydraConfig
	Log     *logrus.Entry
	Version string

	// Router serves every route. API is its authenticated, rate limited
	// subrouter.
	Router        *mux.Router
	API           *mux.Router
	JWTMiddleware *middleware.JWTAuthenticator
	srv           *http.Server
}

func NewServer(
	svc *hydra.Service,
	signer *token.Signer,
	cfg func() *config.HydraConfig,
	log *logrus.Entry,
	host string,
	port string,
) *Server {

	router := mux.NewRouter()
	jwtMiddleware := middleware.NewJWTAuthenticator(signer)
	limiter := middleware.NewDynamicRateLimiter(func() (float64, int) {
		c := cfg()
		return float64(c.RateLimit), c.RateLimitBurst
	})

	api := router.NewRoute().Subrouter()
	api.Use(jwtMiddleware.Middleware, limiter.Middleware)

	s := &Server{
		Service:       svc,
		Stores:        svc.Stores(),
		Config:        cfg,
		Log:           log,
		Version:       "dev",
		Router:        router,
		API:           api,
		JWTMiddleware: jwtMiddleware,
	}
	s.srv = &http.Server{
		Handler:      s.Handler(),
		Addr:         host + ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	return s
}

// Handler returns the router wrapped in the request id, metrics and access
// log middleware.
func (s *Server) Handler() http.Handler {
	return middleware.RequestID(metrics.InstrumentHandler(middleware.AccessLog(s.Log, s.Router)))
}

func (s *Server) Start() error {
	s.Log.WithField("addr", s.srv.Addr).Info("listening")
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
