package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/analytics"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/budgets"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/config"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/export"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/identity"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/ledger"
	"github.com/gorilla/mux"
)

// Services groups the domain services the HTTP layer dispatches to.
type Services struct {
	Identity  *identity.Service
	Ledger    *ledger.Service
	Analytics *analytics.Service
	Budgets   *budgets.Service
	Export    *export.Service
}

type APIServer struct {
	config    *config.Config
	logger    *slog.Logger
	server    *http.Server
	identity  *identity.Service
	ledger    *ledger.Service
	analytics *analytics.Service
	budgets   *budgets.Service
	export    *export.Service
}

func New(config *config.Config, logger *slog.Logger, services Services) *APIServer {
	s := &APIServer{
		config: config,
		logger: logger,
		server: &http.Server{
			Addr:         config.ApiHost + ":" + strconv.Itoa(config.ApiPort),
			ReadTimeout:  config.HTTPTimeout,
			WriteTimeout: config.HTTPTimeout,
		},
		identity:  services.Identity,
		ledger:    services.Ledger,
		analytics: services.Analytics,
		budgets:   services.Budgets,
		export:    services.Export,
	}

	s.configureRouter()

	return s
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("port", strconv.Itoa(s.config.ApiPort)))

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()
	router.Use(s.logRequests, s.cors)

	router.HandleFunc("/health", s.healthHandler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	api.HandleFunc("/register", s.registerHandler()).Methods(http.MethodPost)
	api.HandleFunc("/login", s.loginHandler()).Methods(http.MethodPost)
	api.HandleFunc("/verify", s.verifyHandler()).Methods(http.MethodGet)
	api.HandleFunc("/resend-verification", s.resendVerificationHandler()).Methods(http.MethodPost)
	api.HandleFunc("/forgot-password", s.forgotPasswordHandler()).Methods(http.MethodPost)
	api.HandleFunc("/change-password", s.resetPasswordHandler()).Methods(http.MethodPost)

	api.HandleFunc("/me", s.authenticate(s.infoHandler())).Methods(http.MethodGet)
	api.HandleFunc("/me", s.authenticate(s.updateInfoHandler())).Methods(http.MethodPut)
	api.HandleFunc("/me", s.authenticate(s.deleteProfileHandler())).Methods(http.MethodDelete)
	api.HandleFunc("/me/password", s.authenticate(s.changePasswordHandler())).Methods(http.MethodPut)

	api.HandleFunc("/accounts", s.authenticate(s.listAccountsHandler())).Methods(http.MethodGet)
	api.HandleFunc("/account", s.authenticate(s.createAccountHandler())).Methods(http.MethodPost)
	api.HandleFunc("/account/{id}", s.authenticate(s.getAccountHandler())).Methods(http.MethodGet)
	api.HandleFunc("/account/{id}", s.authenticate(s.updateAccountHandler())).Methods(http.MethodPut)
	api.HandleFunc("/account/{id}", s.authenticate(s.deleteAccountHandler())).Methods(http.MethodDelete)
	api.HandleFunc("/account/{id}/reconcile", s.authenticate(s.reconcileHandler(false))).Methods(http.MethodGet)
	api.HandleFunc("/account/{id}/reconcile", s.authenticate(s.reconcileHandler(true))).Methods(http.MethodPost)

	api.HandleFunc("/transactions", s.authenticate(s.listTransactionsHandler())).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{accountId}", s.authenticate(s.listAccountTransactionsHandler())).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{accountId}", s.authenticate(s.createTransactionHandler())).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{accountId}/{id}", s.authenticate(s.getTransactionHandler())).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{accountId}/{id}", s.authenticate(s.deleteTransactionHandler())).Methods(http.MethodDelete)

	api.HandleFunc("/analytics/categories", s.authenticate(s.categoriesHandler())).Methods(http.MethodPost)

	api.HandleFunc("/budgets", s.authenticate(s.listBudgetsHandler())).Methods(http.MethodGet)
	api.HandleFunc("/budgets", s.authenticate(s.createBudgetHandler())).Methods(http.MethodPost)
	api.HandleFunc("/budget/{id}", s.authenticate(s.getBudgetHandler())).Methods(http.MethodGet)
	api.HandleFunc("/budget/{id}", s.authenticate(s.updateBudgetHandler())).Methods(http.MethodPut)
	api.HandleFunc("/budget/{id}", s.authenticate(s.deleteBudgetHandler())).Methods(http.MethodDelete)

	api.HandleFunc("/export/transactions", s.authenticate(s.exportHandler())).Methods(http.MethodGet)
	api.HandleFunc("/export/archive", s.authenticate(s.archiveHandler())).Methods(http.MethodPost)

	s.server.Handler = router
}

func (s *APIServer) healthHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
