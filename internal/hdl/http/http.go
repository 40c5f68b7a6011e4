package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nimbus-sync/nimbus/internal/auth/jwt"
	"github.com/nimbus-sync/nimbus/internal/ctrl"
	mid "github.com/nimbus-sync/nimbus/internal/hdl/http/middleware"
	"github.com/nimbus-sync/nimbus/internal/hdl/http/utils"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/nimbus-sync/nimbus/api/rest/v1"
)

type Handler struct {
	Router    *chi.Mux
	au        jwt.Port
	srv       *http.Server
	ctrl      ctrl.AppCtrl
	clientURL string
}

func New(au jwt.Port, ctrl ctrl.AppCtrl, clientURL string) *Handler {
	h := &Handler{
		Router:    chi.NewRouter(),
		au:        au,
		ctrl:      ctrl,
		clientURL: clientURL,
	}

	h.Router.Use(
		mid.Logger(zap.L()),
		middleware.StripSlashes,
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		mid.Prometheus,
		mid.OT,
	)

	h.RegisterAuthRoutes()
	h.RegisterUserRoutes()
	h.RegisterDeviceRoutes()

	h.Router.Get("/swagger/*", httpSwagger.WrapHandler)
	h.Router.Get(
		"/health", func(w http.ResponseWriter, r *http.Request) {
			utils.SuccessResponse(w, http.StatusOK, "OK")
		},
	)

	return h
}

func (h *Handler) Start(port int) {
	h.srv = &http.Server{
		Handler:      h.Router,
		Addr:         fmt.Sprintf(":%v", port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info(
		"Starting HTTP server",
		zap.String("addr", h.srv.Addr),
	)

	err := h.srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		zap.L().Error("Server error", zap.Error(err))
	}
}

func (h *Handler) Close(ctx context.Context) error {
	if h.srv == nil {
		return nil
	}
	return h.srv.Shutdown(ctx)
}
