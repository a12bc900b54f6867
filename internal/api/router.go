package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/stacksline/stacks-wallet/internal/handler"
	"github.com/stacksline/stacks-wallet/stacks"
)

// SetupRouter sets up router with handlers
func SetupRouter(svc *stacks.Service, log zerolog.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(svc, log)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/create", walletHandler.Create)
	mux.HandleFunc("/wallet/import", walletHandler.Import)
	mux.HandleFunc("/wallet/unlock", walletHandler.Unlock)
	mux.HandleFunc("/wallet/lock", walletHandler.Lock)
	mux.HandleFunc("/wallet/list", walletHandler.List)
	mux.HandleFunc("/wallet/switch", walletHandler.Switch)
	mux.HandleFunc("/wallet", walletHandler.Delete)
	mux.HandleFunc("/wallet/export", walletHandler.Export)
	mux.HandleFunc("/wallet/change-password", walletHandler.ChangePassword)
	mux.HandleFunc("/wallet/status", walletHandler.Status)
	mux.HandleFunc("/wallet/balance", walletHandler.Balance)
	mux.HandleFunc("/wallet/receive", walletHandler.Receive)
	mux.HandleFunc("/wallet/transactions", walletHandler.Transactions)

	// Account endpoints
	mux.HandleFunc("/account/create", walletHandler.CreateAccount)
	mux.HandleFunc("/account/list", walletHandler.ListAccounts)
	mux.HandleFunc("/account/switch", walletHandler.SwitchAccount)

	return requestLogger(mux, log)
}

// requestLogger logs method, path, and duration for every request.
func requestLogger(next http.Handler, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
