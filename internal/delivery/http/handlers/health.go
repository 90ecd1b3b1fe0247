package handlers

import (
	"context"
	"net/http"
	"time"

	paymentResponse "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/delivery/http/dto/payment/response"
	"github.com/go-chi/render"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, paymentResponse.HealthResponse{Status: "degraded", Database: "unreachable"})
			return
		}
		render.JSON(w, r, paymentResponse.HealthResponse{Status: "ok", Database: "ok"})
	}
}
