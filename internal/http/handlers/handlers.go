package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kvitka/hotel-bookings/internal/http/response"
	redisrepo "github.com/kvitka/hotel-bookings/internal/repo/redis"
	"github.com/kvitka/hotel-bookings/internal/service"
	"github.com/kvitka/hotel-bookings/pkg/auth"
	"github.com/kvitka/hotel-bookings/pkg/config"
	"github.com/kvitka/hotel-bookings/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

type Handlers struct {
	accounts service.AccountService
	bookings service.BookingService
	rooms    service.RoomService
	payments service.PaymentService
	limiter  *redisrepo.RateLimiter
	config   *config.Config
}

func New(
	accounts service.AccountService,
	bookings service.BookingService,
	rooms service.RoomService,
	payments service.PaymentService,
	limiter *redisrepo.RateLimiter,
	config *config.Config,
) *Handlers {
	return &Handlers{
		accounts: accounts,
		bookings: bookings,
		rooms:    rooms,
		payments: payments,
		limiter:  limiter,
		config:   config,
	}
}

// RequireJWT authenticates the request and, when requiredRole is set,
// authorizes it. Admins pass every role gate.
func (h *Handlers) RequireJWT(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Unauthorized(w, "Missing or invalid authorization header")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}
			if claims.Role == "refresh" {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if requiredRole != "" && claims.Role != requiredRole && claims.Role != "admin" {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.Sub)
			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoginRateLimit throttles credential guessing per client IP.
func (h *Handlers) LoginRateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)
			key := "login:" + clientIP

			allowed, err := h.limiter.Allow(r.Context(), key, 10, time.Minute)
			if err != nil {
				logger.ErrorContext(r.Context(), "Rate limit check failed", "error", err)
				// fail open
			} else if !allowed {
				response.RateLimit(w, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Helper functions
func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
