// Package metrics exposes prometheus collectors for the wallet service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	apperrors "github.com/wekeepgrowing/shop-wallet/pkg/errors"
)

const namespace = "wallet"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec

	customersCreated prometheus.Counter
	purchasesSettled prometheus.Counter
	purchaseAmount   prometheus.Counter
	walletRedeemed   prometheus.Counter
	walletCredited   prometheus.Counter
	purchasesCleared *prometheus.CounterVec
}

// New creates and registers the wallet collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests segmented by route, method and status.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		customersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "customers_created_total",
			Help:      "Customers registered.",
		}),
		purchasesSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_settled_total",
			Help:      "Purchases settled against a wallet.",
		}),
		purchaseAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_amount_total",
			Help:      "Sum of settled purchase amounts.",
		}),
		walletRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_redeemed_total",
			Help:      "Wallet value redeemed against purchases.",
		}),
		walletCredited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_credited_total",
			Help:      "Reward credit added to wallets.",
		}),
		purchasesCleared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_cleared_total",
			Help:      "Purchases removed by clear-all, by whether balances were reversed.",
		}, []string{"reversed"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.durations,
		m.customersCreated,
		m.purchasesSettled,
		m.purchaseAmount,
		m.walletRedeemed,
		m.walletCredited,
		m.purchasesCleared,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = apperrors.ToHTTPError(err).Code
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			m.durations.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) CustomerCreated() {
	m.customersCreated.Inc()
}

func (m *Metrics) PurchaseSettled(amount, walletUsed, walletCredit decimal.Decimal) {
	m.purchasesSettled.Inc()
	m.purchaseAmount.Add(amount.InexactFloat64())
	m.walletRedeemed.Add(walletUsed.InexactFloat64())
	m.walletCredited.Add(walletCredit.InexactFloat64())
}

func (m *Metrics) PurchasesCleared(deleted int64, reversed bool) {
	m.purchasesCleared.WithLabelValues(strconv.FormatBool(reversed)).Add(float64(deleted))
}
