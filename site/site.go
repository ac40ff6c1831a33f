package site

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/siteworks/deploy/model"
)

const homePage = `<h1>Hello World™</h1>`

// drainTimeout is how long outstanding requests get to complete on shutdown
const drainTimeout = 10 * time.Second

var requestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "site_requests_total",
		Help: "Total number of requests served, by path and status code",
	},
	[]string{"path", "code"},
)

func init() {
	prometheus.MustRegister(requestsTotal)
}

// Site is the web shell that fronts the deployed application
type Site struct {
	Conf model.SiteConfig
}

// New creates a Site with the supplied configuration
func New(conf model.SiteConfig) *Site {
	if conf == nil {
		conf = model.SiteConfig{}
	}
	return &Site{Conf: conf}
}

// Handler builds the site's route table
func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(countRequests)
	r.Get("/return_http", returnHTTP)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func returnHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(homePage))
}

// statusWriter remembers the status code for the request counter
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		requestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(sw.status)).Inc()
	})
}

// Serve runs the site until the context is cancelled, the process is
// signalled, or the listener fails.
func Serve(ctx context.Context, port string, conf model.SiteConfig) error {
	site := New(conf)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: site.Handler(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("serving site")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("cannot serve site: %v", err)
	case <-ctx.Done():
		log.Info("shutting down site")
	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Info("shutting down site")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		if err1 := srv.Close(); err1 != nil {
			return fmt.Errorf("cannot stop site: %v", err1)
		}
		return fmt.Errorf("graceful shutdown did not complete in %v: %v", drainTimeout, err)
	}

	log.Info("site stopped")
	return nil
}
