package webserver

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"f1telemetrycompare/pkg/charts"
)

var addr = ":8080"

type Manager struct {
	r *mux.Router
}

func NewManager() *Manager {
	m := &Manager{
		r: mux.NewRouter(),
	}

	m.rootHandlers()
	return m
}

func (m *Manager) Router() *mux.Router {
	return m.r
}

func (m *Manager) rootHandlers() {
	fs := http.FileServer(http.Dir(charts.ChartsDir))
	chartsPrefix := "/charts/"

	m.r.PathPrefix(chartsPrefix).Handler(http.StripPrefix(chartsPrefix, fs))
}

// Serve runs the webserver until ctx is cancelled, then shuts down
// gracefully.
func (m *Manager) Serve(ctx context.Context) {
	if os.Getenv("WEBSERVER_ADDRESS") != "" {
		addr = os.Getenv("WEBSERVER_ADDRESS")
	}
	srv := &http.Server{
		Addr: addr,
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}

	go func() {
		log.Printf("webserver listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	log.Println("webserver shutting down")
}
