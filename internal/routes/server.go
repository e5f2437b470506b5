package routes

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"

	"battlesim/internal/harness"
	"battlesim/internal/shiplist"
	"battlesim/internal/sim"
	"battlesim/internal/vcr"
	"battlesim/pkg/db"
	"battlesim/pkg/dispatcher"
	"battlesim/pkg/logger"

	"github.com/gorilla/handlers"
)

// Server :
// HTTP front-end for the battle simulation engine, following the
// teacher's own Server/Router split (internal/routes/server.go):
// routes are registered on a dispatcher.Router, wrapped in
// gorilla/handlers CORS middleware, and served with a gracefully
// shutdownable http.Server.
//
// The `port` is the TCP port to listen on.
//
// The `router` dispatches incoming requests to the registered routes.
//
// The `list`/`hostConfig` are the read-only reference-data stores the
// simulation core consults while packing units (SPEC_FULL.md §6).
//
// The `engine` plays the packed battles (SPEC_FULL.md out-of-scope
// boundary, concrete classic/PHost combat math).
//
// The `runs` holds every completed run series result in memory, keyed
// by the run series id, so results can be fetched by a later request.
//
// The `archive` is a best-effort audit trail: every completed run is
// also handed to archiveRun (archive.go), which inserts a summary row
// through db.Proxy.InsertToDB. A run that fails to archive is still
// served from the in-memory s.runs map, so archive failures are
// logged and otherwise ignored.
//
// The `log` notifies errors and request activity.
type Server struct {
	port       int
	router     *dispatcher.Router
	list       sim.ShipList
	hostConfig sim.HostConfiguration
	engine     sim.PlaybackEngine

	runsLock sync.Mutex
	runs     map[string]*harness.SeriesResult
	archive  db.Proxy

	log logger.Logger
}

// NewServer creates a Server bound to port, consulting list/hostConfig
// for reference data, engine for battle playback, and dbase (may be
// nil) for archiving completed run series.
func NewServer(port int, list *shiplist.Proxy, hostConfig *shiplist.HostConfig, dbase *db.DB, log logger.Logger) Server {
	return Server{
		port:       port,
		list:       list,
		hostConfig: hostConfig,
		engine:     vcr.NewClassicEngine(),
		runs:       make(map[string]*harness.SeriesResult),
		archive:    db.NewProxy(dbase),
		log:        log,
	}
}

// Serve starts listening and serving requests, blocking until the
// process receives an interrupt signal.
func (s *Server) Serve() error {
	if s.router != nil {
		panic(fmt.Errorf("cannot start serving, server already running"))
	}

	s.router = dispatcher.NewRouter(s.log)
	s.routes()

	aMethods := handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})
	aOrigins := handlers.AllowedOrigins([]string{"*"})
	aHeaders := handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"})
	corsRouter := handlers.CORS(aHeaders, aOrigins, aMethods)(s.router)

	httpServer := &http.Server{
		Addr:    ":" + strconv.FormatInt(int64(s.port), 10),
		Handler: corsRouter,
	}

	var serveErr error
	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer func() {
			if err := recover(); err != nil {
				s.log.Trace(logger.Fatal, "server", fmt.Sprintf("Caught unexpected error while serving requests (err: %v)", err))
				serveErr = fmt.Errorf("unexpected error while serving http requests")
			}
			wg.Done()
		}()

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Trace(logger.Error, "server", fmt.Sprintf("Error while serving requests (err: %v)", err))
			serveErr = err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	s.log.Trace(logger.Info, "server", "Shutting down")
	if err := httpServer.Close(); err != nil {
		s.log.Trace(logger.Error, "server", fmt.Sprintf("Error while shutting down (err: %v)", err))
	}

	wg.Wait()
	return serveErr
}
