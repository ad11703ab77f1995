package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wanderio/trek-finder/pkg/catalog"
	"github.com/wanderio/trek-finder/pkg/common"
	"github.com/wanderio/trek-finder/pkg/discovery"
	"github.com/wanderio/trek-finder/pkg/facetstore"
	"github.com/wanderio/trek-finder/pkg/server"
	"github.com/wanderio/trek-finder/pkg/tracking"
	"github.com/wanderio/trek-finder/pkg/types"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")
var catalogUrl = os.Getenv("CATALOG_URL")
var rabbitUrl = os.Getenv("RABBIT_URL")
var market = os.Getenv("MARKET")
var redisUrl = os.Getenv("REDIS_URL")
var redisPassword = os.Getenv("REDIS_PASSWORD")
var listenAddress = ":8080"
var debugAddress = ":8081"
var instanceId = uuid.NewString()

func main() {
	flag.Parse()

	if catalogUrl == "" {
		catalogUrl = "http://localhost:4000"
	}
	log.Printf("trek-finder instance %s, catalog %s", instanceId, catalogUrl)

	client := catalog.NewClient(catalogUrl)

	var trk types.Tracking = tracking.NoopTracking{}
	if rabbitUrl != "" {
		rt, err := tracking.NewRabbitTracking(rabbitUrl, market, instanceId)
		if err != nil {
			log.Printf("tracking disabled: %v", err)
		} else {
			trk = rt
		}
	}

	var cache *facetstore.Cache
	if redisUrl != "" {
		cache = facetstore.NewCache(redisUrl, redisPassword, 0)
	}

	facets := facetstore.New(client, cache)
	if err := facets.Load(context.Background()); err != nil {
		// free text search still works without filter controls
		log.Printf("starting without facet metadata: %v", err)
	}

	manager := discovery.NewManager(client, trk)
	stopSweeper := manager.StartSweeper(5 * time.Minute)

	ws := &server.WebServer{
		Manager:       manager,
		Facets:        facets,
		Tracking:      trk,
		ListenAddress: listenAddress,
	}

	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	debugMux.Handle("/metrics", promhttp.Handler())
	if *enableProfiling {
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	go func() {
		log.Printf("starting debug server on %s", debugAddress)
		if err := http.ListenAndServe(debugAddress, debugMux); err != nil {
			log.Printf("debug server error: %v", err)
		}
	}()

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      30 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	srv := common.NewServerWithTimeouts(&http.Server{
		Addr:    listenAddress,
		Handler: ws.MainMux(),
	}, timeouts)

	common.RunServerWithShutdown(srv, "trek discovery server", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			stopSweeper()
			return nil
		},
		func(ctx context.Context) error {
			return trk.Close()
		},
	)
}
