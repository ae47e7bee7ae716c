// main wires configuration, stores, services, and the HTTP server. Business
// logic lives in the internal feature packages; this file only assembles
// them and manages process lifecycle.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"veridoc/internal/audit"
	audithandler "veridoc/internal/audit/handler"
	"veridoc/internal/audit/publisher"
	auditmemory "veridoc/internal/audit/store/memory"
	auditpostgres "veridoc/internal/audit/store/postgres"
	dochandler "veridoc/internal/document/handler"
	docservice "veridoc/internal/document/service"
	docrefstore "veridoc/internal/document/store"
	"veridoc/internal/document/store/doctype"
	docstore "veridoc/internal/document/store/document"
	"veridoc/internal/identity"
	identityhandler "veridoc/internal/identity/handler"
	"veridoc/internal/platform/config"
	"veridoc/internal/platform/httpserver"
	"veridoc/internal/platform/logger"
	platformpostgres "veridoc/internal/platform/postgres"
	platformredis "veridoc/internal/platform/redis"
	"veridoc/internal/signature"
	sigmemory "veridoc/internal/signature/store/memory"
	sigpostgres "veridoc/internal/signature/store/postgres"
	httptransport "veridoc/internal/transport/http"
	wfhandler "veridoc/internal/workflow/handler"
	wfservice "veridoc/internal/workflow/service"
	wfstore "veridoc/internal/workflow/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		documents docservice.DocumentStore
		types     docrefstore.TypeStore
		sigs      signature.Store
		events    audit.Store
		workflows wfstore.Store
		storeTx   docservice.StoreTx
	)

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		if err := platformpostgres.EnsureSchema(ctx, db); err != nil {
			return err
		}
		documents = docstore.NewPostgres(db)
		types = doctype.NewPostgres(db)
		sigs = sigpostgres.New(db)
		events = auditpostgres.New(db)
		workflows = wfstore.NewPostgres(db)
		storeTx = docservice.NewSQLTx(db)
		log.Info("using postgres stores")
	} else {
		documents = docstore.NewInMemory()
		types = doctype.NewInMemory()
		sigs = sigmemory.New()
		events = auditmemory.New()
		workflows = wfstore.NewInMemory()
		storeTx = docservice.NewShardedTx()
		log.Info("using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("reference-data cache enabled")
	}
	cachedTypes := doctype.NewCached(types, redisClient, log)
	cachedWorkflows := wfstore.NewCached(workflows, redisClient, log)

	if err := docrefstore.SeedDocumentTypes(ctx, cachedTypes); err != nil {
		return err
	}
	if err := wfstore.SeedDefaultWorkflow(ctx, cachedWorkflows); err != nil {
		return err
	}

	recorderOpts := []audit.Option{
		audit.WithLogger(log),
		audit.WithMetrics(audit.NewMetrics()),
	}

	g, ctx := errgroup.WithContext(ctx)

	var mirror *publisher.Kafka
	if len(cfg.KafkaBrokers) > 0 {
		mirror, err = publisher.NewKafka(ctx, cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			return err
		}
		defer mirror.Close()
		recorderOpts = append(recorderOpts, audit.WithMirror(mirror))
		g.Go(func() error {
			if err := mirror.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
		log.Info("audit mirror enabled", "topic", cfg.AuditTopic)
	}

	recorder := audit.NewRecorder(events, recorderOpts...)
	signer := signature.NewSigner(signature.WithCost(cfg.SignatureCost))

	documentService := docservice.New(documents, cachedTypes, sigs, signer, recorder, storeTx,
		docservice.WithLogger(log),
		docservice.WithMetrics(docservice.NewMetrics()),
	)
	workflowService := wfservice.New(cachedWorkflows, cachedTypes, recorder, wfservice.WithLogger(log))
	issuer := identity.NewIssuer(cfg.JWTSigningKey, identity.WithTTL(cfg.TokenTTL))

	router := httptransport.NewRouter(issuer, log,
		dochandler.New(documentService, log),
		wfhandler.New(workflowService, log),
		identityhandler.New(issuer, recorder, cfg.TokenTTL, log),
		audithandler.New(recorder, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
