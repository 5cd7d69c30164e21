// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kingdom-workers/internal/common/config"
	"kingdom-workers/internal/common/database"
	"kingdom-workers/internal/common/logger"
	"kingdom-workers/internal/common/observability"
	"kingdom-workers/pkg/registry"

	// Infrastructure Workers (1)
	br "kingdom-workers/internal/workers/infrastructure/build-response"

	// Data Access Workers (2)
	qe "kingdom-workers/internal/workers/data-access/query-elasticsearch"
	qp "kingdom-workers/internal/workers/data-access/query-postgresql"

	// Matching Workers (3)
	cc "kingdom-workers/internal/workers/matching/calculate-compatibility"
	psf "kingdom-workers/internal/workers/matching/parse-search-filters"
	rl "kingdom-workers/internal/workers/matching/rank-listings"

	// Transfer Workers (3)
	cta "kingdom-workers/internal/workers/transfer/create-transfer-application"
	sn "kingdom-workers/internal/workers/transfer/send-notification"
	vtp "kingdom-workers/internal/workers/transfer/validate-transfer-profile"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Load Task Registry ---
	var taskRegistry *registry.TaskRegistry
	if cfg.Registry.Path != "" {
		taskRegistry, err = registry.LoadRegistry(cfg.Registry.Path)
		if err != nil {
			zapLog.Fatal("task registry load failed", zap.Error(err))
		}
		zapLog.Info("Task registry loaded",
			zap.String("version", taskRegistry.Version),
			zap.Int("tasks", len(taskRegistry.Tasks)),
		)
	}

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- START: Register ALL 9 Workers ---

	// --- 1. Matching Workers (3) ---
	if cfg.Workers[cc.TaskType].Enabled {
		handler := cc.NewHandler(
			&cc.Config{
				CacheTTL: config.GetDuration(cfg.Matching.ProfileCacheTTL),
				Timeout:  config.GetDuration(cfg.Workers[cc.TaskType].Timeout),
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, cc.TaskType, cfg.Workers[cc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rl.TaskType].Enabled {
		handler := rl.NewHandler(
			&rl.Config{
				MaxItems: cfg.Matching.MaxRankedItems,
				Timeout:  config.GetDuration(cfg.Workers[rl.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, rl.TaskType, cfg.Workers[rl.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[psf.TaskType].Enabled {
		handler := psf.NewHandler(
			&psf.Config{
				Timeout: config.GetDuration(cfg.Workers[psf.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, psf.TaskType, cfg.Workers[psf.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Data Access Workers (2) ---
	if cfg.Workers[qp.TaskType].Enabled {
		handler := qp.NewHandler(
			&qp.Config{
				Timeout: config.GetDuration(cfg.Workers[qp.TaskType].Timeout),
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, qp.TaskType, cfg.Workers[qp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[qe.TaskType].Enabled {
		handler := qe.NewHandler(
			&qe.Config{
				Timeout: config.GetDuration(cfg.Workers[qe.TaskType].Timeout),
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, qe.TaskType, cfg.Workers[qe.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Transfer Workers (3) ---
	if cfg.Workers[vtp.TaskType].Enabled {
		handler := vtp.NewHandler(
			&vtp.Config{
				Timeout: config.GetDuration(cfg.Workers[vtp.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, vtp.TaskType, cfg.Workers[vtp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cta.TaskType].Enabled {
		handler := cta.NewHandler(
			&cta.Config{
				Timeout: config.GetDuration(cfg.Workers[cta.TaskType].Timeout),
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, cta.TaskType, cfg.Workers[cta.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sn.TaskType].Enabled {
		handler, err := sn.NewHandler(
			&sn.Config{
				EmailEnabled:     cfg.Notifications.Email.Enabled,
				SMSEnabled:       cfg.Notifications.SMS.Enabled,
				FromEmail:        cfg.Notifications.Email.FromEmail,
				AWSRegion:        cfg.Notifications.AWS.Region,
				TemplateRegistry: cfg.Notifications.TemplateRegistryPath,
				Timeout:          config.GetDuration(cfg.Workers[sn.TaskType].Timeout),
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		startWorker(zeebeClient, sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Infrastructure Workers (1) ---
	if cfg.Workers[br.TaskType].Enabled {
		handler := br.NewHandler(
			&br.Config{
				TemplateRegistry: cfg.Template.RegistryPath,
				CacheTTL:         5 * time.Minute,
				AppVersion:       cfg.App.Version,
				Timeout:          config.GetDuration(cfg.Workers[br.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, br.TaskType, cfg.Workers[br.TaskType], handler.Handle, zapLog)
	}

	// Warn about enabled workers missing from the task registry so BPMN
	// authors notice drift before deployments fail.
	if taskRegistry != nil {
		for taskType, wcfg := range cfg.Workers {
			if !wcfg.Enabled {
				continue
			}
			if _, err := taskRegistry.FindTask(taskType); err != nil {
				zapLog.Warn("enabled worker not present in task registry",
					zap.String("taskType", taskType))
			}
		}
	}

	zapLog.Info("All 9 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
