package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KAsare1/Kodefx-channels/cmd/api"
	"github.com/KAsare1/Kodefx-channels/config"
	"github.com/KAsare1/Kodefx-channels/db"
	"github.com/KAsare1/Kodefx-channels/service/admin"
	"github.com/KAsare1/Kodefx-channels/service/notify"
	"github.com/KAsare1/Kodefx-channels/storage"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	cfg := config.Load()

	// Check for command-line arguments
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations(cfg)
			return
		case "clear-db":
			runDatabaseClear(cfg)
			return
		case "serve":
		default:
			log.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	// Start the server
	startServer(cfg)
}

func openDatabase(cfg *config.Config) *gorm.DB {
	DB, err := db.NewStorage(cfg.Database)
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	log.WithField("driver", db.DialectName(DB)).Info("connected to the database")
	return DB
}

func closeDatabase(DB *gorm.DB) {
	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("database connection closed")
}

func runMigrations(cfg *config.Config) {
	DB := openDatabase(cfg)
	defer closeDatabase(DB)

	log.Info("starting database migrations")
	if err := db.Migrate(DB); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		for _, prefix := range []string{storage.PrefixIDDocuments, storage.PrefixProfitPlans} {
			dir := cfg.Storage.UploadDir + string(os.PathSeparator) + prefix
			if err := os.MkdirAll(dir, 0755); err != nil {
				log.Fatalf("Error creating directory %s: %v", dir, err)
			}
			log.WithField("dir", dir).Info("upload directory created/verified")
		}
	}
	log.Info("migrations completed successfully")
}

func startServer(cfg *config.Config) {
	DB := openDatabase(cfg)
	defer closeDatabase(DB)

	store, err := storage.New(context.Background(), cfg.Storage, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Storage initialization error: %v", err)
	}

	auth, err := admin.NewPasswordAuthenticator(cfg.Admin.Password)
	if err != nil {
		log.Fatalf("Admin authenticator error: %v", err)
	}
	if cfg.Admin.Password == "" || cfg.Admin.SecretKey == "" {
		log.Warn("ADMIN_PASSWORD or SECRET_KEY is not set; admin routes reject every request")
	}
	if cfg.SMTP.Host == "" {
		log.Warn("SMTP_HOST is not set; confirmation emails will not be delivered")
	}

	dispatcher := notify.NewDispatcher(notify.NewService(notify.NewSMTPMailer(cfg.SMTP)), cfg.EmailTimeout)

	server := api.NewApiServer(cfg, api.Dependencies{
		DB:       DB,
		Store:    store,
		Notifier: dispatcher,
		Auth:     auth,
	})

	// Graceful shutdown setup
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- server.Run()
	}()

	select {
	case err := <-errs:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case <-quit:
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	dispatcher.Wait()
}

func runDatabaseClear(cfg *config.Config) {
	DB := openDatabase(cfg)
	defer closeDatabase(DB)

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Are you sure you want to clear the database? (yes/no): ")
	confirmation, _ := reader.ReadString('\n')
	if strings.TrimSpace(confirmation) != "yes" {
		log.Info("database clearing cancelled")
		return
	}

	fmt.Print("Enter table names to clear (comma separated) or leave blank to clear all: ")
	tableNames, _ := reader.ReadString('\n')

	tables, err := selectTables(strings.TrimSpace(tableNames))
	if err != nil {
		log.Fatalf("Error clearing database: %v", err)
	}

	for _, table := range tables {
		if err := DB.Migrator().DropTable(table); err != nil {
			log.WithError(err).Warnf("could not drop table %T", table)
			continue
		}
		log.Infof("table %T dropped", table)
	}
	log.Info("database cleared successfully")
}

type tabler interface {
	TableName() string
}

// selectTables maps comma separated table names to models. Blank selects all.
func selectTables(tableNames string) ([]interface{}, error) {
	all := db.Models()
	if tableNames == "" {
		return all, nil
	}

	byName := make(map[string]interface{}, len(all))
	for _, model := range all {
		if t, ok := model.(tabler); ok {
			byName[t.TableName()] = model
		}
	}

	var tables []interface{}
	for _, name := range strings.Split(tableNames, ",") {
		model, ok := byName[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("unknown table: %s", strings.TrimSpace(name))
		}
		tables = append(tables, model)
	}
	return tables, nil
}
