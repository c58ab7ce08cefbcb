// Command tenantfix runs the one-shot tenant isolation repair against an
// existing database: advocates are promoted to main advocates, and cases
// and client logins that predate per-advocate ownership get their
// advocateId backfilled. It is idempotent and safe to rerun.
//
// Usage:
//
//	LEXHUB_MONGO_URI=mongodb://localhost:27017 LEXHUB_MONGO_DATABASE=lexhub tenantfix
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/advocateworks/lexhub/internal/app/migrate"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	uri := os.Getenv("LEXHUB_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("LEXHUB_MONGO_DATABASE")
	if dbName == "" {
		dbName = "lexhub"
	}

	ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Batch(), logger, "tenant migration")
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("mongo ping failed", zap.Error(err))
	}

	rep, err := migrate.Run(ctx, client.Database(dbName), logger)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	fmt.Printf("advocates promoted:      %d\n", rep.AdvocatesPromoted)
	fmt.Printf("cases resolved:          %d\n", rep.CasesResolved)
	fmt.Printf("cases unresolved:        %d\n", len(rep.CasesUnresolved))
	for _, id := range rep.CasesUnresolved {
		fmt.Printf("  case %s\n", id.Hex())
	}
	fmt.Printf("client users resolved:   %d\n", rep.ClientUsersResolved)
	fmt.Printf("client users unresolved: %d\n", len(rep.ClientUsersUnresolved))
	for _, id := range rep.ClientUsersUnresolved {
		fmt.Printf("  user %s\n", id.Hex())
	}

	if !rep.Clean() {
		os.Exit(2)
	}
}
