package txn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/advocateworks/lexhub/internal/app/system/txn"
	"github.com/advocateworks/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestWithTransaction_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sawSession := false
	usedTxn, err := txn.WithTransaction(ctx, db.Client(), func(ctx context.Context) error {
		sawSession = mongo.SessionFromContext(ctx) != nil
		return nil
	})
	if err != nil {
		t.Fatalf("WithTransaction failed: %v", err)
	}
	if usedTxn != sawSession {
		t.Errorf("usedTxn = %v, but fn saw a session context = %v", usedTxn, sawSession)
	}
}

func TestWithTransaction_FailedFnKeepsTransactionFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A callback failure inside a transaction rolls back whole, so the
	// flag must still report the transaction path: callers use it to
	// decide whether partial completion is even possible.
	sentinel := errors.New("callback failed")
	calls := 0
	sawSession := false
	usedTxn, err := txn.WithTransaction(ctx, db.Client(), func(ctx context.Context) error {
		calls++
		sawSession = mongo.SessionFromContext(ctx) != nil
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want the callback's error", err)
	}
	if calls != 1 {
		t.Errorf("fn ran %d times, want 1 (no sequential retry after a rolled-back transaction)", calls)
	}
	if usedTxn != sawSession {
		t.Errorf("usedTxn = %v after a failed callback, but fn saw a session context = %v", usedTxn, sawSession)
	}
}
