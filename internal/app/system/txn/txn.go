// Package txn wraps multi-document work in a Mongo transaction when the
// deployment supports one, and degrades to plain sequential execution on
// standalone servers. The client-delete cascade is the main consumer.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a session transaction. If the server
// rejects transactions (standalone deployment, no replica set), fn is
// re-run once outside a session so the operation still happens; the
// returned bool reports whether the transaction path was taken — it
// stays true when fn fails inside a transaction, because the abort
// rolled everything back and the caller must not report partial
// completion.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) (bool, error) {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return false, fn(ctx)
		}
		return false, err
	}
	defer sess.EndSession(ctx)

	usedTxn := false
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		usedTxn = true
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return false, fn(ctx)
	}
	return usedTxn, err
}

// Server error codes that signal transactions are unavailable.
const (
	codeIllegalOperation      = 20  // "Transaction numbers are only allowed on a replica set member"
	codeCommandNotSupported   = 51
	codeOperationNotSupported = 263
)

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions at all (as opposed to a transient abort).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupported:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
