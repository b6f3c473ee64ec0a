package txn_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/mutuhub/internal/app/system/txn"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported_Codes(t *testing.T) {
	for code, want := range map[int32]bool{20: true, 51: true, 263: true, 11000: false, 100: false} {
		err := mongo.CommandError{Code: code, Message: "server said no"}
		assert.Equal(t, want, txn.IsNotSupported(err), "code %d", code)
	}

	wrapped := fmt.Errorf("cascade standar: %w", mongo.CommandError{Code: 20})
	assert.True(t, txn.IsNotSupported(wrapped), "wrapped command error")
}

func TestIsNotSupported_Messages(t *testing.T) {
	yes := []string{
		"Transaction numbers are only allowed on a REPLICA SET member or mongos",
		"cannot start transaction in current session state",
		"sessions are not supported by this deployment",
		"Illegal operation: readConcern",
	}
	no := []string{
		"transaction aborted",
		"E11000 duplicate key error collection: mutuhub.dosen",
		"context deadline exceeded",
	}

	assert.False(t, txn.IsNotSupported(nil))
	for _, m := range yes {
		assert.True(t, txn.IsNotSupported(errors.New(m)), m)
	}
	for _, m := range no {
		assert.False(t, txn.IsNotSupported(errors.New(m)), m)
	}
}

func TestRun_CommitsWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Collections must exist before a transaction can write to them.
	require.NoError(t, db.CreateCollection(ctx, "indikator"))
	require.NoError(t, db.CreateCollection(ctx, "pertanyaan"))

	err := txn.Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		if _, err := db.Collection("indikator").InsertOne(ctx, bson.M{"kode": "1.1"}); err != nil {
			return err
		}
		_, err := db.Collection("pertanyaan").InsertOne(ctx, bson.M{"kode": "1.1.1"})
		return err
	})
	require.NoError(t, err)

	n, err := db.Collection("indikator").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = db.Collection("pertanyaan").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRun_ReturnsCallbackError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sentinel := errors.New("indikator belongs to another standar")
	calls := 0
	err := txn.Run(ctx, db, nil, func(ctx context.Context) error {
		calls++
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}
