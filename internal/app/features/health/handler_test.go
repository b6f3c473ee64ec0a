package health_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/features/health"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func TestServe_Reachable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest(http.MethodGet, "/health"))
	rec.AssertStatus(t, http.StatusOK)

	var st health.Status
	rec.DecodeData(t, &st)
	assert.Equal(t, "ok", st.Status)
	assert.Equal(t, db.Name(), st.Database)
	assert.GreaterOrEqual(t, st.LatencyMS, int64(0))
}

func TestServe_Unreachable(t *testing.T) {
	// Connect is lazy; the ping is what fails.
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	h := health.NewHandler(client.Database("mutuhub"), zap.NewNop())
	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest(http.MethodGet, "/health"))
	rec.AssertStatus(t, http.StatusServiceUnavailable)

	body := rec.Decode(t)
	assert.Equal(t, "Database unavailable.", body.Message)
	assert.Contains(t, string(body.Data), `"status":"error"`)
	assert.Contains(t, string(body.Data), `"database":"mutuhub"`)
}
