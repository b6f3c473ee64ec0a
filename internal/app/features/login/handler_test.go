package login_test

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/mutuhub/internal/app/features/login"
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/app/system/ratelimit"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database, limiter *ratelimit.LoginLimiter) *login.Handler {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return login.NewHandler(db, sm, limiter, zap.NewNop())
}

func post(t *testing.T, h *login.Handler, loginID, password string) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"login_id": loginID,
		"password": password,
	}))
	return rec
}

func TestHandleLogin_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateUser(ctx, "Auditor1", "s3cret-pass", authz.RoleAuditor)

	rec := post(t, newHandler(t, db, nil), "auditor1", "s3cret-pass")
	rec.AssertStatus(t, http.StatusOK)

	var u struct {
		LoginID string `json:"login_id"`
		Role    string `json:"role"`
	}
	rec.DecodeData(t, &u)
	if u.LoginID != "Auditor1" || u.Role != authz.RoleAuditor {
		t.Errorf("unexpected user %+v", u)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestHandleLogin_BadCredentialsLookAlike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateUser(ctx, "dosen1", "right-password", authz.RoleDosen)
	disabled := fx.CreateUser(ctx, "gone", "right-password", authz.RoleDosen)
	if _, err := db.Collection("users").UpdateByID(ctx, disabled.ID,
		bson.M{"$set": bson.M{"status": "disabled"}}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	h := newHandler(t, db, nil)
	cases := []struct{ name, login, password string }{
		{"wrong password", "dosen1", "nope"},
		{"unknown login", "nobody", "right-password"},
		{"disabled account", "gone", "right-password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, h, tc.login, tc.password)
			rec.AssertStatus(t, http.StatusUnprocessableEntity)
			if body := rec.Decode(t); body.Errors["login_id"] == "" {
				t.Errorf("expected login_id error, got %+v", body)
			}
		})
	}
}

func TestHandleLogin_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rec := post(t, newHandler(t, db, nil), "", "")
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	body := rec.Decode(t)
	if body.Errors["login_id"] != "Login ID is required." {
		t.Errorf("errors[login_id] = %q", body.Errors["login_id"])
	}
	if body.Errors["password"] != "Password is required." {
		t.Errorf("errors[password] = %q", body.Errors["password"])
	}
}

func TestHandleLogin_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	// 2 per minute per IP, 1 per login id.
	h := newHandler(t, db, ratelimit.NewLoginLimiter(2))

	post(t, h, "someone", "x").AssertStatus(t, http.StatusUnprocessableEntity)
	post(t, h, "someone", "x").AssertStatus(t, http.StatusTooManyRequests)
}
