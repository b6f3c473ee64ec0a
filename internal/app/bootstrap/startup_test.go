package bootstrap

import (
	"testing"

	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/dalemusser/mutuhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureSuperAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := ensureSuperAdmin(ctx, deps, "root", "s3cret-pass", testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"login_id": "root"}).Decode(&user); err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if user.Role != authz.RoleSuperAdmin {
		t.Errorf("expected role %q, got %q", authz.RoleSuperAdmin, user.Role)
	}
	if user.Status != "active" {
		t.Errorf("expected status 'active', got %q", user.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Errorf("password hash does not match: %v", err)
	}
}

func TestEnsureSuperAdmin_NewNeedsPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := ensureSuperAdmin(ctx, DBDeps{MongoDatabase: db}, "root", "", testLogger()); err == nil {
		t.Fatal("expected an error when creating a superadmin without a password")
	}
	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no users, got %d", n)
	}
}

func TestEnsureSuperAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	existing := fx.CreateUser(ctx, "kepala.lpm", "old-password", authz.RoleAuditor)
	if _, err := db.Collection("users").UpdateByID(ctx, existing.ID, bson.M{"$set": bson.M{"status": "disabled"}}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	if err := ensureSuperAdmin(ctx, DBDeps{MongoDatabase: db}, "Kepala.LPM", "", testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != authz.RoleSuperAdmin || user.Status != "active" {
		t.Errorf("expected active superadmin, got role=%q status=%q", user.Role, user.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("old-password")); err != nil {
		t.Error("existing password should be kept when none is configured")
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestValidateConfig(t *testing.T) {
	base := AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "mutuhub",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 10,
		SessionKey:       devSessionKey,
	}

	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{name: "dev defaults", env: "dev", mutate: func(*AppConfig) {}},
		{name: "bad uri", env: "dev", mutate: func(c *AppConfig) { c.MongoURI = "postgres://x" }, wantErr: true},
		{name: "empty database", env: "dev", mutate: func(c *AppConfig) { c.MongoDatabase = "" }, wantErr: true},
		{name: "min pool above max", env: "dev", mutate: func(c *AppConfig) { c.MongoMinPoolSize = 200 }, wantErr: true},
		{name: "dev key in prod", env: "prod", mutate: func(*AppConfig) {}, wantErr: true},
		{name: "short key in prod", env: "prod", mutate: func(c *AppConfig) { c.SessionKey = "short" }, wantErr: true},
		{
			name:   "strong key in prod",
			env:    "prod",
			mutate: func(c *AppConfig) { c.SessionKey = "0f9c2a7d4b1e8a6c3d5f7b9e1a2c4d6e8f0a" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
