// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	optionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyoptions"
	questionstore "github.com/dalemusser/mutuhub/internal/app/store/surveyquestions"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/dalemusser/mutuhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll, log); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema, log); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				log.Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("units", unitsSchema())
	ensure("periodes", periodesSchema())
	ensure("dosen", dosenSchema())

	ensure("surveys", surveysSchema())
	ensure(questionstore.Collection, questionsSchema())
	ensure(optionstore.Collection, optionsSchema())

	ensure("documents", documentsSchema())
	ensure("standar_mutu", standarSchema())
	ensure("indikator", indikatorSchema())
	ensure("pertanyaan", pertanyaanSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, log *zap.Logger) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		log.Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		log.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	log.Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *zap.Logger) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	log.Debug("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	objectID = bson.M{"bsonType": "objectId"}
	position = bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0}
)

func enum(values []string) bson.M {
	a := make(bson.A, 0, len(values))
	for _, v := range values {
		a = append(a, v)
	}
	return bson.M{"enum": a}
}

func schema(required []string, props bson.M) bson.M {
	req := make(bson.A, 0, len(required))
	for _, f := range required {
		req = append(req, f)
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   req,
			"properties": props,
		},
	}
}

func usersSchema() bson.M {
	return schema([]string{"login_id", "login_id_ci", "full_name", "role"}, bson.M{
		"login_id":     nonBlank,
		"login_id_ci":  nonBlank,
		"full_name":    nonBlank,
		"full_name_ci": bson.M{"bsonType": "string"},
		"role":         enum(authz.Roles),
		"status":       enum([]string{"active", "disabled"}),
		"permissions":  bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
	})
}

func unitsSchema() bson.M {
	return schema([]string{"kode", "kode_ci", "nama", "tipe", "status"}, bson.M{
		"kode":      nonBlank,
		"kode_ci":   nonBlank,
		"nama":      nonBlank,
		"tipe":      enum(models.UnitTipes),
		"parent_id": objectID,
		"leader_id": objectID,
		"status":    bson.M{"bsonType": "bool"},
	})
}

func periodesSchema() bson.M {
	return schema([]string{"kode", "nama", "mulai", "selesai", "is_active"}, bson.M{
		"kode":      nonBlank,
		"nama":      nonBlank,
		"mulai":     bson.M{"bsonType": "date"},
		"selesai":   bson.M{"bsonType": "date"},
		"is_active": bson.M{"bsonType": "bool"},
	})
}

func dosenSchema() bson.M {
	return schema([]string{"nidn", "nama"}, bson.M{
		"nidn":    bson.M{"bsonType": "string", "pattern": "^[0-9]+$"},
		"nama":    nonBlank,
		"unit_id": objectID,
	})
}

func surveysSchema() bson.M {
	return schema([]string{"judul", "starts_at", "ends_at"}, bson.M{
		"judul":      nonBlank,
		"periode_id": objectID,
		"starts_at":  bson.M{"bsonType": "date"},
		"ends_at":    bson.M{"bsonType": "date"},
		"created_by": objectID,
	})
}

func questionsSchema() bson.M {
	return schema([]string{"survey_id", "pertanyaan", "tipe", "order"}, bson.M{
		"survey_id":  objectID,
		"pertanyaan": nonBlank,
		"tipe":       enum(models.QuestionTypes),
		"order":      position,
	})
}

func optionsSchema() bson.M {
	return schema([]string{"question_id", "label", "order"}, bson.M{
		"question_id": objectID,
		"label":       nonBlank,
		"order":       position,
	})
}

func documentsSchema() bson.M {
	return schema([]string{"judul", "kategori", "storage_key"}, bson.M{
		"judul":       nonBlank,
		"kategori":    enum(models.DocumentKategori),
		"storage_key": nonBlank,
		"unit_id":     objectID,
		"periode_id":  objectID,
	})
}

func standarSchema() bson.M {
	return schema([]string{"kode", "kode_ci", "nama"}, bson.M{
		"kode":    nonBlank,
		"kode_ci": nonBlank,
		"nama":    nonBlank,
	})
}

func indikatorSchema() bson.M {
	return schema([]string{"standar_id", "deskripsi", "order"}, bson.M{
		"standar_id": objectID,
		"deskripsi":  nonBlank,
		"order":      position,
	})
}

func pertanyaanSchema() bson.M {
	return schema([]string{"indikator_id", "teks", "order"}, bson.M{
		"indikator_id": objectID,
		"teks":         nonBlank,
		"order":        position,
	})
}
