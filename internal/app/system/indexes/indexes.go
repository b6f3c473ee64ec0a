// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Every collection's set is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	var problems []string
	for _, set := range collectionSets() {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models, log); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func uniq(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

func collectionSets() []indexSet {
	return []indexSet{
		{"users", []mongo.IndexModel{
			uniq("uniq_users_loginidci", bson.D{{Key: "login_id_ci", Value: 1}}),
			idx("idx_users_role_status_fullnameci", bson.D{
				{Key: "role", Value: 1}, {Key: "status", Value: 1}, {Key: "full_name_ci", Value: 1},
			}),
		}},
		{"units", []mongo.IndexModel{
			uniq("uniq_units_kodeci", bson.D{{Key: "kode_ci", Value: 1}}),
			idx("idx_units_parent_nameci", bson.D{{Key: "parent_id", Value: 1}, {Key: "nama_ci", Value: 1}}),
			idx("idx_units_leader", bson.D{{Key: "leader_id", Value: 1}}),
			idx("idx_units_tipe_nameci", bson.D{{Key: "tipe", Value: 1}, {Key: "nama_ci", Value: 1}}),
		}},
		{"dosen", []mongo.IndexModel{
			uniq("uniq_dosen_nidn", bson.D{{Key: "nidn", Value: 1}}),
			idx("idx_dosen_unit", bson.D{{Key: "unit_id", Value: 1}}),
			idx("idx_dosen_nameci", bson.D{{Key: "nama_ci", Value: 1}, {Key: "_id", Value: 1}}),
		}},
		{"periodes", []mongo.IndexModel{
			uniq("uniq_periodes_kodeci", bson.D{{Key: "kode_ci", Value: 1}}),
			// Backstop for the single-active flip: a second active row cannot be written.
			{
				Keys: bson.D{{Key: "is_active", Value: 1}},
				Options: options.Index().
					SetName("uniq_periodes_active").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"is_active": true}),
			},
			idx("idx_periodes_mulai", bson.D{{Key: "mulai", Value: -1}}),
		}},
		{"surveys", []mongo.IndexModel{
			idx("idx_surveys_judulci", bson.D{{Key: "judul_ci", Value: 1}, {Key: "_id", Value: 1}}),
			idx("idx_surveys_periode", bson.D{{Key: "periode_id", Value: 1}}),
		}},
		{"survey_questions", []mongo.IndexModel{
			idx("idx_questions_survey_order", bson.D{{Key: "survey_id", Value: 1}, {Key: "order", Value: 1}}),
		}},
		{"survey_options", []mongo.IndexModel{
			idx("idx_options_question_order", bson.D{{Key: "question_id", Value: 1}, {Key: "order", Value: 1}}),
		}},
		{"standar_mutu", []mongo.IndexModel{
			uniq("uniq_standar_kodeci", bson.D{{Key: "kode_ci", Value: 1}}),
			idx("idx_standar_nameci", bson.D{{Key: "nama_ci", Value: 1}, {Key: "_id", Value: 1}}),
		}},
		{"indikator", []mongo.IndexModel{
			idx("idx_indikator_standar_order", bson.D{{Key: "standar_id", Value: 1}, {Key: "order", Value: 1}}),
		}},
		{"pertanyaan", []mongo.IndexModel{
			idx("idx_pertanyaan_indikator_order", bson.D{{Key: "indikator_id", Value: 1}, {Key: "order", Value: 1}}),
		}},
		{"documents", []mongo.IndexModel{
			uniq("uniq_documents_storagekey", bson.D{{Key: "storage_key", Value: 1}}),
			idx("idx_documents_kategori_judulci", bson.D{{Key: "kategori", Value: 1}, {Key: "judul_ci", Value: 1}}),
			idx("idx_documents_unit", bson.D{{Key: "unit_id", Value: 1}}),
			idx("idx_documents_periode", bson.D{{Key: "periode_id", Value: 1}}),
		}},
	}
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			continue
		}
		out[keySig(ix.Key)] = ix
	}
	return out, cur.Err()
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, log *zap.Logger) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes to reconcile.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		unique := boolVal(m.Options.Unique)
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if boolVal(ex.Unique) == unique && ex.Name == name {
				log.Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", name))
				continue
			}
			// Options or name differ: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if unique && isDuplicateKeyErr(err) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present on %s)", coll.Name(), name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			log.Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", sig),
				zap.Error(err))
			continue
		}
		log.Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
