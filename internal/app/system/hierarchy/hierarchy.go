// internal/app/system/hierarchy/hierarchy.go
package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/mutuhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxDepth bounds every ancestor walk.
const MaxDepth = 32

// ErrUnitNotFound is returned by a Lookup for an unknown id.
var ErrUnitNotFound = errors.New("unit not found")

// Lookup resolves units by id.
type Lookup interface {
	Unit(ctx context.Context, id primitive.ObjectID) (models.Unit, error)
}

// Error is a rejected assignment, reported against a request field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Field + ": " + e.Message }

// AsError unwraps err into a *Error.
func AsError(err error) (*Error, bool) {
	var he *Error
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

var ranks = map[string]int{
	models.TipeUniversitas: 1,
	models.TipeFakultas:    2,
	models.TipeProdi:       3,
	models.TipeUnit:        4,
}

// Rank orders tipes from the top of the tree (1) down. Unknown tipes rank 0.
func Rank(tipe string) int { return ranks[tipe] }

// ValidTipe reports whether tipe is a known unit tipe.
func ValidTipe(tipe string) bool { return Rank(tipe) > 0 }

// Validator checks parent and leader assignments on units.
//
// Self-parenting is always rejected and the parent must exist. In Strict
// mode the parent must also rank strictly above the child, the ancestor
// chain may not pass through the unit, and a leader with a home unit must
// sit inside the unit's subtree.
type Validator struct {
	Strict bool
	Lookup Lookup
}

// ValidateParent checks assigning parentID to unit. unit.ID may be the
// id the unit will be created with.
func (v Validator) ValidateParent(ctx context.Context, unit models.Unit, parentID *primitive.ObjectID) error {
	if parentID == nil {
		return nil
	}
	if *parentID == unit.ID {
		return &Error{Field: "parent_id", Message: "A unit cannot be its own parent."}
	}

	parent, err := v.Lookup.Unit(ctx, *parentID)
	if errors.Is(err, ErrUnitNotFound) {
		return &Error{Field: "parent_id", Message: "Parent unit does not exist."}
	}
	if err != nil {
		return fmt.Errorf("load parent unit: %w", err)
	}

	if !v.Strict {
		return nil
	}

	if Rank(parent.Tipe) == 0 || Rank(parent.Tipe) >= Rank(unit.Tipe) {
		return &Error{
			Field:   "parent_id",
			Message: fmt.Sprintf("A %s cannot be placed under a %s.", unit.Tipe, parent.Tipe),
		}
	}

	within, err := v.descendsFrom(ctx, parent, unit.ID)
	if err != nil {
		return err
	}
	if within {
		return &Error{Field: "parent_id", Message: "A unit cannot be placed under one of its own sub-units."}
	}
	return nil
}

// ValidateChildren checks that unit, with its new tipe, still ranks
// strictly above every existing child. Only Strict mode enforces it.
func (v Validator) ValidateChildren(unit models.Unit, children []models.Unit) error {
	if !v.Strict {
		return nil
	}
	for _, c := range children {
		if Rank(c.Tipe) <= Rank(unit.Tipe) {
			return &Error{
				Field:   "tipe",
				Message: fmt.Sprintf("A %s cannot have a %s as a sub-unit.", unit.Tipe, c.Tipe),
			}
		}
	}
	return nil
}

// ValidateLeader checks naming leader as unit's leader.
func (v Validator) ValidateLeader(ctx context.Context, unit models.Unit, leader *models.Dosen) error {
	if leader == nil || !v.Strict || leader.UnitID == nil {
		return nil
	}
	if *leader.UnitID == unit.ID {
		return nil
	}

	home, err := v.Lookup.Unit(ctx, *leader.UnitID)
	if errors.Is(err, ErrUnitNotFound) {
		return &Error{Field: "leader_id", Message: "The leader's unit does not exist."}
	}
	if err != nil {
		return fmt.Errorf("load leader unit: %w", err)
	}

	within, err := v.descendsFrom(ctx, home, unit.ID)
	if err != nil {
		return err
	}
	if !within {
		return &Error{Field: "leader_id", Message: "The leader must belong to this unit or one of its sub-units."}
	}
	return nil
}

// descendsFrom walks up from start and reports whether ancestorID is on
// the chain (start included).
func (v Validator) descendsFrom(ctx context.Context, start models.Unit, ancestorID primitive.ObjectID) (bool, error) {
	cur := start
	for depth := 0; ; depth++ {
		if cur.ID == ancestorID {
			return true, nil
		}
		if cur.ParentID == nil {
			return false, nil
		}
		if depth >= MaxDepth {
			return false, &Error{Field: "parent_id", Message: "The unit hierarchy is too deep."}
		}
		next, err := v.Lookup.Unit(ctx, *cur.ParentID)
		if errors.Is(err, ErrUnitNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("walk unit ancestors: %w", err)
		}
		cur = next
	}
}
