package ordering

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPositions_OneBased(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	got := Positions([]primitive.ObjectID{c, a, b})
	assert.Equal(t, []Position{{c, 1}, {a, 2}, {b, 3}}, got)
	assert.Empty(t, Positions(nil))
}

func TestNext(t *testing.T) {
	tests := []struct {
		max  int
		want int
	}{
		{0, 1},
		{5, 6},
		{-3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Next(tt.max), "Next(%d)", tt.max)
	}
}

func TestValidateIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	tests := []struct {
		name    string
		in      []string
		wantErr error
	}{
		{"empty", nil, ErrNoIDs},
		{"malformed", []string{a.Hex(), "nope"}, ErrMalformedID},
		{"duplicate", []string{a.Hex(), b.Hex(), a.Hex()}, ErrDuplicateID},
		{"ok", []string{b.Hex(), a.Hex()}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := ValidateIDs(tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []primitive.ObjectID{b, a}, ids)
		})
	}
}

func TestResult_Skipped(t *testing.T) {
	assert.Equal(t, int64(1), Result{Submitted: 3, Matched: 2}.Skipped())
	assert.Equal(t, int64(0), Result{Submitted: 2, Matched: 2}.Skipped())
}

func TestLocker_SerializesSameKey(t *testing.T) {
	var l Locker
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("parent")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, l.size(), "entries released")
}

func TestLocker_DistinctKeysDoNotBlock(t *testing.T) {
	var l Locker
	unlockA := l.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := l.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a distinct key blocked")
	}
}
