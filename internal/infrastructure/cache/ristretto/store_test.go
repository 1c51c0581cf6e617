package ristretto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

func TestNewStore_RejectsNonPositiveCost(t *testing.T) {
	_, err := NewStore(0)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestStore_SetGetDelete(t *testing.T) {
	s, err := NewStore(1 << 20)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "score:comprehensive:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "score:comprehensive:1", []byte(`{"total_score":81}`), time.Minute))
	val, ok, err := s.Get(ctx, "score:comprehensive:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"total_score":81}`, string(val))

	require.NoError(t, s.Delete(ctx, "score:comprehensive:1"))
	_, ok, _ = s.Get(ctx, "score:comprehensive:1")
	assert.False(t, ok)
}

func TestStore_SetRejectsNonPositiveTTL(t *testing.T) {
	s, err := NewStore(1 << 20)
	require.NoError(t, err)
	defer s.Close()

	err = s.Set(context.Background(), "k", []byte("v"), 0)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

//Personal.AI order the ending
