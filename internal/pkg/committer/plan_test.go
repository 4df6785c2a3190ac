package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_AddSkipsNil(t *testing.T) {
	p := NewPlan("catalog.test")
	require.True(t, p.IsEmpty())

	p.Add(nil, spanner.Delete("catalog_entities", spanner.Key{"a"}), nil)
	p.Add()

	assert.False(t, p.IsEmpty())
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, "catalog.test", p.Tag())
}

func TestAdapter_ApplyEmptyPlanIsNoop(t *testing.T) {
	a := NewAdapter(nil)

	require.NoError(t, a.Apply(context.Background(), nil))
	require.NoError(t, a.Apply(context.Background(), NewPlan("catalog.test")))
}

func TestAdapter_ApplyWithoutClient(t *testing.T) {
	a := NewAdapter(nil)
	p := NewPlan("catalog.test")
	p.Add(spanner.Delete("catalog_entities", spanner.Key{"a"}))

	err := a.Apply(context.Background(), p)
	require.ErrorIs(t, err, ErrNoClient)
}

func TestAdapter_ApplyCheckedSkipsCheckForEmptyPlan(t *testing.T) {
	a := NewAdapter(nil)
	called := false
	err := a.ApplyChecked(context.Background(), NewPlan("catalog.test"), func(context.Context, *spanner.ReadWriteTransaction) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}
