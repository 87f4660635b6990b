package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthkit/servicekit/schema"
)

func def(id string) *schema.ServiceDefinition {
	return &schema.ServiceDefinition{ID: id}
}

func Test_Registry_LoadAndGet(t *testing.T) {
	r := New()
	require.NoError(t, r.Load(def("play_media"), def("search")))

	got, ok := r.Get("search")
	require.True(t, ok)
	assert.Equal(t, "search", got.ID)

	_, ok = r.Get("unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"play_media", "search"}, r.List())
}

func Test_Registry_DuplicateService(t *testing.T) {
	r := New()
	require.NoError(t, r.Load(def("search")))

	err := r.Load(def("search"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrDuplicateService))

	var derr *schema.DuplicateServiceError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "search", derr.Service)
}

func Test_Registry_FailedLoadPublishesNothing(t *testing.T) {
	r := New()
	require.NoError(t, r.Load(def("search")))

	err := r.Load(def("play_media"), def("search"))
	require.Error(t, err)

	// The batch containing the duplicate must not leak its valid members.
	_, ok := r.Get("play_media")
	assert.False(t, ok)
	assert.Equal(t, []string{"search"}, r.List())
}

func Test_Registry_LoadCheck(t *testing.T) {
	boom := errors.New("boom")
	r := New(WithLoadCheck(func(defs []*schema.ServiceDefinition) error {
		for _, d := range defs {
			if d.ID == "bad" {
				return boom
			}
		}
		return nil
	}))

	require.NoError(t, r.Load(def("good")))
	assert.ErrorIs(t, r.Load(def("bad")), boom)
	assert.Equal(t, []string{"good"}, r.List())
}

func Test_Registry_Reload_SwapsWholeTable(t *testing.T) {
	r := New()
	require.NoError(t, r.Load(def("play_media"), def("search")))

	require.NoError(t, r.Reload([]*schema.ServiceDefinition{def("search")}))
	assert.Equal(t, []string{"search"}, r.List())

	_, ok := r.Get("play_media")
	assert.False(t, ok)
}

func Test_Registry_Snapshot_PreservesRegistrationOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.Load(def("zeta"), def("alpha")))

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "zeta", snap[0].ID)
	assert.Equal(t, "alpha", snap[1].ID)
}
