package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mediaServicesDoc = `
play_media:
  target:
    entity:
      domain: media_player
      integration: mass
  fields:
    media_id:
      required: true
      example: "spotify://playlist/aabbccddeeff"
      selector:
        object: {}
    media_type:
      required: false
      example: playlist
      selector:
        select:
          options:
            - artist
            - album
            - playlist
            - track
            - radio
    enqueue:
      exclusive: enqueue_announce
      filter:
        supported_features:
          - media_player.MediaPlayerEntityFeature.MEDIA_ENQUEUE
      selector:
        select:
          options:
            - play
            - replace
            - next
            - replace_next
            - add
          translation_key: enqueue
    announce:
      exclusive: enqueue_announce
      filter:
        supported_features:
          - media_player.MediaPlayerEntityFeature.MEDIA_ANNOUNCE
      selector:
        boolean:
    radio_mode:
      advanced: true
      selector:
        boolean:

search:
  fields:
    query:
      required: true
      example: "We Are The Champions"
      selector:
        text:
    media_type:
      selector:
        select:
          multiple: true
          options:
            - artist
            - album
            - playlist
            - track
            - radio
    limit:
      default: 5
      example: 25
      selector:
        number:
          min: 1
          max: 100
          step: 1
`

func Test_Load_MediaServices(t *testing.T) {
	defs, err := Load([]byte(mediaServicesDoc))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	play, search := defs[0], defs[1]

	t.Run("service order preserved", func(t *testing.T) {
		assert.Equal(t, "play_media", play.ID)
		assert.Equal(t, "search", search.ID)
	})

	t.Run("target rule", func(t *testing.T) {
		require.NotNil(t, play.Target)
		assert.Equal(t, "media_player", play.Target.Domain)
		assert.Equal(t, "mass", play.Target.Integration)
		assert.Nil(t, search.Target)
	})

	t.Run("field order preserved", func(t *testing.T) {
		names := make([]string, 0, len(play.Fields))
		for _, f := range play.Fields {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"media_id", "media_type", "enqueue", "announce", "radio_mode"}, names)

		names = names[:0]
		for _, f := range search.Fields {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"query", "media_type", "limit"}, names)
	})

	t.Run("selector kinds", func(t *testing.T) {
		mediaID, ok := play.Field("media_id")
		require.True(t, ok)
		assert.Equal(t, SelectorObject, mediaID.Selector.Kind)
		assert.True(t, mediaID.Required)
		assert.Equal(t, "spotify://playlist/aabbccddeeff", mediaID.Example)

		enqueue, ok := play.Field("enqueue")
		require.True(t, ok)
		assert.Equal(t, SelectorSelect, enqueue.Selector.Kind)
		assert.Equal(t, []string{"play", "replace", "next", "replace_next", "add"}, enqueue.Selector.Options)
		assert.Equal(t, "enqueue", enqueue.Selector.TranslationKey)
		assert.False(t, enqueue.Selector.Multiple)
		assert.Equal(t, "enqueue_announce", enqueue.Exclusive)

		radioMode, ok := play.Field("radio_mode")
		require.True(t, ok)
		assert.Equal(t, SelectorBoolean, radioMode.Selector.Kind)
		assert.True(t, radioMode.Advanced)

		mediaType, ok := search.Field("media_type")
		require.True(t, ok)
		assert.True(t, mediaType.Selector.Multiple)

		limit, ok := search.Field("limit")
		require.True(t, ok)
		assert.Equal(t, SelectorNumber, limit.Selector.Kind)
		require.NotNil(t, limit.Selector.Min)
		require.NotNil(t, limit.Selector.Max)
		require.NotNil(t, limit.Selector.Step)
		assert.Equal(t, 1.0, *limit.Selector.Min)
		assert.Equal(t, 100.0, *limit.Selector.Max)
		assert.Equal(t, 1.0, *limit.Selector.Step)
		assert.Equal(t, 5, limit.Default)
	})

	t.Run("filter flags", func(t *testing.T) {
		announce, ok := play.Field("announce")
		require.True(t, ok)
		require.NotNil(t, announce.Filter)
		require.Len(t, announce.Filter.SupportedFeatures, 1)
		assert.Equal(t, "media_player.MediaPlayerEntityFeature.MEDIA_ANNOUNCE",
			announce.Filter.SupportedFeatures[0].String())
	})
}

func Test_Load_Structural(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"select without options",
			"svc:\n  fields:\n    mode:\n      selector:\n        select:\n          options: []\n",
		},
		{
			"two selector kinds",
			"svc:\n  fields:\n    mode:\n      selector:\n        text:\n        boolean:\n",
		},
		{
			"min above max",
			"svc:\n  fields:\n    n:\n      selector:\n        number:\n          min: 10\n          max: 1\n",
		},
		{
			"zero step",
			"svc:\n  fields:\n    n:\n      selector:\n        number:\n          step: 0\n",
		},
		{
			"unknown selector kind",
			"svc:\n  fields:\n    n:\n      selector:\n        widget: {}\n",
		},
		{
			"unknown capability namespace",
			"svc:\n  fields:\n    f:\n      filter:\n        supported_features:\n          - made_up.Namespace.FLAG\n      selector:\n        boolean:\n",
		},
		{
			"field without selector",
			"svc:\n  fields:\n    f:\n      required: true\n",
		},
		{
			"unknown field key",
			"svc:\n  fields:\n    f:\n      widget: true\n      selector:\n        text:\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func Test_Load_EmptyDocument(t *testing.T) {
	defs, err := Load([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func Test_Load_ServiceWithoutFields(t *testing.T) {
	defs, err := Load([]byte("refresh:\n"))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "refresh", defs[0].ID)
	assert.Empty(t, defs[0].Fields)
}

func Test_Encode_RoundTrip(t *testing.T) {
	defs, err := Load([]byte(mediaServicesDoc))
	require.NoError(t, err)

	out, err := Encode(defs)
	require.NoError(t, err)

	again, err := Load(out)
	require.NoError(t, err)
	require.Len(t, again, len(defs))

	for i := range defs {
		assert.Equal(t, defs[i].ID, again[i].ID)
		assert.Equal(t, defs[i].Target, again[i].Target)
		require.Len(t, again[i].Fields, len(defs[i].Fields))
		for j := range defs[i].Fields {
			assert.Equal(t, defs[i].Fields[j].Name, again[i].Fields[j].Name)
			assert.Equal(t, defs[i].Fields[j].Required, again[i].Fields[j].Required)
			assert.Equal(t, defs[i].Fields[j].Selector, again[i].Fields[j].Selector)
			assert.Equal(t, defs[i].Fields[j].Exclusive, again[i].Fields[j].Exclusive)
			assert.Equal(t, defs[i].Fields[j].Filter, again[i].Fields[j].Filter)
		}
	}
}
