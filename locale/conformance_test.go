package locale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/hearthkit/servicekit/schema"
)

func enqueueDefs(t *testing.T) []*schema.ServiceDefinition {
	t.Helper()
	defs, err := schema.Load([]byte(`
play_media:
  fields:
    enqueue:
      selector:
        select:
          options: [play, replace, next, replace_next, add]
          translation_key: enqueue
`))
	require.NoError(t, err)
	return defs
}

func Test_CheckConformance_InLockStep(t *testing.T) {
	table, err := Load(language.English, []byte(`{
	  "selector": {"enqueue": {"options": {
	    "play": "Play now",
	    "replace": "Play now and clear queue",
	    "next": "Play next",
	    "replace_next": "Play next and clear queue",
	    "add": "Add to queue"
	  }}}
	}`), ".json")
	require.NoError(t, err)

	assert.NoError(t, CheckConformance(enqueueDefs(t), table))
}

func Test_CheckConformance_MissingLabel(t *testing.T) {
	table, err := Load(language.English, []byte(`{
	  "selector": {"enqueue": {"options": {
	    "play": "Play now",
	    "replace": "Play now and clear queue",
	    "next": "Play next",
	    "replace_next": "Play next and clear queue"
	  }}}
	}`), ".json")
	require.NoError(t, err)

	err = CheckConformance(enqueueDefs(t), table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConformance))

	var cerr *ConformanceError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"add"}, cerr.Missing)
	assert.Empty(t, cerr.Extra)
	assert.Equal(t, "enqueue", cerr.TranslationKey)
}

func Test_CheckConformance_StaleLabel(t *testing.T) {
	table, err := Load(language.English, []byte(`{
	  "selector": {"enqueue": {"options": {
	    "play": "Play now",
	    "replace": "Play now and clear queue",
	    "next": "Play next",
	    "replace_next": "Play next and clear queue",
	    "add": "Add to queue",
	    "shuffle": "Shuffle in"
	  }}}
	}`), ".json")
	require.NoError(t, err)

	err = CheckConformance(enqueueDefs(t), table)
	var cerr *ConformanceError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"shuffle"}, cerr.Extra)
	assert.Empty(t, cerr.Missing)
}

func Test_CheckConformance_AbsentSectionIsFine(t *testing.T) {
	table, err := Load(language.Chinese, []byte(`{"services": {"play_media": {"name": "播放媒体"}}}`), ".json")
	require.NoError(t, err)

	assert.NoError(t, CheckConformance(enqueueDefs(t), table))
}
