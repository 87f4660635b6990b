package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const enStrings = `{
  "config": {
    "step": {
      "manual": {
        "title": "Connect to {name}",
        "data": {"url": "URL of the server"}
      }
    },
    "error": {"cannot_connect": "Failed to connect to {url}"}
  },
  "services": {
    "search": {
      "name": "Search",
      "description": "Perform a global search on the library and all providers.",
      "fields": {
        "query": {"name": "Search query", "description": "The search query."},
        "limit": {"name": "Limit", "description": "Maximum number of items to return."}
      }
    },
    "play_media": {
      "name": "Play media",
      "fields": {
        "media_id": {"name": "Media ID"}
      }
    }
  },
  "selector": {
    "enqueue": {
      "options": {
        "play": "Play now",
        "replace": "Play now and clear queue",
        "next": "Play next",
        "replace_next": "Play next and clear queue",
        "add": "Add to queue"
      }
    }
  }
}`

const zhStrings = `{
  "services": {
    "search": {
      "name": "搜索",
      "fields": {
        "query": {"name": "搜索查询", "description": "搜索查询。"}
      }
    }
  }
}`

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	en, err := Load(language.English, []byte(enStrings), ".json")
	require.NoError(t, err)
	zh, err := Load(language.Chinese, []byte(zhStrings), ".json")
	require.NoError(t, err)
	return NewCatalog([]*Table{en, zh})
}

func Test_Catalog_FallbackChain(t *testing.T) {
	c := testCatalog(t)

	t.Run("exact locale", func(t *testing.T) {
		assert.Equal(t, "搜索查询。", c.Resolve("zh", "services.search.fields.query.description"))
	})

	t.Run("regional locale falls back to base language", func(t *testing.T) {
		assert.Equal(t, "搜索查询。", c.Resolve("zh-CN", "services.search.fields.query.description"))
	})

	t.Run("untranslated locale falls back to default", func(t *testing.T) {
		assert.Equal(t, "The search query.", c.Resolve("fr", "services.search.fields.query.description"))
	})

	t.Run("partially translated locale falls back per key", func(t *testing.T) {
		assert.Equal(t, "搜索", c.Resolve("zh", "services.search.name"))
		assert.Equal(t, "Maximum number of items to return.", c.Resolve("zh", "services.search.fields.limit.description"))
	})

	t.Run("unknown path resolves to the path itself", func(t *testing.T) {
		assert.Equal(t, "services.nope.name", c.Resolve("en", "services.nope.name"))
	})
}

func Test_Catalog_Format(t *testing.T) {
	c := testCatalog(t)

	t.Run("substitutes placeholders", func(t *testing.T) {
		s, warnings := c.Format("en", "config.step.manual.title", map[string]string{"name": "Music Assistant"})
		assert.Equal(t, "Connect to Music Assistant", s)
		assert.Empty(t, warnings)
	})

	t.Run("missing placeholder stays verbatim with warning", func(t *testing.T) {
		s, warnings := c.Format("en", "config.error.cannot_connect", nil)
		assert.Equal(t, "Failed to connect to {url}", s)
		require.Len(t, warnings, 1)
		assert.Equal(t, "url", warnings[0].Placeholder)
		assert.Equal(t, "config.error.cannot_connect", warnings[0].Path)
	})
}

func Test_Catalog_OptionLabel(t *testing.T) {
	c := testCatalog(t)

	assert.Equal(t, "Play next", c.OptionLabel("en", "enqueue", "next"))
	// Untranslated key and option both fall back to the raw option value.
	assert.Equal(t, "artist", c.OptionLabel("en", "media_type", "artist"))
	assert.Equal(t, "next", c.OptionLabel("en", "", "next"))
}

func Test_Catalog_CacheStableAcrossLookups(t *testing.T) {
	c := testCatalog(t)

	first := c.Resolve("zh-CN", "services.search.fields.query.description")
	second := c.Resolve("zh-CN", "services.search.fields.query.description")
	assert.Equal(t, first, second)
}

func Test_Catalog_Replace_InvalidatesCache(t *testing.T) {
	en, err := Load(language.English, []byte(`{"services": {"search": {"name": "Search"}}}`), ".json")
	require.NoError(t, err)
	c := NewCatalog([]*Table{en})

	assert.Equal(t, "Search", c.Resolve("en", "services.search.name"))

	updated, err := Load(language.English, []byte(`{"services": {"search": {"name": "Find"}}}`), ".json")
	require.NoError(t, err)
	c.Replace([]*Table{updated})

	assert.Equal(t, "Find", c.Resolve("en", "services.search.name"))
}

func Test_Load_Idempotent(t *testing.T) {
	a, err := Load(language.English, []byte(enStrings), ".json")
	require.NoError(t, err)
	b, err := Load(language.English, []byte(enStrings), ".json")
	require.NoError(t, err)

	assert.Equal(t, a.Keys(), b.Keys())
	for _, key := range a.Keys() {
		av, _ := a.Lookup(key)
		bv, _ := b.Lookup(key)
		assert.Equal(t, av, bv)
	}
}

func Test_Load_RejectsNonStringLeaf(t *testing.T) {
	_, err := Load(language.English, []byte(`{"services": {"search": {"limit": 5}}}`), ".json")
	assert.Error(t, err)
}

func Test_Load_YAMLTable(t *testing.T) {
	table, err := Load(language.German, []byte("services:\n  search:\n    name: Suche\n"), ".yaml")
	require.NoError(t, err)
	v, ok := table.Lookup("services.search.name")
	require.True(t, ok)
	assert.Equal(t, "Suche", v)
}
