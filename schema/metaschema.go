package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed metaschema.json
var metaSchemaJSON string

var (
	metaOnce   sync.Once
	metaSchema *jsonschema.Schema
	metaErr    error
)

// documentSchema compiles the embedded meta-schema once. The meta-schema is
// the structural gate applied to raw definition documents before the typed
// decode runs.
func documentSchema() (*jsonschema.Schema, error) {
	metaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("servicedef.json", strings.NewReader(metaSchemaJSON)); err != nil {
			metaErr = fmt.Errorf("adding meta-schema resource: %w", err)
			return
		}
		metaSchema, metaErr = compiler.Compile("servicedef.json")
	})
	return metaSchema, metaErr
}

// checkDocument validates a generically decoded definition document against
// the meta-schema.
func checkDocument(doc any) error {
	ms, err := documentSchema()
	if err != nil {
		return err
	}
	if err := ms.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
