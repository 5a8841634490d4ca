package model

import (
	"sort"

	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
)

var schemaTypes = map[string]func() any{
	"request": func() any { return &AnalysisRequest{} },
	"result":  func() any { return &AnalysisResult{} },
	"history": func() any { return &HistoryRecord{} },
}

// SchemaNames lists the names accepted by Schema.
func SchemaNames() []string {
	names := make([]string, 0, len(schemaTypes))
	for n := range schemaTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Schema returns the JSON Schema of a wire type by name.
func Schema(name string) (*jsonschema.Schema, error) {
	newValue, ok := schemaTypes[name]
	if !ok {
		return nil, eris.Errorf("model: unknown schema %q", name)
	}
	reflector := jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	return reflector.Reflect(newValue()), nil
}
