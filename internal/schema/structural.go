package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tacogips/clismith/internal/config"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed clismith.schema.json
var documentSchema []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	sch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded document schema: %w", err)
	}
	return sch, nil
})

// DocumentSchema returns the JSON Schema that configuration documents must
// satisfy structurally.
func DocumentSchema() []byte {
	out := make([]byte, len(documentSchema))
	copy(out, documentSchema)
	return out
}

// checkStructure validates the shape and primitive types of doc. The
// returned error is non-nil only when the embedded schema itself is broken.
func checkStructure(doc *config.Mapping) (SchemaErrors, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc.ToPlain())
	if err != nil {
		return nil, fmt.Errorf("encode document to JSON: %w", err)
	}
	result, err := sch.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("structural validation: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	var errs SchemaErrors
	for _, verr := range result.Errors() {
		errs = append(errs, convertResultError(verr))
	}
	return errs, nil
}

func convertResultError(verr gojsonschema.ResultError) *SchemaError {
	field := verr.Field()
	if field == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
		field = ""
	}
	details := verr.Details()
	property, _ := details["property"].(string)

	switch verr.Type() {
	case "required":
		return &SchemaError{Kind: KindMissing, Path: joinPath(field, property), Reason: "required field is missing"}
	case "string_gte":
		return &SchemaError{Kind: KindMissing, Path: field, Reason: "must not be empty"}
	case "invalid_type":
		return &SchemaError{
			Kind:   KindType,
			Path:   field,
			Reason: fmt.Sprintf("expected %v, got %v", details["expected"], details["given"]),
		}
	case "additional_property_not_allowed":
		return &SchemaError{Kind: KindInvalidValue, Path: joinPath(field, property), Reason: "unknown field"}
	default:
		return &SchemaError{Kind: KindInvalidValue, Path: field, Reason: verr.Description()}
	}
}
