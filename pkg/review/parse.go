package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMalformed marks structural failures: the model output could not be
// coerced into the analysis shape. Semantic problems (taxonomy membership,
// sentiment values) are the validator's concern, not this package's.
var ErrMalformed = errors.New("malformed response")

// analysisSchema is the structural contract for one analysis. It checks
// shape only: required fields, non-empty text, confidence bounds.
const analysisSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["labels"],
	"properties": {
		"language": {"type": "string"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"labels": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["category", "subcategory", "sentiment"],
				"properties": {
					"category": {"type": "string", "minLength": 1},
					"subcategory": {"type": "string", "minLength": 1},
					"sentiment": {"type": "string", "minLength": 1},
					"confidence": {"type": "number", "minimum": 0, "maximum": 1},
					"snippet": {"type": "string"}
				}
			}
		}
	}
}`

var compiledSchema = func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("analysis.json", strings.NewReader(analysisSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile("analysis.json")
}()

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSON pulls the JSON document out of a raw model response. Fenced
// code blocks are preferred; otherwise the outermost brace pair is taken.
func ExtractJSON(raw string) (string, error) {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found in response", ErrMalformed)
	}
	return raw[start : end+1], nil
}

// Parse turns a raw model response into a candidate Analysis. It fails
// closed: any shape mismatch yields an error wrapping ErrMalformed. The
// returned analysis has not been checked against the taxonomy.
func Parse(raw string) (Analysis, error) {
	doc, err := ExtractJSON(raw)
	if err != nil {
		return Analysis{}, err
	}

	var untyped any
	if err := json.Unmarshal([]byte(doc), &untyped); err != nil {
		return Analysis{}, fmt.Errorf("%w: invalid JSON: %v", ErrMalformed, err)
	}

	if err := compiledSchema.Validate(untyped); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrMalformed, schemaFailureSummary(err))
	}

	var candidate Analysis
	if err := json.Unmarshal([]byte(doc), &candidate); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	candidate.Issues = nil

	return candidate, nil
}

// schemaFailureSummary flattens a jsonschema validation error into the leaf
// causes, which name the offending fields; the root message alone does not.
func schemaFailureSummary(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}

	leaves := leafCauses(ve)
	parts := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		loc := leaf.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", loc, leaf.Message))
	}
	return strings.Join(parts, "; ")
}

func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leafCauses(c)...)
	}
	return out
}
