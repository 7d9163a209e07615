package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/agentrules/hookctl/pkg/logger"
)

var schemaLog = logger.New("hooks:config:schema")

//go:embed schemas/rule_schema.json
var ruleSchemaJSON string

var (
	ruleSchemaOnce   sync.Once
	compiledRuleSchema *jsonschema.Schema
	ruleSchemaError  error
)

const ruleSchemaURL = "https://agentrules.dev/schemas/hook-rule.json"

func getRuleSchema() (*jsonschema.Schema, error) {
	ruleSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		var doc any
		if err := json.Unmarshal([]byte(ruleSchemaJSON), &doc); err != nil {
			ruleSchemaError = fmt.Errorf("parse embedded rule schema: %w", err)
			return
		}
		if err := compiler.AddResource(ruleSchemaURL, doc); err != nil {
			ruleSchemaError = fmt.Errorf("add rule schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile(ruleSchemaURL)
		if err != nil {
			ruleSchemaError = fmt.Errorf("compile rule schema: %w", err)
			return
		}
		compiledRuleSchema = schema
	})
	return compiledRuleSchema, ruleSchemaError
}

// validateRuleShape checks a raw rule table against the rule schema before
// decodeRule attempts field-by-field decoding. This catches shape errors
// (wrong type for a known field, unrecognized enum value) with a single
// clear message instead of decodeRule's narrower per-field checks, which
// still run afterward as a defense in depth for anything the schema can't
// express (e.g. the shell action's command-xor-script rule).
func validateRuleShape(raw map[string]any) error {
	schema, err := getRuleSchema()
	if err != nil {
		schemaLog.Printf("rule schema unavailable, skipping shape validation: %v", err)
		return nil
	}
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
