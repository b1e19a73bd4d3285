package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaContract declares the JSON shape a model response must satisfy for
// one task. The same map is attached to structured-output requests and used
// for local validation.
type SchemaContract struct {
	Name        string
	Description string
	Schema      map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Validate checks an already-decoded JSON value against the contract.
func (c *SchemaContract) Validate(v any) error {
	c.once.Do(c.compile)
	if c.err != nil {
		return c.err
	}
	if err := c.compiled.Validate(v); err != nil {
		return fmt.Errorf("json does not match %s schema: %w", c.Name, err)
	}
	return nil
}

func (c *SchemaContract) compile() {
	b, err := json.Marshal(c.Schema)
	if err != nil {
		c.err = fmt.Errorf("marshal schema: %w", err)
		return
	}
	url := c.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		c.err = fmt.Errorf("add schema: %w", err)
		return
	}
	c.compiled, c.err = compiler.Compile(url)
	if c.err != nil {
		c.err = fmt.Errorf("compile schema: %w", c.err)
	}
}

// JSON renders the schema for embedding in a prompt.
func (c *SchemaContract) JSON() string {
	b, _ := json.MarshalIndent(c.Schema, "", "  ")
	return string(b)
}

func stringList() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

func score() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": 100}
}

func strictObject(props map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

var EvaluationContract = &SchemaContract{
	Name:        "evaluation_report",
	Description: "Rubric evaluation of a resume or cover letter plus an improved version.",
	Schema: strictObject(map[string]any{
		"report": strictObject(map[string]any{
			"overallScore": score(),
			"rubricScores": strictObject(map[string]any{
				"readability": score(),
				"impact":      score(),
				"structure":   score(),
				"specificity": score(),
				"roleFit":     score(),
			}, "readability", "impact", "structure", "specificity", "roleFit"),
			"strengths":  stringList(),
			"weaknesses": stringList(),
			"actionableEdits": map[string]any{
				"type": "array",
				"items": strictObject(map[string]any{
					"section":    map[string]any{"type": "string"},
					"issue":      map[string]any{"type": "string"},
					"suggestion": map[string]any{"type": "string"},
				}, "section", "issue", "suggestion"),
			},
			"redFlags": stringList(),
			"summary":  map[string]any{"type": "string"},
		}, "overallScore", "rubricScores", "strengths", "weaknesses", "actionableEdits", "redFlags", "summary"),
		"improvedVersion": map[string]any{"type": "string"},
	}, "report", "improvedVersion"),
}

var SummaryContract = &SchemaContract{
	Name:        "resume_summary",
	Description: "Bullet summary, one-line summary and keywords of a resume.",
	Schema: strictObject(map[string]any{
		"bulletSummary": stringList(),
		"oneLiner":      map[string]any{"type": "string"},
		"keywords":      stringList(),
	}, "bulletSummary", "oneLiner", "keywords"),
}

var ProofreadContract = &SchemaContract{
	Name:        "proofread_response",
	Description: "Grammatically corrected text with per-section comments.",
	Schema: strictObject(map[string]any{
		"correctedText": map[string]any{"type": "string"},
		"comments": map[string]any{
			"type": "array",
			"items": strictObject(map[string]any{
				"lineOrSection": map[string]any{"type": "string"},
				"comment":       map[string]any{"type": "string"},
			}, "lineOrSection", "comment"),
		},
	}, "correctedText", "comments"),
}
