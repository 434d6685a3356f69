// Package llm adapts hosted language models to the assessment Inferencer.
package llm

import (
	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/genai"

	"PAIBot/internal/model"
)

// SchemaName labels the structured output contract sent to providers.
const SchemaName = "assessment_turn"

func tokens[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

// Schema returns the response contract as a JSON schema for the OpenAI API.
// Value ranges are repeated in descriptions since not every provider enforces them.
func Schema() *jsonschema.Definition {
	score := func(desc string) jsonschema.Definition {
		return jsonschema.Definition{Type: jsonschema.Number, Description: desc}
	}
	estimate := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"raw":        score("score 0-100"),
			"confidence": score("confidence 0-1"),
		},
		AdditionalProperties: false,
	}
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"analysis": {Type: jsonschema.String},
			"scores_update": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"risk":        estimate,
					"timeHorizon": estimate,
					"goalType":    {Type: jsonschema.String, Enum: tokens(model.GoalTypes)},
					"esg": {
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"environmental": score("0-100"),
							"social":        score("0-100"),
							"governance":    score("0-100"),
						},
						AdditionalProperties: false,
					},
					"biases": {
						Type: jsonschema.Array,
						Items: &jsonschema.Definition{
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"type":     {Type: jsonschema.String, Enum: tokens(model.BiasTypes)},
								"strength": {Type: jsonschema.String, Enum: tokens(model.Strengths)},
								"evidence": {Type: jsonschema.String},
							},
							Required:             []string{"type", "strength", "evidence"},
							AdditionalProperties: false,
						},
					},
					"sdgPriorities": {
						Type:        jsonschema.Array,
						Description: "distinct UN SDG numbers 1-17",
						Items:       &jsonschema.Definition{Type: jsonschema.Integer},
					},
				},
				AdditionalProperties: false,
			},
			"next_stage":    {Type: jsonschema.String, Enum: tokens(model.Stages)},
			"next_question": {Type: jsonschema.String},
			"reasoning":     {Type: jsonschema.String},
		},
		Required:             []string{"analysis", "scores_update", "next_stage", "next_question", "reasoning"},
		AdditionalProperties: false,
	}
}

// GeminiSchema mirrors Schema for the native Gemini API.
func GeminiSchema() *genai.Schema {
	between := func(lo, hi float64) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Minimum: genai.Ptr(lo), Maximum: genai.Ptr(hi)}
	}
	estimate := func() *genai.Schema {
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"raw":        between(0, 100),
				"confidence": between(0, 1),
			},
		}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"analysis": {Type: genai.TypeString},
			"scores_update": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"risk":        estimate(),
					"timeHorizon": estimate(),
					"goalType":    {Type: genai.TypeString, Enum: tokens(model.GoalTypes)},
					"esg": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"environmental": between(0, 100),
							"social":        between(0, 100),
							"governance":    between(0, 100),
						},
					},
					"biases": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"type":     {Type: genai.TypeString, Enum: tokens(model.BiasTypes)},
								"strength": {Type: genai.TypeString, Enum: tokens(model.Strengths)},
								"evidence": {Type: genai.TypeString},
							},
							Required: []string{"type", "strength", "evidence"},
						},
					},
					"sdgPriorities": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeInteger, Minimum: genai.Ptr(1.0), Maximum: genai.Ptr(17.0)},
					},
				},
			},
			"next_stage":    {Type: genai.TypeString, Enum: tokens(model.Stages)},
			"next_question": {Type: genai.TypeString},
			"reasoning":     {Type: genai.TypeString},
		},
		Required:         []string{"analysis", "scores_update", "next_stage", "next_question", "reasoning"},
		PropertyOrdering: []string{"analysis", "scores_update", "next_stage", "next_question", "reasoning"},
	}
}
