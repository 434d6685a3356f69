package assessment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"PAIBot/internal/model"
)

// Result is a validated inference result.
type Result struct {
	Analysis     string               `json:"analysis"`
	ScoresUpdate model.PartialProfile `json:"scores_update"`
	NextStage    model.Stage          `json:"next_stage"`
	NextQuestion string               `json:"next_question"`
	Reasoning    string               `json:"reasoning"`
}

// The wire types mirror the response schema exactly. Pointers distinguish
// absent fields from zero values.
type wireResult struct {
	Analysis     *string     `json:"analysis" validate:"required"`
	ScoresUpdate *wireScores `json:"scores_update" validate:"required"`
	NextStage    *string     `json:"next_stage" validate:"required"`
	NextQuestion *string     `json:"next_question" validate:"required"`
	Reasoning    *string     `json:"reasoning" validate:"required"`
}

type wireScores struct {
	Risk          *wireEstimate `json:"risk"`
	TimeHorizon   *wireEstimate `json:"timeHorizon"`
	GoalType      *string       `json:"goalType" validate:"omitempty,oneof=growth income preservation impact"`
	ESG           *wireESG      `json:"esg"`
	Biases        []wireBias    `json:"biases" validate:"omitempty,dive"`
	SDGPriorities []int         `json:"sdgPriorities" validate:"omitempty,unique,dive,min=1,max=17"`
}

type wireEstimate struct {
	Raw        *float64 `json:"raw" validate:"omitempty,min=0,max=100"`
	Confidence *float64 `json:"confidence" validate:"omitempty,min=0,max=1"`
}

type wireESG struct {
	Environmental *float64 `json:"environmental" validate:"omitempty,min=0,max=100"`
	Social        *float64 `json:"social" validate:"omitempty,min=0,max=100"`
	Governance    *float64 `json:"governance" validate:"omitempty,min=0,max=100"`
}

type wireBias struct {
	Type     *string `json:"type" validate:"required,oneof=loss_aversion overconfidence herding anchoring confirmation recency"`
	Strength *string `json:"strength" validate:"required,oneof=low medium high"`
	Evidence *string `json:"evidence" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeResult strictly parses raw inference output. Unknown fields, trailing
// data, missing required fields, unknown enumeration values and out-of-range
// numbers are all rejected with ErrMalformedResult.
func DecodeResult(raw []byte) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var w wireResult
	if err := dec.Decode(&w); err != nil {
		return nil, malformed("decode: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("trailing data after result")
	}
	if err := validate.Struct(&w); err != nil {
		return nil, malformed("%s", describe(err))
	}

	stage, err := ParseStage(*w.NextStage)
	if err != nil {
		return nil, err
	}

	return &Result{
		Analysis:     *w.Analysis,
		ScoresUpdate: w.ScoresUpdate.partial(),
		NextStage:    stage,
		NextQuestion: *w.NextQuestion,
		Reasoning:    *w.Reasoning,
	}, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := strings.TrimPrefix(fe.Namespace(), "wireResult.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", ns, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", ns, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func (w *wireScores) partial() model.PartialProfile {
	var p model.PartialProfile
	if w.Risk != nil {
		p.Risk = &model.PartialEstimate{Raw: w.Risk.Raw, Confidence: w.Risk.Confidence}
	}
	if w.TimeHorizon != nil {
		p.TimeHorizon = &model.PartialEstimate{Raw: w.TimeHorizon.Raw, Confidence: w.TimeHorizon.Confidence}
	}
	if w.GoalType != nil {
		g := model.GoalType(*w.GoalType)
		p.GoalType = &g
	}
	if w.ESG != nil {
		p.ESG = &model.PartialESG{
			Environmental: w.ESG.Environmental,
			Social:        w.ESG.Social,
			Governance:    w.ESG.Governance,
		}
	}
	if w.Biases != nil {
		p.Biases = make([]model.Bias, 0, len(w.Biases))
		for _, b := range w.Biases {
			p.Biases = append(p.Biases, model.Bias{
				Type:     model.BiasType(*b.Type),
				Strength: model.Strength(*b.Strength),
				Evidence: *b.Evidence,
			})
		}
	}
	if w.SDGPriorities != nil {
		p.SDGPriorities = append(make([]int, 0, len(w.SDGPriorities)), w.SDGPriorities...)
	}
	return p
}
