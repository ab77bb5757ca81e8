package assess

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Models do not always honor structured-output instructions: responses come
// back wrapped in markdown fences, with prose around the object, or with
// numbers quoted as strings. The decoder here accepts all of those before
// giving up.

// extractJSON strips markdown fences and surrounding prose, returning the
// outermost JSON object in raw.
func extractJSON(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)

	if i := bytes.Index(raw, []byte("```")); i >= 0 {
		raw = raw[i+3:]
		raw = bytes.TrimPrefix(raw, []byte("json"))
		if j := bytes.Index(raw, []byte("```")); j >= 0 {
			raw = raw[:j]
		}
	}

	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return nil
	}
	return raw[start : end+1]
}

// flexInt decodes from a JSON number or a numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*f = flexInt(v)
	return nil
}

// flexFloat decodes from a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*f = flexFloat(v)
	return nil
}

type assessmentOutput struct {
	Score        flexInt              `json:"score"`
	Feedback     string               `json:"feedback"`
	Strengths    []string             `json:"strengths"`
	Improvements []string             `json:"improvements"`
	SkillUpdates map[string]flexFloat `json:"skill_updates"`
}

// decodeAssessment parses a model response into an Assessment, tolerating
// the common structured-output failure modes.
func decodeAssessment(raw []byte) (*Assessment, error) {
	obj := extractJSON(raw)
	if obj == nil {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var out assessmentOutput
	if err := json.Unmarshal(obj, &out); err != nil {
		return nil, fmt.Errorf("decode assessment: %w", err)
	}
	if out.Feedback == "" {
		return nil, fmt.Errorf("assessment missing feedback")
	}

	a := &Assessment{
		Score:        clampScore(int(out.Score)),
		Feedback:     out.Feedback,
		Strengths:    out.Strengths,
		Improvements: out.Improvements,
	}
	if len(out.SkillUpdates) > 0 {
		a.SkillUpdates = make(map[string]float64, len(out.SkillUpdates))
		for axis, delta := range out.SkillUpdates {
			d := float64(delta)
			if d < 0 {
				d = 0
			}
			if d > 10 {
				d = 10
			}
			a.SkillUpdates[axis] = d
		}
	}
	return a, nil
}
