package handler

import (
	"net/http"

	"github.com/garrettladley/synthonia/internal/apperr"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/validator"
	"github.com/garrettladley/synthonia/internal/xhttp"
)

type AssessmentType string

const (
	AssessmentPHQ9   AssessmentType = "PHQ9"
	AssessmentGAD7   AssessmentType = "GAD7"
	AssessmentDASS21 AssessmentType = "DASS21"
	AssessmentFlow   AssessmentType = "FLOW"
)

func (t AssessmentType) Valid() bool {
	switch t {
	case AssessmentPHQ9, AssessmentGAD7, AssessmentDASS21, AssessmentFlow:
		return true
	default:
		return false
	}
}

type Assessments struct {
	metrics *metrics.Manager
}

func NewAssessments(m *metrics.Manager) *Assessments {
	return &Assessments{metrics: m}
}

type assessmentRequest struct {
	Type AssessmentType `json:"type"`
	// Answers maps question ids to their numeric answer.
	Answers map[string]float64 `json:"answers"`
}

func (req *assessmentRequest) Validate() map[string]string {
	c := validator.Collector{}
	c.Check(req.Type.Valid(), "type", "must be one of PHQ9, GAD7, DASS21, FLOW")
	c.Check(len(req.Answers) > 0, "answers", "must not be empty")
	for _, v := range req.Answers {
		c.Check(v >= 0, "answers", "must not contain negative answers")
	}
	return c.Result()
}

type assessmentResponse struct {
	Type           AssessmentType `json:"type"`
	Score          float64        `json:"score"`
	Interpretation string         `json:"interpretation,omitempty"`
}

// HandleScore handles POST /api/assessments/score.
func (h *Assessments) HandleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req assessmentRequest
	if err := decode(w, r, &req); err != nil {
		apperr.WriteError(ctx, w, err)
		return
	}

	resp := assessmentResponse{Type: req.Type}
	switch req.Type {
	case AssessmentDASS21:
		resp.Score = formula.DASS21Subscore(values(req.Answers))
	case AssessmentFlow:
		resp.Score = round2(formula.FlowScore(values(req.Answers)))
	case AssessmentPHQ9:
		resp.Score = formula.AdditiveScore(req.Answers)
		resp.Interpretation = phq9Severity(resp.Score)
	default:
		resp.Score = formula.AdditiveScore(req.Answers)
	}
	h.metrics.ObserveFormula("assessment_"+string(req.Type), nil)

	xhttp.WriteOK(w, resp)
}

func values(m map[string]float64) []float64 {
	out := make([]float64, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func phq9Severity(score float64) string {
	switch {
	case score <= 4:
		return "None-minimal"
	case score <= 9:
		return "Mild"
	case score <= 14:
		return "Moderate"
	case score <= 19:
		return "Moderately Severe"
	default:
		return "Severe"
	}
}
