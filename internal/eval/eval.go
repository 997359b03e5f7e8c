// Package eval scores the question-answering pipeline against a fixed set
// of test questions. Each case carries the expected answer and keywords the
// retrieved documents should mention. Two metrics come out of a run:
// retrieval precision (share of retrieved documents containing at least one
// expected keyword) and answer relevance (a rubric score out of 5).
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/skonate/griot/internal/model"
)

// TestCase is one evaluation question with its grading material.
type TestCase struct {
	Question       string   `json:"question"`
	ExpectedAnswer string   `json:"expected_answer"`
	Keywords       []string `json:"keywords"`
}

// QuestionResult holds the scores for a single evaluated question.
type QuestionResult struct {
	Question           string         `json:"question"`
	Answer             string         `json:"answer"`
	ExpectedAnswer     string         `json:"expected_answer"`
	RetrievalPrecision float64        `json:"retrieval_precision"`
	AnswerRelevance    float64        `json:"answer_relevance"`
	ResponseTime       float64        `json:"response_time"`
	NumSources         int            `json:"num_sources"`
	Sources            []model.Source `json:"sources"`
}

// Metadata describes the conditions of an evaluation run.
type Metadata struct {
	EvaluationDate string `json:"evaluation_date"`
	TotalQuestions int    `json:"total_questions"`
	LLMUsed        string `json:"llm_used"`
}

// Aggregate holds metrics averaged over all questions.
type Aggregate struct {
	AvgRetrievalPrecision        float64        `json:"avg_retrieval_precision"`
	AvgRetrievalPrecisionPercent float64        `json:"avg_retrieval_precision_percent"`
	AvgAnswerRelevance           float64        `json:"avg_answer_relevance"`
	AvgResponseTime              float64        `json:"avg_response_time"`
	ScoreDistribution            map[string]int `json:"score_distribution"`
}

// Results is the complete output of an evaluation run.
type Results struct {
	Metadata  Metadata         `json:"metadata"`
	Aggregate Aggregate        `json:"aggregate_metrics"`
	Detailed  []QuestionResult `json:"detailed_results"`
}

// Asker answers a question against the indexed corpus.
type Asker interface {
	Ask(ctx context.Context, question string, topK int) (*model.Answer, error)
}

// LoadTestCases reads evaluation questions from a JSON file.
func LoadTestCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading test cases: %w", err)
	}
	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parsing test cases %s: %w", path, err)
	}
	return cases, nil
}

// RetrievalPrecision is the fraction of retrieved documents whose title or
// content mentions at least one of the expected keywords. Matching is
// case-insensitive substring search.
func RetrievalPrecision(sources []model.Source, keywords []string) float64 {
	if len(keywords) == 0 || len(sources) == 0 {
		return 0
	}
	relevant := 0
	for _, src := range sources {
		text := strings.ToLower(src.Title + " " + src.Content)
		for _, kw := range keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				relevant++
				break
			}
		}
	}
	return float64(relevant) / float64(len(sources))
}

// sourceIndicators are phrases that suggest the answer cites its documents.
var sourceIndicators = []string{"selon", "article", "source", "d'après", "lefaso", "titre"}

// AnswerRelevance grades an answer out of 5:
//
//	2 pts  word overlap with the expected answer
//	1 pt   word overlap with the question itself
//	1 pt   readable structure (length and punctuation)
//	1 pt   mentions its sources
func AnswerRelevance(answer, expected, question string) float64 {
	score := 0.0
	answerWords := wordSet(answer)

	expectedWords := wordSet(expected)
	common := 0
	for w := range expectedWords {
		if answerWords[w] {
			common++
		}
	}
	denom := len(expectedWords)
	if denom == 0 {
		denom = 1
	}
	score += math.Min(2, float64(common)/float64(denom)*2)

	questionOverlap := 0
	for w := range wordSet(question) {
		if answerWords[w] {
			questionOverlap++
		}
	}
	switch {
	case questionOverlap >= 2:
		score += 1
	case questionOverlap == 1:
		score += 0.5
	}

	if len(answer) > 50 && !strings.HasPrefix(answer, "Je n'ai pas") {
		score += 0.5
	}
	if strings.ContainsAny(answer, ".,;") {
		score += 0.5
	}

	lower := strings.ToLower(answer)
	for _, ind := range sourceIndicators {
		if strings.Contains(lower, ind) {
			score += 1
			break
		}
	}

	return math.Min(5, score)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// Evaluator runs test cases through a question-answering backend.
type Evaluator struct {
	qa      Asker
	topK    int
	llmName string
	pause   time.Duration
	verbose bool

	// sleep is replaceable in tests.
	sleep func(time.Duration)
}

// NewEvaluator builds an evaluator. llmName is recorded in the run metadata.
func NewEvaluator(qa Asker, topK int, llmName string, verbose bool) *Evaluator {
	if topK <= 0 {
		topK = 5
	}
	return &Evaluator{
		qa:      qa,
		topK:    topK,
		llmName: llmName,
		pause:   500 * time.Millisecond,
		verbose: verbose,
		sleep:   time.Sleep,
	}
}

// Run evaluates every test case and aggregates the scores. A failed question
// aborts the run; partial score sheets are misleading.
func (e *Evaluator) Run(ctx context.Context, cases []TestCase) (*Results, error) {
	if len(cases) == 0 {
		return nil, fmt.Errorf("no test cases to evaluate")
	}

	detailed := make([]QuestionResult, 0, len(cases))
	for i, tc := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.logf("[%d/%d] %s", i+1, len(cases), tc.Question)

		result, err := e.evaluateOne(ctx, tc)
		if err != nil {
			return nil, fmt.Errorf("question %d (%q): %w", i+1, tc.Question, err)
		}
		detailed = append(detailed, result)

		if i < len(cases)-1 && e.pause > 0 {
			e.sleep(e.pause)
		}
	}

	return &Results{
		Metadata: Metadata{
			EvaluationDate: time.Now().Format(time.RFC3339),
			TotalQuestions: len(cases),
			LLMUsed:        e.llmName,
		},
		Aggregate: aggregate(detailed),
		Detailed:  detailed,
	}, nil
}

func (e *Evaluator) evaluateOne(ctx context.Context, tc TestCase) (QuestionResult, error) {
	answer, err := e.qa.Ask(ctx, tc.Question, e.topK)
	if err != nil {
		return QuestionResult{}, err
	}

	precision := RetrievalPrecision(answer.Sources, tc.Keywords)
	relevance := AnswerRelevance(answer.Answer, tc.ExpectedAnswer, tc.Question)

	e.logf("  précision retrieval: %.1f%%  pertinence: %.1f/5  temps: %.2fs",
		precision*100, relevance, answer.ResponseTime)

	return QuestionResult{
		Question:           tc.Question,
		Answer:             answer.Answer,
		ExpectedAnswer:     tc.ExpectedAnswer,
		RetrievalPrecision: precision,
		AnswerRelevance:    relevance,
		ResponseTime:       answer.ResponseTime,
		NumSources:         len(answer.Sources),
		Sources:            answer.Sources,
	}, nil
}

func aggregate(results []QuestionResult) Aggregate {
	var precision, relevance, elapsed float64
	dist := map[string]int{
		"excellent (4-5)": 0,
		"bon (3-4)":       0,
		"moyen (2-3)":     0,
		"faible (<2)":     0,
	}
	for _, r := range results {
		precision += r.RetrievalPrecision
		relevance += r.AnswerRelevance
		elapsed += r.ResponseTime
		switch {
		case r.AnswerRelevance >= 4:
			dist["excellent (4-5)"]++
		case r.AnswerRelevance >= 3:
			dist["bon (3-4)"]++
		case r.AnswerRelevance >= 2:
			dist["moyen (2-3)"]++
		default:
			dist["faible (<2)"]++
		}
	}
	n := float64(len(results))
	avgPrecision := precision / n
	return Aggregate{
		AvgRetrievalPrecision:        round(avgPrecision, 3),
		AvgRetrievalPrecisionPercent: round(avgPrecision*100, 1),
		AvgAnswerRelevance:           round(relevance/n, 2),
		AvgResponseTime:              round(elapsed/n, 2),
		ScoreDistribution:            dist,
	}
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

func (e *Evaluator) logf(format string, args ...any) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
