package learn

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/recallhq/recall/internal/mathgen"
	errs "github.com/recallhq/recall/server/internal/errors"
	"github.com/recallhq/recall/store"
)

// Question type discriminators shared with the HTTP layer.
const (
	TypeRegular = "regular"
	TypeMath    = "math"
)

// FocusWork restricts selection to work-tagged fixed questions and
// suppresses the math pool entirely.
const FocusWork = "work"

// RegularCard is a fixed question prepared for delivery. The reference
// answer is deliberately absent.
type RegularCard struct {
	ID           int32    `json:"id"`
	UID          string   `json:"uid"`
	Topic        string   `json:"topic"`
	Tags         []string `json:"tags"`
	DisplayText  string   `json:"display_text"`
	EaseFactor   float64  `json:"ease_factor"`
	IntervalDays int      `json:"interval_days"`
	NextReviewAt *int64   `json:"next_review_at"`
	ReviewCount  int      `json:"review_count"`
	CreatedTs    int64    `json:"created_ts"`
}

// MathCard is a freshly generated math question prepared for delivery. The
// correct answer and the raw parameters stay server-side.
type MathCard struct {
	ID           int32  `json:"id"`
	UID          string `json:"uid"`
	TemplateType string `json:"template_type"`
	Topic        string `json:"topic"`
	DisplayText  string `json:"display_text"`
	Hint         string `json:"hint"`
	CreatedTs    int64  `json:"created_ts"`
}

// NextCard is the unified next-item response.
type NextCard struct {
	QuestionType string       `json:"question_type"`
	Regular      *RegularCard `json:"regular,omitempty"`
	Math         *MathCard    `json:"math,omitempty"`
}

// candidate is one pool's best offer during selection.
type candidate struct {
	questionType string
	questionID   int32  // regular
	templateType string // math
}

// NextQuestion picks the next item to review, interleaving the fixed
// question pool and the math template pool.
//
// Each pool nominates at most one candidate: its most overdue due item
// (ease factor breaking ties), or for math an untried template, which is
// always due. If neither pool has anything due, each falls back to a random
// member. The final pick between pool candidates is a uniform coin flip, so
// neither pool can starve the other.
func (s *Service) NextQuestion(ctx context.Context, topic, focus string) (*NextCard, error) {
	now := s.now().Unix()
	workOnly := strings.ToLower(strings.TrimSpace(focus)) == FocusWork
	includeMath := !workOnly

	find := &store.FindQuestion{DueBefore: &now, OrderByDue: true}
	if topic != "" {
		find.Topic = &topic
	}
	if workOnly {
		tag := FocusWork
		find.Tag = &tag
	}

	candidates := []candidate{}

	question, err := s.store.GetQuestion(ctx, find)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to query due questions")
	}
	if question != nil {
		candidates = append(candidates, candidate{questionType: TypeRegular, questionID: question.ID})
	}

	templateIDs := []string{}
	if includeMath {
		templateIDs = mathgen.TypeIDs(topic)
	}

	if len(templateIDs) > 0 {
		templateType, err := s.dueOrUntriedTemplate(ctx, templateIDs, now, true)
		if err != nil {
			return nil, err
		}
		if templateType != "" {
			candidates = append(candidates, candidate{questionType: TypeMath, templateType: templateType})
		}
	}

	// Nothing due anywhere: fall back to a random draw from each pool.
	if len(candidates) == 0 {
		randomFind := &store.FindQuestion{Random: true}
		randomFind.Topic = find.Topic
		randomFind.Tag = find.Tag

		question, err := s.store.GetQuestion(ctx, randomFind)
		if err != nil {
			return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to query random question")
		}
		if question != nil {
			candidates = append(candidates, candidate{questionType: TypeRegular, questionID: question.ID})
		}

		if len(templateIDs) > 0 {
			candidates = append(candidates, candidate{questionType: TypeMath, templateType: s.pick(templateIDs)})
		}
	}

	if len(candidates) == 0 {
		return nil, errs.New(errs.ErrCodeNotFound, "no questions found")
	}

	picked := candidates[s.intn(len(candidates))]

	if picked.questionType == TypeRegular {
		card, err := s.regularCard(ctx, picked.questionID)
		if err != nil {
			return nil, err
		}
		return &NextCard{QuestionType: TypeRegular, Regular: card}, nil
	}

	template, ok := mathgen.Get(picked.templateType)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnknownTemplate, "unknown template: %s", picked.templateType)
	}
	generated, err := s.generateMathQuestion(ctx, template)
	if err != nil {
		return nil, err
	}
	return &NextCard{QuestionType: TypeMath, Math: &MathCard{
		ID:           generated.ID,
		UID:          generated.UID,
		TemplateType: generated.TemplateType,
		Topic:        generated.Topic,
		DisplayText:  generated.DisplayText,
		Hint:         template.Hint,
		CreatedTs:    generated.CreatedTs,
	}}, nil
}

// dueOrUntriedTemplate returns the math pool's candidate: the most overdue
// due template, else (when fallbackToUntried) a uniformly random untried
// one. Untried templates have no progress record and are always due.
func (s *Service) dueOrUntriedTemplate(ctx context.Context, templateIDs []string, now int64, fallbackToUntried bool) (string, error) {
	limit := 1
	due, err := s.store.ListTemplateProgress(ctx, &store.FindTemplateProgress{
		TemplateTypes: templateIDs,
		DueBefore:     &now,
		OrderByDue:    true,
		Limit:         &limit,
	})
	if err != nil {
		return "", errs.Wrap(err, errs.ErrCodeInternal, "failed to query due templates")
	}
	if len(due) > 0 {
		return due[0].TemplateType, nil
	}

	if !fallbackToUntried {
		return "", nil
	}

	untried, err := s.untriedTemplates(ctx, templateIDs)
	if err != nil {
		return "", err
	}
	if len(untried) > 0 {
		return s.pick(untried), nil
	}
	return "", nil
}

func (s *Service) untriedTemplates(ctx context.Context, templateIDs []string) ([]string, error) {
	tried, err := s.store.ListTemplateProgress(ctx, &store.FindTemplateProgress{
		TemplateTypes: templateIDs,
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to query template progress")
	}

	triedSet := map[string]bool{}
	for _, progress := range tried {
		triedSet[progress.TemplateType] = true
	}

	untried := []string{}
	for _, id := range templateIDs {
		if !triedSet[id] {
			untried = append(untried, id)
		}
	}
	return untried, nil
}

// regularCard loads a fixed question and prepares it for delivery,
// optionally rephrasing the prompt. A rephrase failure falls back to the
// stored wording.
func (s *Service) regularCard(ctx context.Context, id int32) (*RegularCard, error) {
	question, err := s.store.GetQuestion(ctx, &store.FindQuestion{ID: &id})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to get question")
	}
	if question == nil {
		return nil, errs.New(errs.ErrCodeNotFound, "question not found")
	}

	displayText := question.QuestionText
	if s.config.RephraseQuestions {
		err := s.withLLM(ctx, func(ctx context.Context) error {
			rephrased, err := s.llm.RephraseQuestion(ctx, question.QuestionText)
			if err != nil {
				return err
			}
			displayText = rephrased
			return nil
		})
		if err != nil {
			slog.Warn("failed to rephrase question, using original wording", "question", question.ID, "error", err)
		}
	}

	return &RegularCard{
		ID:           question.ID,
		UID:          question.UID,
		Topic:        question.Topic,
		Tags:         question.Tags,
		DisplayText:  displayText,
		EaseFactor:   question.EaseFactor,
		IntervalDays: question.IntervalDays,
		NextReviewAt: question.NextReviewAt,
		ReviewCount:  question.ReviewCount,
		CreatedTs:    question.CreatedTs,
	}, nil
}

// MathQuestion is the full generated question returned by NextMathQuestion.
// The sampled parameters are included; the correct answer is not.
type MathQuestion struct {
	ID           int32              `json:"id"`
	UID          string             `json:"uid"`
	TemplateType string             `json:"template_type"`
	Topic        string             `json:"topic"`
	Params       map[string]float64 `json:"params"`
	DisplayText  string             `json:"display_text"`
	Hint         string             `json:"hint"`
	CreatedTs    int64              `json:"created_ts"`
}

// NextMathQuestion generates a new math question, selecting the template by
// explicit type, due-ness, untried-first, or at random.
func (s *Service) NextMathQuestion(ctx context.Context, topic, templateType string) (*MathQuestion, error) {
	var template *mathgen.Template

	if templateType != "" {
		t, ok := mathgen.Get(templateType)
		if !ok {
			return nil, errs.New(errs.ErrCodeNotFound, "unknown template type: %s", templateType)
		}
		template = t
	} else {
		templateIDs := mathgen.TypeIDs(topic)
		if len(templateIDs) == 0 {
			return nil, errs.New(errs.ErrCodeNotFound, "no templates for topic: %s", topic)
		}

		picked, err := s.dueOrUntriedTemplate(ctx, templateIDs, s.now().Unix(), true)
		if err != nil {
			return nil, err
		}
		if picked == "" {
			picked = s.pick(templateIDs)
		}

		t, ok := mathgen.Get(picked)
		if !ok {
			return nil, errs.New(errs.ErrCodeUnknownTemplate, "unknown template: %s", picked)
		}
		template = t
	}

	generated, err := s.generateMathQuestion(ctx, template)
	if err != nil {
		return nil, err
	}

	var params map[string]float64
	if err := json.Unmarshal([]byte(generated.Params), &params); err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to decode stored params")
	}

	return &MathQuestion{
		ID:           generated.ID,
		UID:          generated.UID,
		TemplateType: generated.TemplateType,
		Topic:        generated.Topic,
		Params:       params,
		DisplayText:  generated.DisplayText,
		Hint:         template.Hint,
		CreatedTs:    generated.CreatedTs,
	}, nil
}

// generateMathQuestion samples parameters, computes the answer, wraps it in
// a word problem and persists the record. Word-problem generation failing
// degrades to the template's canned example text.
func (s *Service) generateMathQuestion(ctx context.Context, template *mathgen.Template) (*store.MathQuestion, error) {
	params := template.GenerateParams(s.sampleRand())
	correctAnswer := template.ComputeAnswer(params)

	displayText := template.Example
	err := s.withLLM(ctx, func(ctx context.Context) error {
		text, err := s.llm.GenerateWordProblem(ctx, template.Concept, params, template.AsksFor, template.Example)
		if err != nil {
			return err
		}
		if text != "" {
			displayText = text
		}
		return nil
	})
	if err != nil {
		slog.Warn("failed to generate word problem, using example text", "template", template.TypeID, "error", err)
	}

	encoded, err := json.Marshal(map[string]float64(params))
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to encode params")
	}

	created, err := s.store.CreateMathQuestion(ctx, &store.MathQuestion{
		UID:           shortuuid.New(),
		TemplateType:  template.TypeID,
		Topic:         template.Topic,
		Params:        string(encoded),
		CorrectAnswer: correctAnswer,
		DisplayText:   displayText,
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to store math question")
	}
	return created, nil
}
