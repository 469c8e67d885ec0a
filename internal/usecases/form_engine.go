package usecases

import (
	"fmt"
	"sort"

	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
)

// sortQuestions returns a copy of qs ordered by step, display order, then id.
func sortQuestions(qs []*entities.FormQuestion) []*entities.FormQuestion {
	out := make([]*entities.FormQuestion, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.StepNumber != b.StepNumber {
			return a.StepNumber < b.StepNumber
		}
		if a.DisplayOrderInStep != b.DisplayOrderInStep {
			return a.DisplayOrderInStep < b.DisplayOrderInStep
		}
		return a.ID.String() < b.ID.String()
	})
	return out
}

// VisibleQuestions returns the questions a customer should see given the
// answers so far. A question gated on a hidden question is hidden too, so
// answers left behind on a hidden branch never reveal anything.
func VisibleQuestions(all []*entities.FormQuestion, answers entities.Answers) []*entities.FormQuestion {
	ordered := sortQuestions(all)
	visible := make(map[string]*entities.FormQuestion, len(ordered))
	out := make([]*entities.FormQuestion, 0, len(ordered))

	for _, q := range ordered {
		if !q.IsLive() {
			continue
		}
		if cond := q.ConditionalDisplay; cond != nil {
			// targets on the same or a later step are never in the map yet
			target, shown := visible[cond.DependentOnQuestionID.String()]
			if !shown {
				continue
			}
			answer, ok := answers.For(cond.DependentOnQuestionID)
			if !ok || !conditionMet(cond, target, answer) {
				continue
			}
		}
		visible[q.ID.String()] = q
		out = append(out, q)
	}
	return out
}

// conditionMet evaluates cond against the recorded answer of target. The
// target question decides the semantics, not the JSON shape of the answer:
// multi-select targets compare value sets under the logical operator, and
// single-select targets need exactly one value that is in the list.
func conditionMet(cond *entities.ConditionalDisplay, target *entities.FormQuestion, answer entities.Answer) bool {
	values := answer.NonEmptyValues()
	if len(values) == 0 || len(cond.ShowWhenAnswerEquals) == 0 {
		return false
	}

	if !target.AllowMultipleSelections {
		return len(values) == 1 && contains(cond.ShowWhenAnswerEquals, values[0])
	}

	recorded := make(map[string]struct{}, len(values))
	for _, v := range values {
		recorded[v] = struct{}{}
	}
	if cond.LogicalOperator == entities.LogicalOperatorAnd {
		for _, want := range cond.ShowWhenAnswerEquals {
			if _, ok := recorded[want]; !ok {
				return false
			}
		}
		return true
	}
	for _, want := range cond.ShowWhenAnswerEquals {
		if _, ok := recorded[want]; ok {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// StepComplete reports whether every visible required question of step has
// an answer, and lists the ids of those that do not.
func StepComplete(all []*entities.FormQuestion, answers entities.Answers, step int) (bool, []string) {
	missing := []string{}
	for _, q := range VisibleQuestions(all, answers) {
		if q.StepNumber != step || !q.IsRequired {
			continue
		}
		if answer, ok := answers.For(q.ID); !ok || answer.IsEmpty() {
			missing = append(missing, q.ID.String())
		}
	}
	return len(missing) == 0, missing
}

// ValidateAnswers checks the answers of one step: required questions must be
// answered and multiple-choice answers must use the question's options.
func ValidateAnswers(all []*entities.FormQuestion, answers entities.Answers, step int) entities.StepValidationResult {
	complete, missing := StepComplete(all, answers, step)
	result := entities.StepValidationResult{Complete: complete, Missing: missing}

	for _, q := range VisibleQuestions(all, answers) {
		if q.StepNumber != step {
			continue
		}
		answer, ok := answers.For(q.ID)
		if !ok || answer.IsEmpty() {
			continue
		}
		if !answerAllowed(q, answer) {
			result.Invalid = append(result.Invalid, q.ID.String())
		}
	}
	if len(result.Invalid) > 0 {
		result.Complete = false
	}
	return result
}

func answerAllowed(q *entities.FormQuestion, answer entities.Answer) bool {
	values := answer.NonEmptyValues()
	if len(values) > 1 && !q.AllowMultipleSelections {
		return false
	}
	if !q.IsMultipleChoice {
		return true
	}
	for _, v := range values {
		if !q.HasOption(v) {
			return false
		}
	}
	return true
}

// ValidateDependency checks a question's conditional display against the
// rest of its category at authoring time.
func ValidateDependency(question *entities.FormQuestion, all []*entities.FormQuestion) error {
	cond := question.ConditionalDisplay
	if cond == nil {
		return nil
	}
	if len(cond.ShowWhenAnswerEquals) == 0 {
		return fmt.Errorf("%w: show_when_answer_equals must not be empty", domainerrors.ErrInvalidDependency)
	}
	switch cond.LogicalOperator {
	case entities.LogicalOperatorAnd, entities.LogicalOperatorOr:
	default:
		return fmt.Errorf("%w: logical_operator must be AND or OR", domainerrors.ErrInvalidDependency)
	}
	if cond.DependentOnQuestionID == question.ID {
		return fmt.Errorf("%w: question cannot depend on itself", domainerrors.ErrInvalidDependency)
	}

	var target *entities.FormQuestion
	for _, q := range all {
		if q != nil && q.ID == cond.DependentOnQuestionID {
			target = q
			break
		}
	}
	if target == nil || target.IsDeleted || target.ServiceCategoryID != question.ServiceCategoryID {
		return fmt.Errorf("%w: dependent question %s not found in category", domainerrors.ErrInvalidDependency, cond.DependentOnQuestionID)
	}
	if target.StepNumber >= question.StepNumber {
		return fmt.Errorf("%w: dependent question must be on an earlier step", domainerrors.ErrInvalidDependency)
	}
	return nil
}

// GroupBySteps buckets already ordered questions by step number.
func GroupBySteps(questions []*entities.FormQuestion) []entities.StepQuestions {
	groups := []entities.StepQuestions{}
	for _, q := range questions {
		if n := len(groups); n > 0 && groups[n-1].StepNumber == q.StepNumber {
			groups[n-1].Questions = append(groups[n-1].Questions, q)
			continue
		}
		groups = append(groups, entities.StepQuestions{StepNumber: q.StepNumber, Questions: []*entities.FormQuestion{q}})
	}
	return groups
}
