package service

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/model"
	"github.com/lshigami/mybeing/internal/scoring"
)

func toQuizDTO(quiz *model.Quiz) (dto.QuizDTO, error) {
	var resp dto.QuizDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		return dto.QuizDTO{}, fmt.Errorf("copy quiz %q: %w", quiz.Slug, err)
	}
	resp.Questions = make([]dto.QuestionDTO, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		resp.Questions = append(resp.Questions, dto.QuestionDTO{
			ID:      q.Key,
			Text:    q.Text,
			Type:    q.Type,
			Options: q.OptionList(),
		})
	}
	resp.Bands = make([]dto.BandDTO, 0, len(quiz.Bands))
	if err := copier.Copy(&resp.Bands, &quiz.Bands); err != nil {
		return dto.QuizDTO{}, fmt.Errorf("copy bands of %q: %w", quiz.Slug, err)
	}
	resp.MinScore, resp.MaxScore = scoring.Range(quiz.ScoringQuestions())
	return resp, nil
}

// buildQuiz checks the authored structure of req and converts it into a model.
// Band coverage is checked separately by validateBands.
func buildQuiz(req dto.QuizUpsertRequest) (*model.Quiz, error) {
	var details []string
	seen := make(map[string]bool, len(req.Questions))

	quiz := &model.Quiz{
		Slug:        req.Slug,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	for i, in := range req.Questions {
		id := strings.TrimSpace(in.ID)
		if seen[id] {
			details = append(details, fmt.Sprintf("questions[%d]: duplicate id %q", i, id))
		}
		seen[id] = true

		qt := scoring.QuestionType(in.Type)
		if !qt.Valid() {
			details = append(details, fmt.Sprintf("questions[%d]: unknown type %q", i, in.Type))
		}
		if qt == scoring.MultipleChoice && len(in.Options) == 0 {
			details = append(details, fmt.Sprintf("questions[%d]: multiple_choice requires options", i))
		}
		if qt != scoring.MultipleChoice && len(in.Options) > 0 {
			details = append(details, fmt.Sprintf("questions[%d]: options are only allowed on multiple_choice", i))
		}

		options := make([]string, 0, len(in.Options))
		seenOpt := make(map[string]bool, len(in.Options))
		for j, opt := range in.Options {
			opt = strings.TrimSpace(opt)
			switch {
			case opt == "":
				details = append(details, fmt.Sprintf("questions[%d].options[%d]: option is blank", i, j))
			case seenOpt[opt]:
				details = append(details, fmt.Sprintf("questions[%d].options[%d]: duplicate option %q", i, j, opt))
			}
			seenOpt[opt] = true
			options = append(options, opt)
		}

		q := model.Question{Key: id, Text: in.Text, Type: in.Type, Position: i}
		q.SetOptions(options)
		quiz.Questions = append(quiz.Questions, q)
	}
	for i, b := range req.Bands {
		quiz.Bands = append(quiz.Bands, model.Band{
			Min:      b.Min,
			Max:      b.Max,
			Label:    strings.TrimSpace(b.Label),
			Advice:   b.Advice,
			Position: i,
		})
	}

	if len(details) > 0 {
		return nil, apperror.Validation("invalid quiz", details...)
	}
	if err := validateBands(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func validateBands(quiz *model.Quiz) error {
	issues := scoring.ValidateBands(quiz.ScoringQuestions(), quiz.ScoringBands())
	if len(issues) == 0 {
		return nil
	}
	details := make([]string, 0, len(issues))
	for _, issue := range issues {
		details = append(details, issue.Message)
	}
	return apperror.New(apperror.CodeBandsInvalid, "bands must cover every attainable score exactly once", details...)
}
