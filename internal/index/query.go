package index

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

const queryInvalidCode = "QUERY_INVALID"

// ValidateQuery checks the enumerated fields of a query. Every other field is free text.
func ValidateQuery(query interfaces.ArticleQuery) error {
	err := validation.ValidateStruct(&query,
		validation.Field(&query.Status, validation.By(func(value any) error {
			status, _ := value.(interfaces.ArticleStatus)
			if status == "" || status.IsKnown() {
				return nil
			}
			return validation.NewError("newsroom.index.query.status_invalid", "status must be draft, published or archived")
		})),
		validation.Field(&query.TopicMode, validation.By(func(value any) error {
			mode, _ := value.(interfaces.TopicMatchMode)
			switch mode {
			case "", interfaces.TopicMatchAny, interfaces.TopicMatchAll:
				return nil
			}
			return validation.NewError("newsroom.index.query.topic_mode_invalid", "topicMode must be any or all")
		})),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid article query").
			WithTextCode(queryInvalidCode)
	}
	return nil
}
