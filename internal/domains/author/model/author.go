package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Author là entity trong collection "authors".
// Articles giữ một bản embedded đã resolve của author, không tự tạo author mới.
type Author struct {
	Code string `json:"code" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name,
			validation.Required.Error("the author name must not be blank"),
		),
	)
}
