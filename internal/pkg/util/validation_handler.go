package util

import (
	"Planting/internal/api/dto"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// 错误使用表单字段名作为 key
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// ValidateForm 校验表单，返回每个字段的错误信息；全部通过时返回空 map
func ValidateForm(form any) dto.FormErrors {
	formErrors := dto.FormErrors{}
	err := validate.Struct(form)
	if err == nil {
		return formErrors
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		formErrors.Add(dto.NonFieldErrors, err.Error())
		return formErrors
	}
	for _, fe := range vErrs {
		formErrors.Add(fe.Field(), fieldMessage(fe))
	}
	return formErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "该字段为必填项"
	case "max":
		return fmt.Sprintf("长度不能超过 %s 个字符", fe.Param())
	case "min":
		return fmt.Sprintf("长度不能少于 %s 个字符", fe.Param())
	case "email":
		return "请输入有效的邮箱地址"
	case "eqfield":
		return "两次输入的密码不一致"
	default:
		return fmt.Sprintf("字段校验失败，规则 [%s]", fe.Tag())
	}
}
