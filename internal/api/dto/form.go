package dto

// NonFieldErrors 不属于某个字段的表单错误
const NonFieldErrors = "__all__"

// FormErrors 字段名 -> 错误信息
type FormErrors map[string][]string

func (e FormErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FormErrors) HasErrors() bool {
	return len(e) > 0
}

// Get 模板中按字段取错误
func (e FormErrors) Get(field string) []string {
	return e[field]
}

// NonField 模板中取非字段错误
func (e FormErrors) NonField() []string {
	return e[NonFieldErrors]
}
