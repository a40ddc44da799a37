package services

// 服务层错误分三类：参数错误、业务前置条件不满足、记录不存在
// 视图层按类型翻译为对应的 HTTP 响应，存储层错误原样向上传递

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return e.Message
}

func NewInvariantError(message string) error {
	return &InvariantError{Message: message}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}
