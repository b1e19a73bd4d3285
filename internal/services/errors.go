package services

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindDownloadFailed   ErrorKind = "DownloadFailed"
	KindConversionFailed ErrorKind = "ConversionFailed"
	KindExtractionFailed ErrorKind = "ExtractionFailed"
	KindExtractionEmpty  ErrorKind = "ExtractionEmpty"
	KindUpstreamFailure  ErrorKind = "UpstreamFailure"
)

// ServiceError is raised once, where a failure is detected. Message is safe
// to show to callers; Cause is for logs only.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// StatusCode maps the error kind onto the HTTP status the routing layer returns.
func (e *ServiceError) StatusCode() int {
	switch e.Kind {
	case KindDownloadFailed:
		return http.StatusBadRequest
	case KindExtractionEmpty:
		return http.StatusUnprocessableEntity
	case KindUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newServiceError(kind ErrorKind, cause error) *ServiceError {
	return &ServiceError{Kind: kind, Message: clientMessages[kind], Cause: cause}
}

var clientMessages = map[ErrorKind]string{
	KindDownloadFailed:   "문서를 다운로드하지 못했습니다.",
	KindConversionFailed: "HWP 파일을 PDF로 변환할 수 없습니다.",
	KindExtractionFailed: "문서를 읽을 수 없습니다.",
	KindExtractionEmpty:  "문서에서 텍스트를 추출하지 못했습니다.",
	KindUpstreamFailure:  "AI 응답을 처리하지 못했습니다.",
}

// IsKind reports whether err is a ServiceError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == kind
}
