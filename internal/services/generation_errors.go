package services

import (
	"context"
	"errors"
	"strings"

	"tasweeq/internal/llm/client"
	"tasweeq/internal/models"
)

// ErrCredentialRequired is returned by Submit while the credential gate is closed.
var ErrCredentialRequired = errors.New("api key is required before generating content")

var authMarkers = []string{
	"api key",
	"api_key",
	"permission denied",
	"permission_denied",
	"unauthenticated",
	"unauthorized",
	"requested entity was not found",
	"not_found",
	"not found",
}

var timeoutMarkers = []string{
	"deadline exceeded",
	"deadline_exceeded",
	"timed out",
	"timeout",
}

var userMessages = map[models.ErrorKind]string{
	models.ErrorKindLocalValidation:   "يرجى ملء جميع الحقول المطلوبة: اسم المنتج، الفئة، والسعر.",
	models.ErrorKindMalformedResponse: "تعذّرت معالجة رد النموذج. حاول تبسيط الطلب ثم أعد المحاولة.",
	models.ErrorKindAuthentication:    "فشل التحقق من مفتاح API. يرجى اختيار مفتاح آخر.",
	models.ErrorKindTimeout:           "استغرقت العملية وقتًا طويلًا. يرجى المحاولة مرة أخرى.",
	models.ErrorKindUnknown:           "حدث خطأ غير متوقع أثناء توليد المحتوى. يرجى المحاولة مرة أخرى.",
}

// Classify maps a generation failure to the kind shown to the user.
// It only looks at the error itself, so the same error always yields the same kind.
func Classify(err error) models.ErrorKind {
	if err == nil {
		return ""
	}

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return models.ErrorKindLocalValidation
	case errors.Is(err, client.ErrMalformedResponse):
		return models.ErrorKindMalformedResponse
	case errors.Is(err, client.ErrMissingCredential), errors.Is(err, ErrCredentialRequired):
		return models.ErrorKindAuthentication
	case errors.Is(err, context.DeadlineExceeded):
		return models.ErrorKindTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, authMarkers):
		return models.ErrorKindAuthentication
	case containsAny(msg, timeoutMarkers):
		return models.ErrorKindTimeout
	default:
		return models.ErrorKindUnknown
	}
}

// UserMessage returns the Arabic message displayed for kind.
func UserMessage(kind models.ErrorKind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[models.ErrorKindUnknown]
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
