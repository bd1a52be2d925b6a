// Package validator API 요청 구조체의 유효성 검사와 한글 에러 메시지 변환을 제공합니다.
//
// 필드 이름은 구조체 태그 `korean`의 값을 사용하며, 태그가 없으면 Go 필드 이름을 그대로 사용합니다.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get 공유 validator 인스턴스를 반환합니다. validator.Validate는 구조체 메타데이터를 캐시하므로 하나만 사용합니다.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})

		// actor: "user:<id>" 또는 "team:<id>" 형식의 수신자 문자열
		_ = v.RegisterValidation("actor", func(fl validator.FieldLevel) bool {
			_, err := contract.ParseActor(fl.Field().String())
			return err == nil
		})

		instance = v
	})

	return instance
}

// Struct 구조체의 validate 태그를 검사합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// FormatValidationError 검증 에러의 첫 번째 항목을 사용자에게 보여줄 한글 메시지로 변환합니다.
// 검증 에러가 아니면 err.Error()를 그대로 반환합니다.
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	fe := validationErrors[0]
	field := fe.Field()
	topic := field + topicParticle(field)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 필수입니다", topic)
	case "min", "gte":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("%s 최소 %s자 이상이어야 합니다", topic, fe.Param())
		}
		return fmt.Sprintf("%s 최소 %s 이상이어야 합니다", topic, fe.Param())
	case "max", "lte":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("%s 최대 %s자까지 입력 가능합니다", topic, fe.Param())
		}
		return fmt.Sprintf("%s 최대 %s까지 입력 가능합니다", topic, fe.Param())
	case "len":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("%s %s자여야 합니다", topic, fe.Param())
		}
		return fmt.Sprintf("%s 갯수가 %s개여야 합니다", topic, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s 허용된 값 중 하나여야 합니다 [%s]", topic, fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s 올바른 URL 형식이어야 합니다", topic)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s 올바른 UUID 형식이어야 합니다", topic)
	case "actor":
		return fmt.Sprintf("%s 'user:<id>' 또는 'team:<id>' 형식이어야 합니다 (입력값: %v)", topic, fe.Value())
	default:
		return fmt.Sprintf("%s 값 검증 실패 (%s)", field, fe.Tag())
	}
}

func isLengthKind(k reflect.Kind) bool {
	return k == reflect.String
}

// topicParticle 마지막 글자의 받침 여부에 따라 보조사 '은' 또는 '는'을 반환합니다.
// 한글로 끝나지 않는 이름(영문 필드명 등)은 '는'을 사용합니다.
func topicParticle(word string) string {
	r, _ := utf8.DecodeLastRuneInString(strings.TrimSpace(word))
	if r < 0xAC00 || r > 0xD7A3 {
		return "는"
	}
	if (r-0xAC00)%28 != 0 {
		return "은"
	}
	return "는"
}
