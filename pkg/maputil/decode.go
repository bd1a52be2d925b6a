// Package maputil 렌더러에 전달되는 컨텍스트 맵을 구조체로 변환하는 기능을 제공합니다.
package maputil

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Merge 여러 맵을 순서대로 합친 새 맵을 반환합니다. 뒤에 오는 맵의 값이 앞의 값을 덮어씁니다.
// 입력 맵은 변경되지 않으며, nil 맵은 건너뜁니다.
func Merge[M ~map[string]any](layers ...M) map[string]any {
	size := 0
	for _, m := range layers {
		size += len(m)
	}

	merged := make(map[string]any, size)
	for _, m := range layers {
		for k, v := range m {
			merged[k] = v
		}
	}

	return merged
}

// Decode input을 T 타입의 구조체로 변환합니다.
//
// 구조체의 json 태그를 기준으로 필드를 매핑하며, "123" -> 123 같은 유연한 타입 변환과
// "5s" -> time.Duration 변환을 허용합니다. 구조체에 없는 키는 무시합니다.
func Decode[T any](input any, opts ...Option) (*T, error) {
	output := new(T)
	if err := DecodeTo(input, output, opts...); err != nil {
		return nil, err
	}
	return output, nil
}

// DecodeTo input을 output이 가리키는 구조체에 채웁니다. output에 이미 있는 값은 input에 없는 필드에 한해 유지됩니다.
func DecodeTo[T any](input any, output *T, opts ...Option) error {
	if output == nil {
		return errors.New("디코딩 결과를 저장할 output 포인터가 nil입니다")
	}

	cfg := decodingConfig{
		tagName:          "json",
		weaklyTypedInput: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          cfg.tagName,
		WeaklyTypedInput: cfg.weaklyTypedInput,
		ErrorUnused:      cfg.errorUnused,
		Squash:           true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}

	return nil
}

type decodingConfig struct {
	tagName          string
	weaklyTypedInput bool
	errorUnused      bool
}

// Option 디코딩 동작을 변경합니다.
type Option func(*decodingConfig)

// WithTagName 필드 매핑에 사용할 구조체 태그 이름을 지정합니다. (기본값: "json")
func WithTagName(tagName string) Option {
	return func(c *decodingConfig) {
		if tagName != "" {
			c.tagName = tagName
		}
	}
}

// WithErrorUnused true이면 구조체에 없는 키가 있을 때 에러를 반환합니다.
func WithErrorUnused(errorUnused bool) Option {
	return func(c *decodingConfig) {
		c.errorUnused = errorUnused
	}
}

// WithWeaklyTypedInput 유연한 타입 변환 여부를 지정합니다. (기본값: true)
func WithWeaklyTypedInput(weak bool) Option {
	return func(c *decodingConfig) {
		c.weaklyTypedInput = weak
	}
}
