package visibility

import (
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/mbolis/quick-form/model"
	"github.com/spf13/cast"
)

type answerKind int

const (
	kindEmpty answerKind = iota
	kindBool
	kindList
	kindNumber
	kindText
)

// answer is a controller's raw value classified into the one shape a
// condition is compared against.
type answer struct {
	kind answerKind
	flag bool
	list []string
	num  float64
	text string

	// upload answers that are neither lists nor comparable as numbers
	// match on presence, carried in flag.
	upload bool
}

// classify picks the comparison strategy from the runtime shape of the
// value, consulting the controller's declared type only where shapes
// alone cannot decide: an empty upload is an absent file, which still
// matches "false".
func classify(t model.FieldType, v any) answer {
	upload := t == model.UploadFile

	switch x := v.(type) {
	case nil:
		return empty(upload)
	case string:
		if x == "" {
			return empty(upload)
		}
	case bool:
		return answer{kind: kindBool, flag: x}
	case []string:
		return answer{kind: kindList, list: x}
	case []any:
		list := make([]string, 0, len(x))
		for _, item := range x {
			s, err := cast.ToStringE(item)
			if err != nil {
				continue
			}
			list = append(list, s)
		}
		return answer{kind: kindList, list: list}
	}

	text, err := cast.ToStringE(v)
	if err != nil {
		if upload {
			// file references arrive as objects
			return answer{kind: kindBool, flag: truthy(v)}
		}
		// maps, structs and other shapes no condition can express
		return answer{kind: kindEmpty}
	}
	a := answer{kind: kindText, text: strings.TrimSpace(text), upload: upload, flag: truthy(v)}
	if n, ok := parseNumber(v); ok {
		a.kind, a.num = kindNumber, n
	}
	return a
}

func empty(upload bool) answer {
	if upload {
		return answer{kind: kindBool}
	}
	return answer{kind: kindEmpty}
}

func (a answer) matches(expected string) bool {
	switch a.kind {
	case kindEmpty:
		return false
	case kindBool:
		return a.flag == (expected == "true")
	case kindList:
		return slices.Contains(a.list, expected)
	case kindNumber:
		if n, ok := parseNumber(expected); ok {
			return a.num == n
		}
	}
	if a.upload {
		return a.flag == (expected == "true")
	}
	return a.text == strings.TrimSpace(expected)
}

// parseNumber accepts numbers and strings that are entirely a finite
// number, surrounding whitespace aside. "7abc" and "" are not numbers.
func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case bool, nil:
		return 0, false
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, false
		}
		v = x
	}

	n, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// truthy mirrors what a respondent would call "provided": nil, false,
// zero, "" and empty collections are not.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
