// Package validate checks request inputs against rules declared in struct
// tags, with Laravel-flavoured messages keyed by the field's JSON name.
//
// Rules are comma-separated in the `validate` tag:
//
//	required            non-zero value
//	nullable            empty value skips the remaining rules
//	numeric             parses as a number
//	integer             parses as a whole number
//	url                 http/https URL
//	json                valid JSON text
//	min=N / max=N       numeric bound, or character length for strings
//	gt/gte/lt/lte=N     numeric comparisons
//	between=lo,hi       inclusive range (length for strings)
//	in=a,b,c            enumeration
//
//	type Input struct {
//	    Name   string  `json:"name"   validate:"required,max=255"`
//	    Status string  `json:"status" validate:"required,in=Pending,Delivered"`
//	}
package validate

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Struct checks every tagged exported field of v (struct or pointer to
// struct) and returns field name to message for the failures. Only the
// first failing rule per field is reported.
func Struct(v interface{}) map[string]string {
	failures := make(map[string]string)

	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return failures
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		value := rv.Field(i)
		rules := splitRules(tag)
		name := fieldName(field)

		if contains(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := check(rule, name, value); msg != "" {
				failures[name] = msg
				break
			}
		}
	}

	return failures
}

// HasErrors reports whether Struct found any failure.
func HasErrors(failures map[string]string) bool { return len(failures) > 0 }

func check(rule, field string, v reflect.Value) string {
	text := fmt.Sprintf("%v", v.Interface())
	name, param, _ := strings.Cut(rule, "=")

	switch name {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "url":
		u, err := url.ParseRequestURI(text)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}

	case "json":
		if !json.Valid([]byte(text)) {
			return fmt.Sprintf("The %s must be a valid JSON string.", field)
		}

	case "min":
		bound := parseNum(param)
		if isNumeric(v) {
			if asFloat(v) < bound {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if runeLen(text) < bound {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}

	case "max":
		bound := parseNum(param)
		if isNumeric(v) {
			if asFloat(v) > bound {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if runeLen(text) > bound {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}

	case "gt":
		if asFloat(v) <= parseNum(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if asFloat(v) < parseNum(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lt":
		if asFloat(v) >= parseNum(param) {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if asFloat(v) > parseNum(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}

	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return ""
		}
		low, high := parseNum(lo), parseNum(hi)
		if isNumeric(v) {
			if f := asFloat(v); f < low || f > high {
				return fmt.Sprintf("The %s must be between %s and %s.", field, lo, hi)
			}
		} else if l := runeLen(text); l < low || l > high {
			return fmt.Sprintf("The %s must be between %s and %s characters.", field, lo, hi)
		}

	case "in":
		for _, allowed := range strings.Split(param, ",") {
			if text == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		// false is a legitimate value, never "missing"
		return false
	default:
		return isNumeric(v) && asFloat(v) == 0
	}
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func asFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func parseNum(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func runeLen(s string) float64 {
	return float64(len([]rune(s)))
}

// fieldName prefers the JSON tag name, matching what the client sent.
func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

var ruleKeywords = []string{
	"required", "nullable", "numeric", "integer", "url", "json",
	"min=", "max=", "gt=", "gte=", "lt=", "lte=", "in=", "between=",
}

// splitRules splits a tag on commas while keeping the comma-separated
// parameters of in= and between= together:
//
//	"required,in=Pending,Delivered,max=50"
//	  → ["required", "in=Pending,Delivered", "max=50"]
//
// A comma inside a multi-value parameter only ends the rule when what
// follows is itself a known rule keyword.
func splitRules(tag string) []string {
	var rules []string
	var buf strings.Builder
	multiParam := false

	flush := func() {
		if buf.Len() > 0 {
			rules = append(rules, buf.String())
			buf.Reset()
		}
		multiParam = false
	}

	for i := 0; i < len(tag); i++ {
		if tag[i] != ',' {
			buf.WriteByte(tag[i])
			if !multiParam {
				s := buf.String()
				multiParam = strings.HasSuffix(s, "in=") || strings.HasSuffix(s, "between=")
			}
			continue
		}

		if multiParam && !startsWithKeyword(tag[i+1:]) {
			buf.WriteByte(',')
			continue
		}
		flush()
	}
	flush()

	return rules
}

func startsWithKeyword(s string) bool {
	for _, kw := range ruleKeywords {
		if strings.HasPrefix(s, kw) {
			return true
		}
	}
	return false
}

func contains(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
