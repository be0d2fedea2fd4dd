package utils

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

const prettyLayout = "Jan 02, 2006 @ 15:04"

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatPretty renders t in loc the way the planner shows freetimes,
// e.g. "Aug 27, 2021 @ 14:30".
func FormatPretty(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(prettyLayout)
}

// PrettyEstimate renders a minute count as "3 hours & 42 minutes".
// A nil or zero estimate has no rendering.
func PrettyEstimate(minutes *int) *string {
	if minutes == nil || *minutes == 0 {
		return nil
	}
	total := *minutes
	pretty := fmt.Sprintf("%d hours & %d minutes", total/60, total%60)
	return &pretty
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
