// Package response shapes every JSON reply the API produces. There are
// exactly two forms: {"error": msg} with a failure status code, and
// {"message": msg} with an optional "data" payload on success.
package response

import (
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
)

// Error writes the error envelope with the given status code.
func Error(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

// Success writes the success envelope. A nil data omits the "data" key
// entirely. Temporal values inside data are rendered as ISO-8601
// strings, recursively through maps and slices.
func Success(c echo.Context, status int, msg string, data any) error {
	body := echo.Map{"message": msg}
	if data != nil {
		body["data"] = Normalize(data)
	}
	return c.JSON(status, body)
}

// Normalize walks v and converts every time.Time into an RFC 3339
// string in UTC. Maps and slices are rebuilt with normalized values;
// everything else passes through for the JSON encoder to handle.
func Normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case nil:
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			if key, ok := k.Interface().(string); ok {
				out[key] = Normalize(rv.MapIndex(k).Interface())
			}
		}
		return out
	}
	return v
}
