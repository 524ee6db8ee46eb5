package util

import "encoding/json"

// ConvertStructToJson marshals a value into a JSON string, returning an
// empty object on failure. Used for queue payloads and audit records where
// a marshal error should not abort the surrounding operation.
func ConvertStructToJson(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
