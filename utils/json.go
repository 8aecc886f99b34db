package utils

import "github.com/goccy/go-json"

func StructToBytes(s interface{}) ([]byte, error) {
	return json.Marshal(s)
}

func BytesToStruct(data []byte, s interface{}) error {
	return json.Unmarshal(data, s)
}

// BodyToBytes serializes a request body. Pre-encoded JSON ([]byte or
// json.RawMessage) is passed through untouched.
func BodyToBytes(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		return json.Marshal(body)
	}
}
