// internal/infrastructure/database/redis/json.go
package redis

import "encoding/json"

func encodeJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	return string(data), err
}

func decodeJSON(raw string, dest interface{}) error {
	return json.Unmarshal([]byte(raw), dest)
}
