package redis

import (
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Addr: "localhost:6379"}, false},
		{"valid with db", Config{Addr: "redis.internal:6380", Password: "secret", DB: 2}, false},
		{"missing addr", Config{}, true},
		{"addr without port", Config{Addr: "localhost"}, true},
		{"negative db", Config{Addr: "localhost:6379", DB: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
