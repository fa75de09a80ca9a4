package server_test

import (
	"testing"

	"catalog-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
		want bool
	}{
		{"Default", "8080", true},
		{"Max", "65535", true},
		{"Zero", "0", false},
		{"Too Large", "70000", false},
		{"Not Numeric", "http", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.IsValidPort())
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":9090", server.Config{Port: "9090"}.Addr())
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 512*1024, server.Config{BodyLimitKB: 512}.BodyLimit())
	assert.Equal(t, 4*1024*1024, server.Config{}.BodyLimit())
}
