package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{"empty address", NetAddress{}, ""},
		{"localhost with port", NetAddress{Host: "localhost", Port: 8080}, "localhost:8080"},
		{"only port", NetAddress{Port: 8080}, ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    NetAddress
	}{
		{"localhost", "localhost:8080", false, NetAddress{Host: "localhost", Port: 8080}},
		{"ipv4", "127.0.0.1:9090", false, NetAddress{Host: "127.0.0.1", Port: 9090}},
		{"all interfaces", ":8080", false, NetAddress{Port: 8080}},
		{"missing colon", "localhost8080", true, NetAddress{}},
		{"non numeric port", "localhost:http", true, NetAddress{}},
		{"zero port", "localhost:0", true, NetAddress{}},
		{"port too large", "localhost:70000", true, NetAddress{}},
		{"hostname", "example.com:80", true, NetAddress{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	resetFlags(t,
		"-a", "localhost:8081",
		"-u", "http://cloud:8080",
		"-client-id", "cid",
		"-db-driver", "bolt",
		"-db-dsn", "/tmp/dash.bolt",
		"-d", "postgres://db",
		"-blob-driver", "s3",
		"-s3-bucket", "bkt",
		"-s3-region", "eu-central-1",
		"-s3-endpoint", "http://minio:9000",
		"-s3-path-style",
		"-token-sign-key", "sign",
		"-token-issuer", "iss",
		"-access-token-duration", "10m",
		"-refresh-token-duration", "48h",
		"-client-ids", "one, two,,",
		"-request-timeout", "3s",
		"-push-debounce", "250ms",
		"-startup-delay", "0s",
		"-log-file", "/tmp/log",
		"-config", "/tmp/cfg.json",
	)

	cfg, err := ParseFlags()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "http://cloud:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "cid", cfg.Adapter.ClientID)
	assert.Equal(t, DBDriverBolt, cfg.Storage.DB.Driver)
	assert.Equal(t, "/tmp/dash.bolt", cfg.Storage.DB.DSN)
	assert.Equal(t, "postgres://db", cfg.Storage.DB.DatabaseURI)
	assert.Equal(t, BlobDriverS3, cfg.Storage.Blob.Driver)
	assert.Equal(t, S3{Bucket: "bkt", Region: "eu-central-1", Endpoint: "http://minio:9000", PathStyle: true}, cfg.Storage.Blob.S3)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "iss", cfg.App.TokenIssuer)
	assert.Equal(t, 10*time.Minute, cfg.App.AccessTokenDuration)
	assert.Equal(t, 48*time.Hour, cfg.App.RefreshTokenDuration)
	assert.Equal(t, []string{"one", "two"}, cfg.App.ClientIDs)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Workers.PushDebounce)
	assert.Equal(t, "/tmp/log", cfg.Log.File)
	assert.Equal(t, "/tmp/cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_NoFlags(t *testing.T) {
	resetFlags(t)

	cfg, err := ParseFlags()
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Nil(t, cfg.App.ClientIDs)
}

func TestParseFlags_BadAddress(t *testing.T) {
	resetFlags(t, "-a", "nope")

	_, err := ParseFlags()
	assert.Error(t, err)
}
