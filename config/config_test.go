package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, c Config)
		wantErr string
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			check: func(t *testing.T, c Config) {
				assert.Equal(t, Default(), c)
			},
		},
		{
			name: "overrides",
			yaml: `
server:
  addr: "127.0.0.1:9000"
  read_header_timeout: 2s
  max_uri_bytes: 2048
  hsts_max_age: 600
log:
  level: debug
  format: json
request_id:
  header: X-Trace-ID
  trust_incoming: true
metrics:
  enabled: false
`,
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "127.0.0.1:9000", c.Server.Addr)
				assert.Equal(t, 2*time.Second, c.Server.ReadHeaderTimeout)
				assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout, "unset keys keep defaults")
				assert.Equal(t, 2048, c.Server.MaxURIBytes)
				assert.Equal(t, int64(1<<20), c.Server.MaxBodyBytes)
				assert.Equal(t, 600, c.Server.HSTSMaxAge)
				assert.Equal(t, "debug", c.Log.Level)
				assert.Equal(t, "json", c.Log.Format)
				assert.Equal(t, "X-Trace-ID", c.RequestID.Header)
				assert.True(t, c.RequestID.TrustIncoming)
				assert.False(t, c.Metrics.Enabled)
			},
		},
		{
			name: "token scalar",
			yaml: "auth:\n  tokens: s3cret\n",
			check: func(t *testing.T, c Config) {
				assert.Equal(t, StringList{"s3cret"}, c.Auth.Tokens)
			},
		},
		{
			name: "token sequence",
			yaml: "auth:\n  tokens: [a, b]\n  forward: /signin\n",
			check: func(t *testing.T, c Config) {
				assert.Equal(t, StringList{"a", "b"}, c.Auth.Tokens)
				assert.Equal(t, "/signin", c.Auth.Forward)
			},
		},
		{
			name:    "token mapping",
			yaml:    "auth:\n  tokens: {a: b}\n",
			wantErr: "unsupported YAML node kind",
		},
		{
			name:    "unknown key",
			yaml:    "server:\n  adress: x\n",
			wantErr: "field adress not found",
		},
		{
			name:    "bad duration",
			yaml:    "server:\n  read_header_timeout: soon\n",
			wantErr: "config: decode",
		},
		{
			name:    "empty addr",
			yaml:    "server:\n  addr: \"\"\n",
			wantErr: "server.addr is required",
		},
		{
			name:    "zero uri limit",
			yaml:    "server:\n  max_uri_bytes: 0\n",
			wantErr: "server.max_uri_bytes must be positive",
		},
		{
			name:    "negative body limit",
			yaml:    "server:\n  max_body_bytes: -1\n",
			wantErr: "server.max_body_bytes must be positive",
		},
		{
			name:    "negative hsts",
			yaml:    "server:\n  hsts_max_age: -5\n",
			wantErr: "server.hsts_max_age must not be negative",
		},
		{
			name:    "bad level",
			yaml:    "log:\n  level: loud\n",
			wantErr: "log.level",
		},
		{
			name:    "bad format",
			yaml:    "log:\n  format: xml\n",
			wantErr: "log.format must be text or json",
		},
		{
			name:    "metrics path",
			yaml:    "metrics:\n  path: metrics\n",
			wantErr: "metrics.path must start with /",
		},
		{
			name:    "blank token",
			yaml:    "auth:\n  tokens: [\"ok\", \" \"]\n",
			wantErr: "auth.tokens[1] is empty",
		},
		{
			name:    "empty request id header",
			yaml:    "request_id:\n  header: \"\"\n",
			wantErr: "request_id.header is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gimli.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o600))

		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9090", c.Server.Addr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := Log{Level: "warn", Format: "json"}.NewLogger(&buf)
		require.NoError(t, err)
		assert.Equal(t, logrus.WarnLevel, l.GetLevel())

		l.Info("dropped")
		l.WithField("k", "v").Warn("kept")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "kept", entry["msg"])
		assert.Equal(t, "v", entry["k"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := Log{Level: "info", Format: "text"}.NewLogger(&buf)
		require.NoError(t, err)

		l.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := Log{Level: "nope"}.NewLogger(&bytes.Buffer{})
		assert.Error(t, err)
	})
}
