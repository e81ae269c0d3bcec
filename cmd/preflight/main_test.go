package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer returns a test server that allows any CORS-preflight request
// and sends the request headers it receives on the returned channel.
func newServer(t *testing.T) (*httptest.Server, <-chan http.Header) {
	t.Helper()
	received := make(chan http.Header, 1)
	h := func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Clone()
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Vary", "Origin")
		w.WriteHeader(http.StatusNoContent)
	}
	srv := httptest.NewServer(http.HandlerFunc(h))
	t.Cleanup(srv.Close)
	return srv, received
}

func runWith(t *testing.T, ctx context.Context, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = run(ctx, args, &outBuf, &errBuf, nil)
	return code, outBuf.String(), errBuf.String()
}

func TestUsage(t *testing.T) {
	cases := []struct {
		desc string
		args []string
	}{
		{desc: "no arguments"},
		{desc: "short help flag", args: []string{"-h"}},
		{desc: "long help flag", args: []string{"https://example.com", "--help"}},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			code, stdout, stderr := runWith(t, context.Background(), tc.args...)
			assert.Equal(t, exitOK, code)
			assert.Empty(t, stderr)
			assert.True(t, strings.HasPrefix(stdout, "Preflight v0.1-alpha\n"))
			assert.Contains(t, stdout, "preflight <url> [<options>]")
			for _, flag := range []string{"--method", "--headers", "--origin", "--no-color", "--env-file"} {
				assert.Contains(t, stdout, flag)
			}
			assert.Contains(t, stdout, "PREFLIGHT_ORIGIN")
		})
	}
}

func TestVersion(t *testing.T) {
	for _, arg := range []string{"-v", "--version"} {
		code, stdout, _ := runWith(t, context.Background(), arg)
		assert.Equal(t, exitOK, code)
		assert.Equal(t, "Preflight v0.1-alpha\n", stdout)
	}
}

func TestInputErrors(t *testing.T) {
	cases := []struct {
		desc string
		args []string
		want []string // substrings of stderr
	}{
		{
			desc: "unknown flag",
			args: []string{"https://example.com", "--bogus"},
			want: []string{"unknown flag: --bogus", "--help"},
		}, {
			desc: "flag without value",
			args: []string{"https://example.com", "--method"},
			want: []string{"flag needs an argument"},
		}, {
			desc: "missing URL",
			args: []string{"--method", "PUT"},
			want: []string{"you must specify a URL"},
		}, {
			desc: "two URLs",
			args: []string{"https://example.com", "https://example.org"},
			want: []string{`"https://example.org"`},
		}, {
			desc: "several mistakes at once",
			args: []string{"ftp://example.com", "-m", "bad method", "-e", "x-foo,bad header", "-o", "https://example.com/path"},
			want: []string{
				"ftp://example.com",
				"bad method",
				"bad header",
				"https://example.com/path",
			},
		}, {
			desc: "required origin",
			args: []string{"https://example.com", "--require-origin"},
			want: []string{"you must specify an origin"},
		}, {
			desc: "invalid log level",
			args: []string{"https://example.com", "--log-level", "chatty"},
			want: []string{"chatty"},
		}, {
			desc: "missing env file",
			args: []string{"https://example.com", "--env-file", filepath.Join(t.TempDir(), "nope.env")},
			want: []string{"loading env file"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			code, stdout, stderr := runWith(t, context.Background(), tc.args...)
			assert.Equal(t, exitInput, code)
			assert.Empty(t, stdout)
			for _, want := range tc.want {
				assert.Contains(t, stderr, want)
			}
		})
	}
}

func TestEveryExtraURLIsReported(t *testing.T) {
	code, stdout, stderr := runWith(t, context.Background(),
		"https://example.com",
		"https://example.org",
		"https://example.net",
	)
	require.Equal(t, exitInput, code)
	assert.Empty(t, stdout)
	lines := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"https://example.org"`)
	assert.Contains(t, lines[1], `"https://example.net"`)
}

func TestSeveralInputErrorsArePrintedOnSeparateLines(t *testing.T) {
	code, _, stderr := runWith(t, context.Background(),
		"ftp://example.com",
		"-m", "bad method",
		"-o", "https://example.com/path",
	)
	require.Equal(t, exitInput, code)
	lines := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "preflight: "), line)
	}
}

func TestPlainOutput(t *testing.T) {
	srv, received := newServer(t)
	code, stdout, stderr := runWith(t, context.Background(),
		srv.URL,
		"--plain",
		"-m", "put",
		"-e", "content-type,x-requested-with",
		"-o", "https://Example.com:443/",
	)
	require.Equal(t, exitOK, code, stderr)

	hdrs := <-received
	assert.Equal(t, "PUT", hdrs.Get("Access-Control-Request-Method"))
	assert.Equal(t, "content-type,x-requested-with", hdrs.Get("Access-Control-Request-Headers"))
	assert.Equal(t, "https://example.com", hdrs.Get("Origin"))
	assert.Equal(t, "Preflight/0.1-alpha", hdrs.Get("User-Agent"))

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "REQUEST OPTIONS "+srv.URL, lines[0])
	assert.Contains(t, lines, "HEADER > Origin: https://example.com")
	assert.Contains(t, lines, "RESPONSE 204 No Content")
	assert.Contains(t, lines, "HEADER < Vary: Origin")
	wantTail := []string{
		"PASSED Status code is 204 No Content.",
		"PASSED Access-Control-Allow-Origin is present.",
		"PASSED Access-Control-Allow-Methods is present.",
		"PASSED Access-Control-Allow-Headers is present.",
		"SKIPPED Access-Control-Max-Age was not used.",
	}
	assert.Equal(t, wantTail, lines[len(lines)-len(wantTail):])
}

func TestConsoleOutputWithoutColors(t *testing.T) {
	srv, _ := newServer(t)
	code, stdout, stderr := runWith(t, context.Background(), srv.URL, "--no-color", "-o", "example.com")
	require.Equal(t, exitOK, code)
	assert.NotContains(t, stdout, "\x1b[")
	assert.True(t, strings.HasPrefix(stdout, "OPTIONS "+srv.URL+"\n"), stdout)
	assert.Contains(t, stdout, "> Origin: https://example.com\n")
	assert.Contains(t, stdout, "< Access-Control-Allow-Origin: *\n")
	assert.Contains(t, stdout, "204 No Content\n")
	// GET is safelisted and no headers were requested;
	// such advisories are logged, not printed among the records.
	assert.NotContains(t, stdout, "WARNING")
	assert.Contains(t, stderr, "level=warning")
	assert.Contains(t, stderr, "GET is a CORS-safelisted method")
	assert.Contains(t, stdout, "SKIPPED Access-Control-Request-Headers was not used.\n")
}

func TestEnvironment(t *testing.T) {
	t.Run("environment variables stand in for flags", func(t *testing.T) {
		t.Setenv("PREFLIGHT_ORIGIN", "https://from-env.example")
		t.Setenv("PREFLIGHT_METHOD", "delete")
		srv, received := newServer(t)
		code, _, stderr := runWith(t, context.Background(), srv.URL, "--plain")
		require.Equal(t, exitOK, code, stderr)
		hdrs := <-received
		assert.Equal(t, "https://from-env.example", hdrs.Get("Origin"))
		assert.Equal(t, "DELETE", hdrs.Get("Access-Control-Request-Method"))
	})
	t.Run("flags win over environment variables", func(t *testing.T) {
		t.Setenv("PREFLIGHT_ORIGIN", "https://from-env.example")
		srv, received := newServer(t)
		code, _, stderr := runWith(t, context.Background(), srv.URL, "--plain", "-o", "https://from-flag.example")
		require.Equal(t, exitOK, code, stderr)
		hdrs := <-received
		assert.Equal(t, "https://from-flag.example", hdrs.Get("Origin"))
	})
	t.Run("env file", func(t *testing.T) {
		const key = "PREFLIGHT_HEADERS"
		// godotenv doesn't override variables that are already set;
		// t.Setenv records the original state of key so as to restore it.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
		path := filepath.Join(t.TempDir(), "preflight.env")
		require.NoError(t, os.WriteFile(path, []byte(key+"=authorization\n"), 0o600))
		srv, received := newServer(t)
		code, _, stderr := runWith(t, context.Background(), srv.URL, "--plain", "--env-file", path)
		require.Equal(t, exitOK, code, stderr)
		hdrs := <-received
		assert.Equal(t, "authorization", hdrs.Get("Access-Control-Request-Headers"))
	})
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	code, stdout, stderr := runWith(t, context.Background(), url, "--plain")
	assert.Equal(t, exitTransport, code)
	assert.Contains(t, stdout, "ERROR preflight: sending preflight request: ")
	assert.NotContains(t, stdout, "RESPONSE")
	assert.NotContains(t, stdout, "PASSED")
	// transport errors are logged at error level, which the default
	// log level lets through
	assert.Contains(t, stderr, "preflight request failed")
}

func TestCanceled(t *testing.T) {
	srv, _ := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code, stdout, _ := runWith(t, ctx, srv.URL, "--plain")
	assert.Equal(t, exitCanceled, code)
	assert.True(t, strings.HasSuffix(stdout, "WARNING Aborted by user!\n"), stdout)
	assert.NotContains(t, stdout, "ERROR")
}

func TestDebugLogs(t *testing.T) {
	srv, _ := newServer(t)
	code, _, stderr := runWith(t, context.Background(), srv.URL, "--plain", "--log-level", "debug")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "sending preflight request")
	assert.Contains(t, stderr, "received preflight response")
}
