package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/domgraph/internal/observability"
)

const catalogHTML = `<!DOCTYPE html>
<html><head><title>Catalog</title></head>
<body><ul id="items"><li class="item">One</li><li class="item">Two</li></ul></body></html>`

const shopHTML = `<!DOCTYPE html>
<html><head><title>  Shop
  Front </title></head><body>
<div id="main"><a href="/cart">Cart</a><a href="https://other.example/x">X</a><a href="/cart">Cart again</a></div>
<form id="login" action="/session" method="POST"><input name="user"><input name="pass" type="password"><button>Go</button></form>
</body></html>`

// executeCommand runs a fresh root command and returns what it wrote to
// stdout. The global logger is reset around each run so config changes take
// effect.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)
	t.Setenv("DOMGRAPH_LOGGER_LEVEL", "error")

	rootCmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// writeFile creates name with content in a per-test directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
