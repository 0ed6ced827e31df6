package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderCommands(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/someone/repos":
			fmt.Fprint(w, `[{"name":"a"}]`)
		case "/repos/someone/a/commits":
			fmt.Fprint(w, `[{"author":{"login":"alice"},"commit":{"message":"fix bug"}}]`)
		case "/repos/someone/broken/commits":
			fmt.Fprint(w, `not json`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	testCases := []struct {
		name        string
		args        []string
		expectedOut string
		expectedLog string
		expectError bool
	}{
		{
			name:        "repositories",
			args:        []string{"render", "repositories"},
			expectedOut: `<ul><li>a - <a href="#" data-repo="a" hx-get="/repositories/a/commits" hx-target="#commits">Get Commits</a></li></ul>` + "\n",
		},
		{
			name:        "commits",
			args:        []string{"render", "commits", "a"},
			expectedOut: `<ul><li><strong>alice</strong> - fix bug</li></ul>` + "\n",
		},
		{
			name:        "malformed body writes nothing",
			args:        []string{"render", "commits", "broken"},
			expectedLog: "Commit list not rendered",
			expectError: true,
		},
		{
			name:        "missing repository argument",
			args:        []string{"render", "commits"},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := append(tc.args, "--user", "someone", "--api-url", upstream.URL)
			out, errOut, err := executeRoot(t, args...)
			if tc.expectError {
				assert.Error(t, err)
				assert.Empty(t, out)
				assert.Contains(t, errOut, tc.expectedLog)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedOut, out)
			}
		})
	}
}
