package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	input := `{ "Name": "widget", "Items": [ {"Id": 1}, {"Id": 2.50} ], "Empty": null }`
	testCases := []struct {
		description string
		args        []string
		expect      string
		hasError    bool
	}{
		{description: "compact", expect: `{"Name":"widget","Items":[{"Id":1},{"Id":2.5}],"Empty":null}`},
		{description: "check", args: []string{"--check"}, expect: `{"Name":"widget","Items":[{"Id":1},{"Id":2.5}],"Empty":null}`},
		{description: "select", args: []string{"--select", "Items[1].Id"}, expect: `2.5`},
		{description: "select missing", args: []string{"--select", "Items[5]"}, hasError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cmd := NewRootCommand()
			out := &bytes.Buffer{}
			cmd.SetIn(strings.NewReader(input))
			cmd.SetOut(out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(testCase.args)
			err := cmd.Execute()
			if testCase.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect+"\n", out.String())
		})
	}
}

func TestRootCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`[true, "a"]`), 0o644))
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"-v", path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "[true,\"a\"]\n", out.String())
	assert.Contains(t, errOut.String(), "parsing input")

	cmd = NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, cmd.Execute())

	cmd = NewRootCommand()
	cmd.SetIn(strings.NewReader(`{"a":`))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(nil)
	assert.Error(t, cmd.Execute())
}
