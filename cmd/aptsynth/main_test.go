package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/jhump/annosynth/internal/config"
	"github.com/jhump/annosynth/validation"
)

const model = `schema: 1.0.0
files:
  - path: Order.cs
    decls:
      - namespace: Shop
        decls:
          - class: Codes
            attributes: [[{name: ClassToList}]]
            decls:
              - field: string
                modifiers: [public, const]
                vars:
                  - name: A
                    init: {text: '"a"', const: {kind: string, value: a}}
          - class: Order
            decls:
              - property: Amount
                type: decimal
                attributes: [[{name: AmountValidation}]]
              - property: Qty
                type: int
                attributes: [[{name: QtyValidation, args: []}]]
          - enum: Color
            members: [{name: Red}]
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--color=off"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(snap, []byte(model), 0o644))
	outDir := filepath.Join(dir, "out")
	cfgFile := filepath.Join(dir, "aptsynth.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("output_dir = \""+filepath.ToSlash(outDir)+"\"\n"), 0o644))

	_, err := execute(t, "--config", cfgFile, "run", snap, "--bare-marker", "abort")
	require.NoError(t, err)

	for _, name := range []string{"Shop.cs", "EnumToConstants.cs", "AmountValidation.cs"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(outDir, "QtyValidation.cs"))
	require.True(t, os.IsNotExist(err), "abort policy must skip candidates after a bare marker")
}

func TestRegistrations(t *testing.T) {
	cfg := config.Default()
	cfg.Generators = []string{validation.Name, "enumconst"}
	procs, err := registrations(cfg)
	require.NoError(t, err)
	require.Len(t, procs, 2)
	require.Equal(t, validation.Name, procs[0].Name)
	require.Equal(t, "enumconst", procs[1].Name)

	cfg.Generators = []string{"nope"}
	_, err = registrations(cfg)
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "--type", "int", "--zero", "--null=false", "--name", "Qty", "5")
	require.NoError(t, err)
	require.Equal(t, "Qty is valid\n", out)

	_, err = execute(t, "check", "--type", "int", "--zero", "--null=false", "--name", "Qty", "0")
	require.True(t, errors.Is(err, validation.ErrInvalid), "unexpected error: %v", err)
	require.EqualError(t, err, "Qty is invalid")

	_, err = execute(t, "check", "--type", "string", "1")
	require.Error(t, err)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(in, []byte(model), 0o644))
	out := filepath.Join(dir, "model.json")

	_, err := execute(t, "convert", in, out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "{"))
	require.Contains(t, string(data), `"schema": "1.0.0"`)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	color.NoColor = true
	printError(&buf, errors.Join(errors.New("first"), errors.New("second")))
	require.Contains(t, buf.String(), "first\n")
	require.Contains(t, buf.String(), "second\n")
	require.Equal(t, 2, strings.Count(buf.String(), "error:"))
}
