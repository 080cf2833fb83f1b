package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-offergen/internal/prompt"
	"github.com/goliatone/go-offergen/pkg/config"
	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/testsupport"
	"github.com/goliatone/go-offergen/pkg/xmlgen"
)

func run(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	if a == nil {
		a = &app{}
	}
	var stdout, stderr bytes.Buffer
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeDocument(t *testing.T, dir, name string, doc *offer.Document) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	valid := writeDocument(t, dir, "valid.json", testsupport.ElectricityOffer())

	out, _, err := run(t, nil, "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, `"isValid": true`)

	broken := testsupport.ElectricityOffer()
	broken.PaymentMethods = []offer.PaymentMethod{{Method: "99"}}
	path := writeDocument(t, dir, "broken.json", broken)

	out, _, err = run(t, nil, "validate", "--action", "update", path)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, `"isValid": false`)
	assert.Contains(t, out, "payment-methods.0.description")

	out, _, err = run(t, nil, "validate", "--section", "payment-methods", path)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "payment-methods.0.description")

	_, _, err = run(t, nil, "validate", "--action", "delete", valid)
	require.Error(t, err)
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	path := writeDocument(t, dir, "offer.json", testsupport.ElectricityOffer())

	out, _, err := run(t, nil, "generate", "--out-dir", outDir, path)
	require.NoError(t, err)

	target := filepath.Join(outDir, "ABCDEFGH12345678_INSERIMENTO_WINTEROFFER2024.XML")
	assert.Equal(t, target, strings.TrimSpace(out))
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	want, err := xmlgen.Generate(testsupport.ElectricityOffer())
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	out, _, err = run(t, nil, "generate", "--stdout", path)
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestGenerateCommand_Invalid(t *testing.T) {
	doc := testsupport.GasOffer()
	doc.Validity = nil
	path := writeDocument(t, t.TempDir(), "gas.json", doc)

	out, errOut, err := run(t, nil, "generate", "--stdout", path)
	require.ErrorIs(t, err, errInvalid)
	assert.Empty(t, out)
	assert.Contains(t, errOut, `"isValid": false`)
}

func TestGenerateCommand_ConfigDrivesOutput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "offergen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`schemaLocation: offerta.xsd
output:
  minify: true
log:
  level: error
`), 0o644))
	path := writeDocument(t, dir, "gas.json", testsupport.GasOffer())

	out, _, err := run(t, nil, "--config", cfgPath, "generate", "--stdout", path)
	require.NoError(t, err)

	want, err := xmlgen.Generate(testsupport.GasOffer(), xmlgen.WithMinify(), xmlgen.WithSchemaLocation("offerta.xsd"))
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	invalid := testsupport.GasOffer()
	invalid.OfferDetails = nil

	args := []string{
		"batch", "--out-dir", outDir,
		writeDocument(t, dir, "electricity.json", testsupport.ElectricityOffer()),
		writeDocument(t, dir, "invalid.json", invalid),
		filepath.Join(dir, "missing.json"),
		writeDocument(t, dir, "gas.json", testsupport.GasOffer()),
	}
	out, _, err := run(t, nil, args...)
	require.EqualError(t, err, "2 of 4 documents failed")

	assert.Contains(t, out, "ok    ABCDEFGH12345678_INSERIMENTO_WINTEROFFER2024.XML")
	assert.Contains(t, out, "ok    ABCDEFGH12345678_INSERIMENTO_GASINDEX.XML")
	assert.Contains(t, out, "fail  "+filepath.Join(dir, "invalid.json"))
	assert.Contains(t, out, "fail  "+filepath.Join(dir, "missing.json"))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	data, err := xmlgen.Generate(testsupport.DualOffer())
	require.NoError(t, err)
	good := filepath.Join(dir, "dual.xml")
	require.NoError(t, os.WriteFile(good, data, 0o644))

	out, _, err := run(t, nil, "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, `"isValid": true`)

	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<Offerta><Contatti></Offerta>"), 0o644))
	out, _, err = run(t, nil, "check", bad)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, `"code": "fatal"`)
}

func TestFileNameCommands(t *testing.T) {
	out, _, err := run(t, nil, "filename",
		"--identity", testsupport.IdentityCode,
		"--action", "update",
		"--description", "Winter Offer 2024!!")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH12345678_AGGIORNAMENTO_WINTEROFFER2024.XML\n", out)

	_, _, err = run(t, nil, "filename", "--identity", "SHORT", "--description", "x")
	require.Error(t, err)

	out, _, err = run(t, nil, "parse-name", "ABCDEFGH12345678_INSERIMENTO_WINTEROFFER2024_1718000000123.XML")
	require.NoError(t, err)
	assert.JSONEq(t, `{
  "identityCode": "ABCDEFGH12345678",
  "action": "INSERIMENTO",
  "description": "WINTEROFFER2024",
  "suffix": "1718000000123"
}`, out)
}

type scriptedDriver struct {
	inputs  []string
	selects []int
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, errors.New("no confirm scripted")
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (d *scriptedDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestFileNameCommand_Interactive(t *testing.T) {
	a := &app{driver: &scriptedDriver{
		inputs:  []string{testsupport.IdentityCode, "Gas Index"},
		selects: []int{0},
	}}

	out, _, err := run(t, a, "filename", "--interactive")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH12345678_INSERIMENTO_GASINDEX.XML\n", out)
}

func TestSetup_RejectsBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "offergen.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[log]\nformat = \"xml\"\n"), 0o644))

	_, _, err := run(t, nil, "--config", cfgPath, "parse-name", "x")
	require.ErrorContains(t, err, "Config.Log.Format failed oneof")
}
