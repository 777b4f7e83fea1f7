package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--log-level", "none", "--locale", "en"}, args...)
	code := Execute(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestSampleEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "sample.bmp")
	dumpPath := filepath.Join(dir, "sample.bin")

	res := run(t, "", "sample", imagePath, "--width", "4", "--height", "3")
	require.Equal(t, 0, res.code, res.stderr)

	res = run(t, "", "encode", imagePath, dumpPath)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Success: The image was converted to binary")
	fi, err := os.Stat(dumpPath)
	require.NoError(t, err)
	assert.Equal(t, int64(8+4*3*3), fi.Size())

	res = run(t, "", "inspect", dumpPath)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "4x3")
	assert.Contains(t, res.stdout, "ok")

	res = run(t, "", "decode", dumpPath, dir)
	require.Equal(t, 0, res.code, res.stderr)
	_, err = os.Stat(filepath.Join(dir, "output_image.png"))
	require.NoError(t, err)
}

func TestFieldWidthFlag(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "sample.png")
	require.Equal(t, 0, run(t, "", "sample", imagePath, "--width", "2", "--height", "2").code)

	res := run(t, "", "--field-width", "4", "encode", imagePath, dir)
	require.Equal(t, 0, res.code, res.stderr)
	fi, err := os.Stat(filepath.Join(dir, "binary_output.txt"))
	require.NoError(t, err)
	assert.Equal(t, int64(8+2*2*3*4), fi.Size())
}

func TestDecodeMissingInputReportsError(t *testing.T) {
	dir := t.TempDir()
	res := run(t, "", "decode", filepath.Join(dir, "missing.bin"), dir)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "Error: Failed to open the binary file.\n", res.stderr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRussianNotifications(t *testing.T) {
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(),
		[]string{"--log-level", "none", "encode", filepath.Join(dir, "missing.png"), dir},
		strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Equal(t, "Ошибка: Не удалось загрузить изображение.\n", errOut.String())
}

func TestInspectMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 2, 0, 0, 0, 2, 0}, 0o644))

	res := run(t, "", "inspect", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "malformed dump")
}

func TestInteractive(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "in.png")
	require.Equal(t, 0, run(t, "", "sample", imagePath, "--width", "2", "--height", "2").code)

	res := run(t, "1\n"+imagePath+"\n"+dir+"\n")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Select a mode")
	_, err := os.Stat(filepath.Join(dir, "binary_output.txt"))
	require.NoError(t, err)

	res = run(t, "2\n"+filepath.Join(dir, "binary_output.txt")+"\n"+dir+"\n")
	require.Equal(t, 0, res.code, res.stderr)
	_, err = os.Stat(filepath.Join(dir, "output_image.png"))
	require.NoError(t, err)
}

func TestLayoutCommand(t *testing.T) {
	res := run(t, "", "layout")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "name: rawdump")

	res = run(t, "", "--variant", "legacy", "layout")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "name: legacy")

	res = run(t, "", "layout", filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, 1, res.code)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixeldump.yaml")

	res := run(t, "", "--variant", "legacy", "config", "init", path)
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "variant: legacy")

	res = run(t, "", "config", "init", path)
	assert.Equal(t, 1, res.code)

	res = run(t, "", "--config", path, "layout")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "name: legacy")
}

func TestInvalidConfiguration(t *testing.T) {
	res := run(t, "", "--field-width", "3", "layout")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "field_width")
}
