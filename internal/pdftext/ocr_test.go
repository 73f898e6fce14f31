package pdftext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type stubRunner struct {
	calls  []call
	out    map[string][]byte
	errs   map[string]error
	stderr []byte
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, call{name: name, args: args})
	if err := r.errs[name]; err != nil {
		return nil, r.stderr, err
	}
	return r.out[name], nil, nil
}

func TestCommandOCR_RecognizePage(t *testing.T) {
	r := &stubRunner{out: map[string][]byte{"tesseract": []byte("Bill Amount: 120\n")}}
	o := NewCommandOCRWithRunner(Config{DPI: 200, TessdataDir: "/usr/share/tessdata"}, r, nil)

	text, err := o.RecognizePage(context.Background(), "/tmp/in.pdf", 3)
	require.NoError(t, err)
	assert.Equal(t, "Bill Amount: 120\n", text)

	require.Len(t, r.calls, 2)
	render := r.calls[0]
	assert.Equal(t, "pdftoppm", render.name)
	assert.Equal(t, []string{"-f", "3", "-l", "3", "-r", "200", "-png", "-singlefile", "/tmp/in.pdf"}, render.args[:9])

	recognize := r.calls[1]
	assert.Equal(t, "tesseract", recognize.name)
	assert.Equal(t, render.args[9]+".png", recognize.args[0])
	assert.Equal(t, []string{"stdout", "-l", "eng", "--tessdata-dir", "/usr/share/tessdata"}, recognize.args[1:])
}

func TestCommandOCR_RenderFailure(t *testing.T) {
	r := &stubRunner{
		errs:   map[string]error{"pdftoppm": errors.New("exit status 1")},
		stderr: []byte("Syntax Error: Couldn't read xref table"),
	}
	o := NewCommandOCRWithRunner(Config{}, r, nil)

	_, err := o.RecognizePage(context.Background(), "/tmp/in.pdf", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm page 1")
	assert.Contains(t, err.Error(), "xref table")
	assert.Len(t, r.calls, 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...(truncated)", truncate("abcdef", 2))
}
