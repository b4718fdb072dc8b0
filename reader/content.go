package reader

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdf2xlsx/graphicsstate"
	"github.com/tsawler/pdf2xlsx/model"
)

// pageContent returns the decoded content of a page. A Contents array is
// concatenated with newlines between the parts. A page without Contents is
// blank and yields no data.
func pageContent(page pdf.Value) ([]byte, error) {
	contents := page.Key("Contents")

	switch contents.Kind() {
	case pdf.Null:
		return nil, nil
	case pdf.Stream:
		return readStream(contents)
	case pdf.Array:
		var buf bytes.Buffer
		for i := 0; i < contents.Len(); i++ {
			data, err := readStream(contents.Index(i))
			if err != nil {
				return nil, fmt.Errorf("contents[%d]: %w", i, err)
			}
			buf.Write(data)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("contents is not a stream")
	}
}

// readStream decodes a stream object. The pdf package panics on filters it
// does not support; that is reported as an error.
func readStream(v pdf.Value) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			data = nil
			err = fmt.Errorf("%v", rec)
		}
	}()

	if v.Kind() != pdf.Stream {
		return nil, fmt.Errorf("not a stream")
	}
	rc := v.Reader()
	defer rc.Close()
	return io.ReadAll(rc)
}

// xobjects resolves Form XObjects from a resources XObject dictionary.
type xobjects struct {
	dict pdf.Value
}

// Form implements graphicsstate.FormResolver.
func (x xobjects) Form(name string) (*graphicsstate.Form, bool, error) {
	v := x.dict.Key(name)
	if v.Kind() != pdf.Stream || v.Key("Subtype").Name() != "Form" {
		return nil, false, nil
	}

	data, err := readStream(v)
	if err != nil {
		return nil, false, err
	}

	form := &graphicsstate.Form{Content: data, Matrix: formMatrix(v.Key("Matrix"))}
	if res := v.Key("Resources"); res.Kind() == pdf.Dict {
		form.Resources = xobjects{dict: res.Key("XObject")}
	}
	return form, true, nil
}

func formMatrix(v pdf.Value) model.Matrix {
	if v.Kind() != pdf.Array || v.Len() != 6 {
		return model.Identity()
	}
	var m model.Matrix
	for i := range m {
		m[i] = v.Index(i).Float64()
	}
	return m
}
