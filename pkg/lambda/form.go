package lambda

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
)

// FormFile is a file part of a multipart form submission.
type FormFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Form holds the parsed fields and files of a multipart request body.
type Form struct {
	Values map[string]string
	Files  map[string]*FormFile
}

// Value returns a form field value or an empty string.
func (f *Form) Value(name string) string {
	if f == nil || f.Values == nil {
		return ""
	}
	return f.Values[name]
}

// File returns a form file part or nil.
func (f *Form) File(name string) *FormFile {
	if f == nil || f.Files == nil {
		return nil
	}
	return f.Files[name]
}

// ParseForm parses a multipart/form-data request body into fields and files.
func (r *Request) ParseForm() (*Form, error) {
	contentType := r.Header("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content type: %w", err)
	}
	if mediaType != "multipart/form-data" {
		return nil, fmt.Errorf("unexpected content type: %s", mediaType)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, fmt.Errorf("multipart boundary missing")
	}

	form := &Form{
		Values: make(map[string]string),
		Files:  make(map[string]*FormFile),
	}

	reader := multipart.NewReader(bytes.NewReader(r.Body), boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read form part: %w", err)
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read form part %q: %w", part.FormName(), err)
		}

		if part.FileName() != "" {
			form.Files[part.FormName()] = &FormFile{
				Filename:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			}
		} else {
			form.Values[part.FormName()] = string(data)
		}
	}

	return form, nil
}
