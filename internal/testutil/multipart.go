package testutil

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
)

// Upload is one file part of a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartBody encodes uploads under the "files" field plus any plain
// fields. It returns the body and its Content-Type header.
func MultipartBody(uploads []Upload, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, u.Filename))
		h.Set("Content-Type", u.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(u.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return body, w.FormDataContentType(), nil
}

// FileHeaders parses uploads back into multipart file headers, the form
// the server hands to services.
func FileHeaders(uploads []Upload) ([]*multipart.FileHeader, error) {
	body, contentType, err := MultipartBody(uploads, nil)
	if err != nil {
		return nil, err
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, err
	}

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(64 << 20)
	if err != nil {
		return nil, err
	}
	return form.File["files"], nil
}
