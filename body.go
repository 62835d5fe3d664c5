package fetchx

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

// Payload is a serialized request body.
type Payload struct {
	// Body is the content sent on the wire.
	Body io.Reader

	// ContentType is the content type dictated by the payload itself, such as
	// a multipart type carrying its boundary. Empty when the payload has no
	// opinion and the merged headers decide.
	ContentType string
}

// IsMultipart reports whether the payload is a multipart body.
func (p Payload) IsMultipart() bool {
	mediaType, _, err := mime.ParseMediaType(p.ContentType)
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}

// BodySerializer turns a body value into a Payload. It must not have side
// effects.
type BodySerializer func(body any) (Payload, error)

// DefaultBodySerializer JSON-encodes the body. Values that already are wire
// content (Payload, *FormData, io.Reader, []byte) are passed through.
func DefaultBodySerializer(body any) (Payload, error) {
	switch v := body.(type) {
	case Payload:
		return v, nil
	case *FormData:
		return v.Encode()
	case io.Reader:
		return Payload{Body: v}, nil
	case []byte:
		return Payload{Body: bytes.NewReader(v)}, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Body: bytes.NewReader(data)}, nil
}

// FormData is a multipart/form-data request body. The default content type
// is dropped when it is sent; the payload carries its own boundary.
type FormData struct {
	// Fields are simple form fields, written in key order.
	Fields map[string]string

	// Files are file upload fields.
	Files []FileField
}

// FileField is a file to upload in a multipart body.
type FileField struct {
	FieldName string
	FileName  string
	// ContentType defaults to application/octet-stream.
	ContentType string
	Data        []byte
	// Reader is used instead of Data when set.
	Reader io.Reader
}

// Encode writes the multipart body.
func (f *FormData) Encode() (Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		if err := w.WriteField(k, f.Fields[k]); err != nil {
			return Payload{}, err
		}
	}

	for _, file := range f.Files {
		part, err := createFilePart(w, file)
		if err != nil {
			return Payload{}, err
		}

		if file.Reader != nil {
			if _, err := io.Copy(part, file.Reader); err != nil {
				return Payload{}, err
			}
		} else if _, err := part.Write(file.Data); err != nil {
			return Payload{}, err
		}
	}

	if err := w.Close(); err != nil {
		return Payload{}, err
	}

	return Payload{Body: &buf, ContentType: w.FormDataContentType()}, nil
}

func createFilePart(w *multipart.Writer, file FileField) (io.Writer, error) {
	if file.ContentType == "" {
		return w.CreateFormFile(file.FieldName, file.FileName)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="`+escapeQuotes(file.FieldName)+`"; filename="`+escapeQuotes(file.FileName)+`"`)
	header.Set("Content-Type", file.ContentType)
	return w.CreatePart(header)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
