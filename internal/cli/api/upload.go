package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
)

// UploadFile отправляет файл multipart/form-data вместе с дополнительными
// полями формы. Проходит через общий диспетчер: Bearer-токен и цикл
// обновления при 401 работают так же, как для JSON-запросов.
func (c *Client) UploadFile(ctx context.Context, path, fieldName, fileName string, data []byte, fields map[string]string) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, &APIError{Message: fmt.Sprintf("write form field %q: %v", k, err), Code: CodeUnexpected, Err: err}
		}
	}
	fw, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, &APIError{Message: "create form file: " + err.Error(), Code: CodeUnexpected, Err: err}
	}
	if _, err := fw.Write(data); err != nil {
		return nil, &APIError{Message: "write form file: " + err.Error(), Code: CodeUnexpected, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &APIError{Message: "finalize multipart body: " + err.Error(), Code: CodeUnexpected, Err: err}
	}

	return c.DoRaw(ctx, http.MethodPost, path, buf.Bytes(), mw.FormDataContentType())
}
