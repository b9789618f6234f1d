package adaptor

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"print-shop/internal/dto/request"
	"print-shop/pkg/utils"
)

// in-memory part of a multipart form; the rest spills to temp files
const multipartMemory = 8 << 20

// forms without files
const maxPlainForm = 64 << 10

// parseForm reads a urlencoded or multipart body of at most maxBytes.
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return utils.InvalidFile(fmt.Sprintf("Ukuran unggahan melebihi batas %d MB.", maxBytes>>20))
	}
	if err != nil {
		return utils.InvalidArgument("Form tidak valid.")
	}
	return nil
}

// formFile returns nil when field carries no file.
func formFile(r *http.Request, field string) (*request.FileUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}
	return &request.FileUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, nil
}

func closeUpload(f *request.FileUpload) {
	if f == nil {
		return
	}
	if c, ok := f.Content.(io.Closer); ok {
		c.Close()
	}
}

func formValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.PostFormValue(field))
}

// formInt returns 0 for a missing or malformed number.
func formInt(r *http.Request, field string) int {
	n, err := strconv.Atoi(formValue(r, field))
	if err != nil {
		return 0
	}
	return n
}

func pageRequest(r *http.Request, perPage int) *request.PaginatedRequest {
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: perPage,
	}
}
