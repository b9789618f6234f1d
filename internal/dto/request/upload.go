package request

import "io"

// FileUpload is a file received in a multipart form.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Present reports whether a file was actually chosen in the form.
func (f *FileUpload) Present() bool {
	return f != nil && f.Filename != "" && f.Content != nil
}
