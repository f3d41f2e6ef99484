package validators

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNameTooLong     = errors.New("file name is too long")
	ErrFileTypeUnsupported = errors.New("unsupported file type")
	ErrNoFile              = errors.New("no file provided")
)

const maxFileNameSize = 200 // Leaves room for the timestamp prefix

// FileValidator checks an uploaded file against the configured size
// limit and allowed mime types. Returns the status code to respond
// with alongside the opened file
func FileValidator(fh *multipart.FileHeader) (int, multipart.File, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, ErrNoFile
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, ErrFileNameTooLong
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, nil, ErrFileTooLarge
	}

	allowed := viper.GetStringSlice("upload.allowed_types")

	// Check headers first which is easy to spoof, but faster for legit clients
	if !typeAllowed(fh.Header.Get("Content-Type"), allowed) {
		return http.StatusBadRequest, nil, ErrFileTypeUnsupported
	}

	// And now do the checks on the actual file to avoid
	// malicious clients
	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	if !typeAllowed(mime.String(), allowed) {
		f.Close()
		return http.StatusBadRequest, nil, ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	return 0, f, nil
}

func typeAllowed(ct string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}

	for _, prefix := range allowed {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}

	return false
}
