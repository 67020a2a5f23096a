package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/me/jsonsettings/pkg/model"
)

// HTTPError is returned for any response with an unexpected status.
type HTTPError struct {
	StatusCode int
	APIError   *model.APIError // decoded error body, nil if absent
}

func (e *HTTPError) Error() string {
	if e.APIError != nil {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.APIError.Error())
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

func parseError(resp *http.Response) error {
	he := &HTTPError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errResp model.ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
		he.APIError = errResp.Error
	}
	return he
}
