package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// ReadRawResponse reads the raw HTTP response and attempts to convert it into
// the specified type.
func ReadRawResponse[T any](response *http.Response) (*T, error) {
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	instance := new(T)

	err = json.Unmarshal(data, instance)
	if err != nil {
		return nil, fmt.Errorf("failed unmarshalling JSON from response: %w", err)
	}

	return instance, nil
}

// HandleRequestError shapes a transport-level failure into a response error
// when a response is available, otherwise returns the original error.
func HandleRequestError(response *http.Response, err error) error {
	if response == nil {
		return err
	}

	return runtime.NewResponseError(response)
}
