// Package mocks provides test doubles shared by the SDK client tests.
package mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// MockCredential is a TokenCredential that always returns a static token.
type MockCredential struct {
}

func (c *MockCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{
		Token:     "mock-token",
		ExpiresOn: time.Now().Add(time.Hour),
	}, nil
}

type RequestPredicate func(request *http.Request) bool

type expression struct {
	predicate RequestPredicate
	response  *http.Response
	err       error
}

// MockTransport is a policy.Transporter that replays configured responses for
// matching requests.
type MockTransport struct {
	expressions []*expression
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func (t *MockTransport) Do(req *http.Request) (*http.Response, error) {
	for _, expr := range t.expressions {
		if expr.predicate(req) {
			if expr.response != nil {
				expr.response.Request = req
			}
			return expr.response, expr.err
		}
	}

	panic(fmt.Sprintf("no mock found for request: '%s %s'", req.Method, req.URL))
}

func (t *MockTransport) When(predicate RequestPredicate) *MockExpression {
	expr := &expression{predicate: predicate}
	t.expressions = append(t.expressions, expr)

	return &MockExpression{transport: t, expr: expr}
}

type MockExpression struct {
	transport *MockTransport
	expr      *expression
}

func (e *MockExpression) Respond(statusCode int, body any) *MockTransport {
	e.expr.response = JsonResponse(statusCode, body)
	return e.transport
}

func (e *MockExpression) SetError(err error) *MockTransport {
	e.expr.err = err
	return e.transport
}

// JsonResponse builds an http.Response with a JSON body.
func JsonResponse(statusCode int, body any) *http.Response {
	var reader io.ReadCloser
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = io.NopCloser(bytes.NewBuffer(data))
	} else {
		reader = io.NopCloser(bytes.NewBuffer(nil))
	}

	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       reader,
	}
}

// ClientOptions returns azcore client options wired to the mock transport.
func ClientOptions(transport *MockTransport) *azcore.ClientOptions {
	return &azcore.ClientOptions{
		Transport: transport,
	}
}
