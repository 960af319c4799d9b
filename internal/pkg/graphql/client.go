package graphql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

var (
	ErrMissingEndpoint = errors.New("graphql endpoint is missing")
	ErrMissingData     = errors.New("graphql response has no data")
)

type Request struct {
	OperationName string                 `json:"operationName,omitempty"`
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type ClientOptions struct {
	Endpoint string
	Token    string
	// Optional. A fresh resty client is created when nil.
	HTTP *resty.Client
}

type Client struct {
	endpoint string
	token    string
	http     *resty.Client
}

func New(o *ClientOptions) (*Client, error) {
	if strings.TrimSpace(o.Endpoint) == "" {
		return nil, ErrMissingEndpoint
	}

	rc := o.HTTP
	if rc == nil {
		rc = resty.New()
	}

	return &Client{
		endpoint: o.Endpoint,
		token:    o.Token,
		http:     rc,
	}, nil
}

// Do posts req and returns the "data" member of the response. GraphQL
// level failures come back as Errors, transport failures as *HTTPError.
func (c *Client) Do(ctx context.Context, req *Request) (gjson.Result, error) {
	requestID := uuid.NewString()

	r := c.http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetHeader("x-request-id", requestID).
		SetBody(req)
	if c.token != "" {
		r.SetAuthToken(c.token)
	}

	res, err := r.Post(c.endpoint)
	if err != nil {
		return gjson.Result{}, err
	}

	log.Debug().
		Str("operation", req.OperationName).
		Str("requestId", requestID).
		Int("status", res.StatusCode()).
		Msg("graphql request done")

	body := res.Body()
	parsed := gjson.ParseBytes(body)

	if errs := parseErrors(parsed.Get("errors")); len(errs) > 0 {
		return gjson.Result{}, errs
	}

	if res.IsError() {
		return gjson.Result{}, &HTTPError{
			StatusCode: res.StatusCode(),
			Body:       string(body),
		}
	}

	data := parsed.Get("data")
	if !data.Exists() || data.Type == gjson.Null {
		return gjson.Result{}, ErrMissingData
	}

	return data, nil
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graphql request failed with status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}
