package cbhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	retry "github.com/avast/retry-go"
	"github.com/gorilla/schema"

	lhttp "github.com/redvlock/agenta/pkg/http"
)

type Request struct {
	Method        string
	URI           string
	Header        http.Header
	Query         url.Values
	Body          io.ReadCloser
	ContentLength int64
	HErr          *lhttp.HttpError
	Context       context.Context
	retryOptions  []retry.Option
}

type RequestOption func(*Request) *Request

func NewRequest(ctx context.Context, method, uri string, options ...RequestOption) *Request {
	r := &Request{
		Method:  method,
		URI:     uri,
		Context: ctx,
	}

	return r.Options(options...)
}

func (r *Request) Options(options ...RequestOption) *Request {
	for _, opt := range options {
		r = opt(r)
	}
	return r
}

var schemaEncoder = schema.NewEncoder()

func init() {
	schemaEncoder.SetAliasTag("json")
}

// QueryObj encodes a struct into the query string using its json tags.
func QueryObj(obj interface{}) RequestOption {
	return func(r *Request) *Request {
		query := url.Values{}
		if err := schemaEncoder.Encode(obj, query); err != nil {
			r.HErr = &lhttp.HttpError{Err: err}
		} else {
			r.Query = query
		}
		return r
	}
}

func Query(obj url.Values) RequestOption {
	return func(r *Request) *Request {
		r.Query = obj
		return r
	}
}

func BodyObj(obj interface{}) RequestOption {
	return func(r *Request) *Request {
		buffer := &bytes.Buffer{}
		if err := json.NewEncoder(buffer).Encode(obj); err != nil {
			r.HErr = &lhttp.HttpError{Err: err}
			return r
		}

		r.Body = io.NopCloser(buffer)
		return AddHeader("content-type", "application/json")(r)
	}
}

func Body(reader io.Reader) RequestOption {
	if readcloser, ok := reader.(io.ReadCloser); ok {
		return func(r *Request) *Request {
			r.Body = readcloser
			return r
		}
	}
	return func(r *Request) *Request {
		r.Body = io.NopCloser(reader)
		return r
	}
}

func AddHeader(key, value string) RequestOption {
	return func(r *Request) *Request {
		if r.Header == nil {
			r.Header = make(map[string][]string)
		}
		r.Header.Add(key, value)
		return r
	}
}

func SetHeader(key, value string) RequestOption {
	return func(r *Request) *Request {
		if r.Header == nil {
			r.Header = make(map[string][]string)
		}
		r.Header.Set(key, value)
		return r
	}
}
