package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestBackend reads collections from a PostgREST-compatible endpoint.
type RestBackend struct {
	client *resty.Client
}

type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func NewRestBackend(baseURL, anonKey string, timeout time.Duration) *RestBackend {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("apikey", anonKey).
		SetAuthToken(anonKey).
		SetHeader("Accept", "application/json")
	return &RestBackend{client: client}
}

// Params renders q as PostgREST query parameters.
func Params(q Query) url.Values {
	v := url.Values{}

	sel := []string{"*"}
	for _, embed := range q.Embed {
		sel = append(sel, embed+"(*)")
	}
	v.Set("select", strings.Join(sel, ","))

	for _, f := range q.Filters {
		v.Add(f.Column, "eq."+fmt.Sprint(f.Value))
	}
	if q.Order != nil {
		dir := "asc"
		if q.Order.Desc {
			dir = "desc"
		}
		v.Set("order", q.Order.Column+"."+dir)
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprint(q.Limit))
	}
	return v
}

func (b *RestBackend) Select(ctx context.Context, q Query, dest any) error {
	apiErr := &restError{}
	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(Params(q)).
		SetResult(dest).
		SetError(apiErr).
		Get("/rest/v1/" + string(q.Collection))
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return fmt.Errorf("backend returned %d: %s", resp.StatusCode(), apiErr.Message)
		}
		return fmt.Errorf("backend returned %d", resp.StatusCode())
	}
	return nil
}
