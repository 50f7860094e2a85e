// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Transport instruments requests against one of the two tracker APIs.
// The system label distinguishes source from target traffic.
type Transport struct {
	Base    http.RoundTripper
	system  string
	metrics Provider
}

func NewTransport(base http.RoundTripper, system string, metrics Provider) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, system: system, metrics: metrics}
}

func (t *Transport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	start := time.Now()
	resp, err = t.Base.RoundTrip(req)
	elapsed := float64(time.Since(start)) / float64(time.Second)
	if resp == nil && err != nil {
		return resp, err
	}
	statusCode := strconv.Itoa(resp.StatusCode)
	t.metrics.ObserveAPIRequestDuration(t.system, req.Method, req.URL.Path, statusCode, elapsed)

	if resp.Header.Get("X-From-Cache") == "1" {
		t.metrics.IncreaseCacheHits(t.system, req.Method, req.URL.Path)
	} else {
		t.metrics.IncreaseCacheMisses(t.system, req.Method, req.URL.Path)
	}

	return resp, err
}

func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}
