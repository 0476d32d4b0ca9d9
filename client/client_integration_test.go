//go:build integration

package client

import (
	"context"
	"net/http"
	"testing"
)

var c = Client{
	Addr:   "http://localhost:3333",
	Client: http.Client{},
}

func TestPing(t *testing.T) {
	if s, err := c.Ping(); err != nil || s != "pong" {
		t.Fail()
	}
}

func TestListArticlesAgainstRunningServer(t *testing.T) {
	if _, err := c.ListArticles(context.Background()); err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
}
