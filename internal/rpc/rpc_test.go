package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskboard/platform/internal/errors"
)

type echoReq struct {
	Value string `json:"value"`
}

type echoResp struct {
	Value string `json:"value"`
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := NewServer(ServerConfig{Service: "echo"}, []Endpoint{
		Typed(Command("echo"), func(ctx context.Context, req echoReq) (echoResp, error) {
			return echoResp{Value: req.Value}, nil
		}),
		Typed(Command("fail"), func(ctx context.Context, req echoReq) (echoResp, error) {
			return echoResp{}, errors.NotFound("thing not found")
		}),
		Typed(Command("boom"), func(ctx context.Context, req echoReq) (echoResp, error) {
			return echoResp{}, errors.Internal("", nil)
		}),
		Typed(Command("reject"), func(ctx context.Context, req echoReq) (echoResp, error) {
			return echoResp{}, errors.Validation("invalid echo request", []errors.FieldError{
				{Field: "value", Message: "value is required"},
			})
		}),
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientServerRoundTrip(t *testing.T) {
	srv := newEchoServer(t)
	c := NewClient(ClientConfig{Target: "echo", BaseURL: srv.URL})

	var out echoResp
	if err := c.Call(context.Background(), Command("echo"), echoReq{Value: "hello"}, &out); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out.Value != "hello" {
		t.Errorf("echo = %q, want hello", out.Value)
	}
}

func TestFaultCrossesTheWire(t *testing.T) {
	srv := newEchoServer(t)
	c := NewClient(ClientConfig{Target: "echo", BaseURL: srv.URL})

	err := c.Call(context.Background(), Command("fail"), echoReq{}, nil)
	se := errors.GetServiceError(err)
	if se == nil {
		t.Fatalf("expected a service error, got %v", err)
	}
	if se.HTTPStatus != http.StatusNotFound {
		t.Errorf("status = %d, want 404", se.HTTPStatus)
	}
	if se.Message != "thing not found" {
		t.Errorf("message = %q, want original message preserved", se.Message)
	}
}

func TestFieldErrorsSurviveTheWire(t *testing.T) {
	srv := newEchoServer(t)
	c := NewClient(ClientConfig{Target: "echo", BaseURL: srv.URL})

	err := c.Call(context.Background(), Command("reject"), echoReq{}, nil)
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected validation fault, got %v", err)
	}
	if len(se.Fields) != 1 {
		t.Fatalf("field breakdown lost in transit: %+v", se.Fields)
	}
	if se.Fields[0].Field != "value" || se.Fields[0].Message != "value is required" {
		t.Errorf("unexpected field error %+v", se.Fields[0])
	}
}

func TestInternalFaultIsOpaque(t *testing.T) {
	srv := newEchoServer(t)
	c := NewClient(ClientConfig{Target: "echo", BaseURL: srv.URL})

	err := c.Call(context.Background(), Command("boom"), echoReq{}, nil)
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fault, got %v", err)
	}
	if se.Message != "Internal server error" {
		t.Errorf("message = %q, internals leaked", se.Message)
	}
}

func TestUnknownCommandIs404(t *testing.T) {
	srv := newEchoServer(t)

	resp, err := http.Post(srv.URL+"/rpc/no_such_command", "application/json", nil)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unregistered command", resp.StatusCode)
	}
}

func TestUnreachablePeer(t *testing.T) {
	c := NewClient(ClientConfig{Target: "ghost", BaseURL: "http://127.0.0.1:1"})

	err := c.Call(context.Background(), Command("echo"), echoReq{}, nil)
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal error for unreachable peer, got %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newEchoServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
}
