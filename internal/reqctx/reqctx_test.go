package reqctx

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithRequestContext(t *testing.T) {
	ctx := WithRequestContext(context.Background())
	rc := GetRequestContext(ctx)
	if _, err := uuid.Parse(rc.RequestID); err != nil {
		t.Fatalf("request id %q is not a uuid: %v", rc.RequestID, err)
	}
	if rc.StartTime.IsZero() {
		t.Fatal("expected start time to be set")
	}
}

func TestEnsureKeepsExistingID(t *testing.T) {
	ctx := WithRequestContext(context.Background())
	id := GetRequestContext(ctx).RequestID

	if got := GetRequestContext(Ensure(ctx)).RequestID; got != id {
		t.Fatalf("Ensure replaced id %q with %q", id, got)
	}
	if _, ok := FromContext(Ensure(context.Background())); !ok {
		t.Fatal("Ensure must attach a request context")
	}
}

func TestGetRequestContextWithoutID(t *testing.T) {
	if got := GetRequestContext(context.Background()).RequestID; got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
}

func TestRequestError(t *testing.T) {
	base := errors.New("fetch failed")
	ctx := WithRequestContext(context.Background())
	err := NewRequestError(ctx, base)

	if !errors.Is(err, base) {
		t.Fatal("RequestError must unwrap to the cause")
	}
	var re *RequestError
	if !errors.As(err, &re) || re.RequestID != GetRequestContext(ctx).RequestID {
		t.Fatalf("unexpected request error %v", err)
	}
}
