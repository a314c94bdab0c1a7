package obs

import (
	"context"
	"testing"
)

func TestWithRequestIDKeepsExistingID(t *testing.T) {
	ctx := WithRequestID(context.Background())
	id := RequestID(ctx)
	if id == "" {
		t.Fatalf("expected a generated id")
	}

	if again := RequestID(WithRequestID(ctx)); again != id {
		t.Fatalf("id changed from %q to %q", id, again)
	}
	if other := RequestID(WithRequestID(context.Background())); other == id {
		t.Fatalf("separate runs share id %q", id)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if id := RequestID(context.Background()); id != "" {
		t.Fatalf("RequestID = %q, want empty", id)
	}
}

func TestContextWithRequestID(t *testing.T) {
	if id := RequestID(ContextWithRequestID(context.Background(), "given")); id != "given" {
		t.Fatalf("RequestID = %q, want given", id)
	}
	if id := RequestID(ContextWithRequestID(context.Background(), "")); id == "" {
		t.Fatalf("blank id should be replaced with a generated one")
	}
}
