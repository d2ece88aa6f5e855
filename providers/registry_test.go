package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// stubProvider is a minimal Provider for registry tests.
type stubProvider struct {
	id string
}

func (p *stubProvider) ID() string                      { return p.id }
func (p *stubProvider) Supports(f core.Feature) bool    { return f == core.FeatureChat }
func (p *stubProvider) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return &core.ChatResponse{}, nil
}
func (p *stubProvider) StreamChat(ctx context.Context, req *core.ChatRequest) (*core.ChatStream, error) {
	return nil, core.ErrNotSupported
}
func (p *stubProvider) StreamVisionChat(ctx context.Context, req *core.ChatRequest, images []core.ImageAttachment) (*core.ChatStream, error) {
	return nil, core.ErrNotSupported
}

func TestRegisterAndGet(t *testing.T) {
	Register("stub-get", func(apiKey string) Provider {
		return &stubProvider{id: "stub-get"}
	})

	factory := Get("stub-get")
	if factory == nil {
		t.Fatal("Get() returned nil for a registered provider")
	}

	p := factory("key")
	if p.ID() != "stub-get" {
		t.Errorf("ID() = %q, want %q", p.ID(), "stub-get")
	}
}

func TestGetUnknown(t *testing.T) {
	if factory := Get("no-such-provider"); factory != nil {
		t.Error("Get() returned a factory for an unknown provider")
	}
}

func TestCreate(t *testing.T) {
	Register("stub-create", func(apiKey string) Provider {
		return &stubProvider{id: "stub-create"}
	})

	p, err := Create("stub-create", "key")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID() != "stub-create" {
		t.Errorf("ID() = %q, want %q", p.ID(), "stub-create")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-provider", "key")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("error = %v, want mention of unknown provider", err)
	}
}

func TestListSorted(t *testing.T) {
	Register("stub-b", func(apiKey string) Provider { return &stubProvider{id: "stub-b"} })
	Register("stub-a", func(apiKey string) Provider { return &stubProvider{id: "stub-a"} })

	names := List()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("List() not sorted: %v", names)
		}
	}
}

func TestIsRegistered(t *testing.T) {
	Register("stub-reg", func(apiKey string) Provider { return &stubProvider{id: "stub-reg"} })

	if !IsRegistered("stub-reg") {
		t.Error("IsRegistered() = false for a registered provider")
	}
	if IsRegistered("no-such-provider") {
		t.Error("IsRegistered() = true for an unknown provider")
	}
}
