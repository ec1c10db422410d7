package plugin

import (
	"context"
	"testing"
)

func TestNew(t *testing.T) {
	p, err := New(context.Background(), Preloaded(&fakeClient{tools: nil}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "[Edwin] Integration" || p.Description != "Edwin integration plugin" {
		t.Errorf("unexpected descriptor %q / %q", p.Name, p.Description)
	}
	if len(p.Actions) != 0 {
		t.Errorf("expected no actions, got %d", len(p.Actions))
	}
	if len(p.Providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(p.Providers))
	}
	if _, ok := p.Providers[0].(*PortfolioProvider); !ok {
		t.Errorf("unexpected provider %T", p.Providers[0])
	}
}
