package source

import (
	"context"
	"reflect"
	"testing"

	"jobscout/internal/domain"
)

type fakeProvider struct {
	kind string
}

func (f fakeProvider) Kind() string { return f.kind }

func (f fakeProvider) Fetch(ctx context.Context, company Company) ([]domain.Posting, error) {
	return nil, nil
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(fakeProvider{kind: "greenhouse"}, fakeProvider{kind: "lever"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, ok := reg.For("greenhouse"); !ok {
		t.Error("greenhouse provider not found")
	}
	if _, ok := reg.For("ashby"); ok {
		t.Error("unexpected provider for unregistered kind")
	}

	want := []string{"greenhouse", "lever"}
	if got := reg.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(fakeProvider{kind: "ashby"}, fakeProvider{kind: "ashby"})
	if err == nil {
		t.Fatal("expected error for duplicate kind")
	}
}

func TestNewRegistryRequiresProviders(t *testing.T) {
	if _, err := NewRegistry(); err == nil {
		t.Fatal("expected error for empty provider list")
	}
}
