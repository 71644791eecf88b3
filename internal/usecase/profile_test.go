package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	testhelpers "github.com/caffeinepub/food-order-delivery-platform/internal/test"
)

func TestProfileUseCaseGetMissing(t *testing.T) {
	uc := NewProfileUseCase(&testhelpers.ProfileRepositoryStub{})
	profile, err := uc.Get(context.Background(), "alice")
	if err != nil || profile != nil {
		t.Fatalf("expected no profile, got %v err=%v", profile, err)
	}
}

func TestProfileUseCaseSaveNormalizes(t *testing.T) {
	repo := &testhelpers.ProfileRepositoryStub{}
	uc := NewProfileUseCase(repo)

	if err := uc.Save(context.Background(), "alice", model.UserProfile{Name: "  Alice ", Phone: " +1 555 0100 "}); err != nil {
		t.Fatalf("save returned error: %v", err)
	}
	profile, err := uc.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if profile.Name != "Alice" || profile.Phone != "+1 555 0100" {
		t.Fatalf("profile not normalized: %+v", profile)
	}
}

func TestProfileUseCaseSaveValidation(t *testing.T) {
	repo := &testhelpers.ProfileRepositoryStub{}
	uc := NewProfileUseCase(repo)

	if err := uc.Save(context.Background(), "alice", model.UserProfile{Name: " ", Phone: "5550100"}); err != domainErrors.ErrInvalidName {
		t.Fatalf("expected invalid name, got %v", err)
	}
	if err := uc.Save(context.Background(), "alice", model.UserProfile{Name: "Alice", Phone: "call me"}); err != domainErrors.ErrInvalidPhone {
		t.Fatalf("expected invalid phone, got %v", err)
	}
	if len(repo.Profiles) != 0 {
		t.Fatal("invalid profile must not be stored")
	}
}

func TestProfileUseCaseGetError(t *testing.T) {
	uc := NewProfileUseCase(&testhelpers.ProfileRepositoryStub{Err: errors.New("db down")})
	if _, err := uc.Get(context.Background(), "alice"); err == nil {
		t.Fatal("expected repository error")
	}
}
