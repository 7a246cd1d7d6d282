package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"adminbase/internal/auth"
	"adminbase/internal/cache"
	"adminbase/internal/entity"
	"adminbase/internal/errs"
)

func newTestUserService(t *testing.T) (*UserService, *memoryRepo, *cache.Coordinator) {
	t.Helper()
	repo := newMemoryRepo()
	coordinator := cache.NewCoordinator(cache.NewMemoryStore())
	tokens, err := auth.NewTokenService("test-secret", "test", time.Minute*30, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating token service: %v", err)
	}
	return NewUserService(repo, coordinator, tokens), repo, coordinator
}

func registerAlice(t *testing.T, svc *UserService) *entity.UserPublic {
	t.Helper()
	user, err := svc.Register(context.Background(), &entity.RegisterRequest{
		Account:         "alice01",
		Password:        "Secret#1",
		ConfirmPassword: "Secret#1",
		Phone:           "13800138000",
		Email:           "alice@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error registering user: %v", err)
	}
	return user
}

func TestRegisterThenLogin(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	public := registerAlice(t, svc)
	if public.Account != "alice01" {
		t.Fatalf("expected account alice01, got %q", public.Account)
	}

	stored, err := repo.GetUserByAccount(ctx, "alice01")
	if err != nil {
		t.Fatalf("unexpected error loading stored user: %v", err)
	}
	if stored.Salt == "" {
		t.Fatal("expected stored record to carry a salt")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "Secret#1" {
		t.Fatal("expected stored hash to differ from plaintext")
	}

	pair, err := svc.Login(ctx, "alice01", "Secret#1")
	if err != nil {
		t.Fatalf("unexpected error logging in: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected non-empty token pair")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()
	registerAlice(t, svc)

	_, wrongPassword := svc.Login(ctx, "alice01", "wrong")
	_, unknownAccount := svc.Login(ctx, "nobody", "x")

	if wrongPassword == nil || unknownAccount == nil {
		t.Fatal("expected both login attempts to fail")
	}
	if !errors.Is(wrongPassword, errs.ErrNotFound) || !errors.Is(unknownAccount, errs.ErrNotFound) {
		t.Fatalf("expected the same error kind, got %v and %v", wrongPassword, unknownAccount)
	}
	if wrongPassword.Error() != unknownAccount.Error() {
		t.Fatalf("expected identical error messages, got %q and %q", wrongPassword, unknownAccount)
	}
}

func TestRegisterRejectsDuplicateAndMismatch(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()
	registerAlice(t, svc)

	_, err := svc.Register(ctx, &entity.RegisterRequest{
		Account:         "alice01",
		Password:        "Other#2x",
		ConfirmPassword: "Other#2x",
	})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict for duplicate account, got %v", err)
	}

	_, err = svc.Register(ctx, &entity.RegisterRequest{
		Account:         "bobby01",
		Password:        "Secret#1",
		ConfirmPassword: "Different",
	})
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("expected invalid input for confirmation mismatch, got %v", err)
	}
}

func TestGetByIDStripsCredentialsOnBothPaths(t *testing.T) {
	svc, _, coordinator := newTestUserService(t)
	ctx := context.Background()
	public := registerAlice(t, svc)

	// 冷缓存：回源数据库并回填
	fromStore, err := svc.GetByID(ctx, public.ID)
	if err != nil {
		t.Fatalf("unexpected error on cache miss path: %v", err)
	}
	if fromStore.Account != "alice01" {
		t.Fatalf("expected account alice01, got %q", fromStore.Account)
	}

	cached, ok := coordinator.UserInfo(ctx, public.ID)
	if !ok {
		t.Fatal("expected cache to be repopulated after read-through")
	}
	if cached.PasswordHash == "" || cached.Salt == "" {
		t.Fatal("expected cached record to carry credential fields internally")
	}

	// 热缓存：直接命中，同样只返回公开投影
	fromCache, err := svc.GetByID(ctx, public.ID)
	if err != nil {
		t.Fatalf("unexpected error on cache hit path: %v", err)
	}
	if fromCache.Account != fromStore.Account || fromCache.Phone != fromStore.Phone {
		t.Fatalf("expected identical projection from both paths, got %+v and %+v", fromCache, fromStore)
	}
}

func TestGetByIDUnknownUser(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	if _, err := svc.GetByID(context.Background(), 404); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePasswordReusesSalt(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()
	public := registerAlice(t, svc)

	before, err := repo.GetUserByID(ctx, public.ID)
	if err != nil {
		t.Fatalf("unexpected error loading user: %v", err)
	}

	newPassword := "Changed#2"
	if err := svc.Update(ctx, public.ID, &entity.UserUpdateRequest{
		Password:        &newPassword,
		ConfirmPassword: &newPassword,
	}); err != nil {
		t.Fatalf("unexpected error updating password: %v", err)
	}

	after, err := repo.GetUserByID(ctx, public.ID)
	if err != nil {
		t.Fatalf("unexpected error reloading user: %v", err)
	}
	if after.Salt != before.Salt {
		t.Fatal("expected salt to be reused on password change")
	}
	if after.PasswordHash == before.PasswordHash {
		t.Fatal("expected password hash to change")
	}

	if _, err := svc.Login(ctx, "alice01", newPassword); err != nil {
		t.Fatalf("expected login with new password to succeed: %v", err)
	}
	if _, err := svc.Login(ctx, "alice01", "Secret#1"); err == nil {
		t.Fatal("expected login with old password to fail")
	}
}

func TestUpdateRequiresConfirmation(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()
	public := registerAlice(t, svc)

	newPassword := "Changed#2"
	err := svc.Update(ctx, public.ID, &entity.UserUpdateRequest{Password: &newPassword})
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("expected invalid input without confirmation, got %v", err)
	}
}

func TestUpdateWritesPatchThrough(t *testing.T) {
	svc, _, coordinator := newTestUserService(t)
	ctx := context.Background()
	public := registerAlice(t, svc)

	// 先读一次，填充缓存
	if _, err := svc.GetByID(ctx, public.ID); err != nil {
		t.Fatalf("unexpected error priming cache: %v", err)
	}

	phone := "13900139000"
	if err := svc.Update(ctx, public.ID, &entity.UserUpdateRequest{Phone: &phone}); err != nil {
		t.Fatalf("unexpected error updating user: %v", err)
	}

	cached, ok := coordinator.UserInfo(ctx, public.ID)
	if !ok {
		t.Fatal("expected cache entry to survive patch write-through")
	}
	if cached.Phone != phone {
		t.Fatalf("expected patched phone in cache, got %q", cached.Phone)
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	phone := "13900139000"
	err := svc.Update(context.Background(), 404, &entity.UserUpdateRequest{Phone: &phone})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteInvalidatesCache(t *testing.T) {
	svc, _, coordinator := newTestUserService(t)
	ctx := context.Background()
	public := registerAlice(t, svc)

	if _, err := svc.GetByID(ctx, public.ID); err != nil {
		t.Fatalf("unexpected error priming cache: %v", err)
	}
	if err := svc.Delete(ctx, public.ID); err != nil {
		t.Fatalf("unexpected error deleting user: %v", err)
	}

	if _, ok := coordinator.UserInfo(ctx, public.ID); ok {
		t.Fatal("expected user cache entry to be invalidated")
	}
	if _, err := svc.GetByID(ctx, public.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found after deletion, got %v", err)
	}
}
