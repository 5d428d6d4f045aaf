package services

import (
	"context"
	"errors"
	"testing"

	"kharcha/internal/core"
	"kharcha/internal/log"
)

type fakeFundsGateway struct {
	users []core.User
	got   *core.FundsRequest
	err   error
	calls int
}

func (f *fakeFundsGateway) ListUsers(ctx context.Context) ([]core.User, error) {
	f.calls++
	return f.users, f.err
}

func (f *fakeFundsGateway) AddFunds(ctx context.Context, fr core.FundsRequest) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.got = &fr
	return nil
}

func TestAddFunds(t *testing.T) {
	gw := &fakeFundsGateway{}
	s := NewFundsService(gw, log.New(log.DefaultConfig()))

	if err := s.AddFunds(context.Background(), "bob@example.com", "500.00"); err != nil {
		t.Fatalf("add funds: %v", err)
	}
	if gw.got == nil || gw.got.Email != "bob@example.com" || gw.got.Amount.Cents != 50000 {
		t.Fatalf("request: %+v", gw.got)
	}
}

func TestAddFundsValidation(t *testing.T) {
	cases := []struct {
		name   string
		email  string
		amount string
		want   error
	}{
		{"no user", "", "10", core.ErrNoUserSelected},
		{"zero amount", "a@b.c", "0", core.ErrInvalidAmount},
		{"negative amount", "a@b.c", "-5", core.ErrInvalidAmount},
		{"not a number", "a@b.c", "ten", core.ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeFundsGateway{}
			s := NewFundsService(gw, log.New(log.DefaultConfig()))

			err := s.AddFunds(context.Background(), tc.email, tc.amount)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if gw.calls != 0 {
				t.Fatalf("validation failure must not reach the gateway")
			}
		})
	}
}

func TestUsers(t *testing.T) {
	gw := &fakeFundsGateway{users: []core.User{{Email: "a@b.c", Name: "Alice"}}}
	s := NewFundsService(gw, log.New(log.DefaultConfig()))

	users, err := s.Users(context.Background())
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Fatalf("users: %+v", users)
	}
}
