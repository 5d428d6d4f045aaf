package services

import (
	"context"
	"fmt"

	"kharcha/internal/core"
	"kharcha/internal/log"
)

// FundsGateway is the slice of the remote API the fund-transfer view uses.
type FundsGateway interface {
	ListUsers(ctx context.Context) ([]core.User, error)
	AddFunds(ctx context.Context, fr core.FundsRequest) error
}

// FundsService validates and submits admin fund credits. The admin route
// gate lives in the shell; the server enforces it again regardless.
type FundsService struct {
	gw     FundsGateway
	logger *log.Logger
}

func NewFundsService(gw FundsGateway, logger *log.Logger) *FundsService {
	return &FundsService{
		gw:     gw,
		logger: logger.WithComponent(log.ComponentFunds),
	}
}

func (s *FundsService) Users(ctx context.Context) ([]core.User, error) {
	users, err := s.gw.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	return users, nil
}

// AddFunds parses and validates the amount, then credits the target user.
// A validation failure never reaches the gateway.
func (s *FundsService) AddFunds(ctx context.Context, email, amount string) error {
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	fr := core.FundsRequest{Email: email, Amount: core.Money{Cents: cents}}
	if err := fr.Validate(); err != nil {
		return err
	}

	if err := s.gw.AddFunds(ctx, fr); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Funds added",
		log.FieldOperation, log.OpAddFunds,
		log.FieldUserEmail, email,
		log.FieldAmount, fr.Amount.String())
	return nil
}
