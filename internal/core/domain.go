package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Cash   PaymentMode = "cash"
	Card   PaymentMode = "card"
	Online PaymentMode = "online"
)

const (
	Admin    UserType = "admin"
	Standard UserType = "standard"
)

type (
	PaymentMode string

	UserType string

	Category struct {
		ID   int64  `json:"id"`
		Name string `json:"category_name"`
	}

	Subcategory struct {
		ID   int64  `json:"id"`
		Name string `json:"subcategory_name"`
	}

	User struct {
		Email string   `json:"email"`
		Name  string   `json:"naam"`
		Funds Money    `json:"funds"`
		Type  UserType `json:"user_type"`
	}

	// Expense is a record fetched from the API with category, subcategory
	// and owning user embedded. Total is the server-computed amount and is
	// never recomputed from Price and Quantity on this side.
	Expense struct {
		ID               int64       `json:"id"`
		Description      string      `json:"description"`
		Price            Money       `json:"price"`
		Quantity         int         `json:"quantity"`
		Total            *Money      `json:"total_amount"`
		PaymentMode      PaymentMode `json:"payment_mode"`
		Date             time.Time   `json:"expense_date"`
		Category         Category    `json:"category"`
		Subcategory      Subcategory `json:"subcategory"`
		User             User        `json:"user"`
		TransactionImage string      `json:"transaction_image,omitempty"`
		BillImage        string      `json:"bill_image,omitempty"`
	}

	// ExpenseDraft is a new expense as entered by the user, before
	// submission. Attachments travel separately as multipart files.
	ExpenseDraft struct {
		Description   string
		Price         Money
		Quantity      int
		PaymentMode   PaymentMode
		CategoryID    int64
		SubcategoryID int64
		Date          time.Time
	}

	// FundsRequest credits an amount to the user identified by email.
	FundsRequest struct {
		Email  string
		Amount Money
	}
)

var (
	ErrEmptyDescription   = errors.New("empty description")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
	ErrMissingCategory    = errors.New("missing category")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrNoUserSelected     = errors.New("no user selected")
	ErrNothingToExport    = errors.New("nothing to export")
)

func (p PaymentMode) Validate() error {
	switch p {
	case Cash, Card, Online:
		return nil
	}
	return ErrInvalidPaymentMode
}

func (t UserType) IsAdmin() bool {
	return t == Admin
}

// NormalizeUserType maps a raw stored user-type value to its enum. The web
// client this replaces persisted user_type as a JSON-quoted string, so a
// literal `"admin"` (quotes included) must still classify as Admin while
// anything else folds to Standard.
func NormalizeUserType(raw string) UserType {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if UserType(raw) == Admin {
		return Admin
	}
	return Standard
}

func (d ExpenseDraft) Validate() error {
	if len(strings.TrimSpace(d.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(d.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := d.Price.Validate(); err != nil {
		return err
	}
	if d.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if err := d.PaymentMode.Validate(); err != nil {
		return err
	}
	if d.CategoryID <= 0 {
		return ErrMissingCategory
	}
	if d.SubcategoryID <= 0 {
		return errors.New("missing subcategory")
	}
	return nil
}

func (f FundsRequest) Validate() error {
	if strings.TrimSpace(f.Email) == "" {
		return ErrNoUserSelected
	}
	if err := f.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
