package atlaspay

import (
	"net/url"
	"strconv"
	"time"
)

// PageMeta carries pagination information for list responses.
type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ListOptions selects a page of a list endpoint.
type ListOptions struct {
	Page    int
	PerPage int
}

func (o *ListOptions) query() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return q
}

// Customer is an end user registered with the payment account.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Document  string    `json:"document"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerRequest creates or updates a customer. Document is a CPF or CNPJ.
type CustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
	Phone    string `json:"phone,omitempty"`
}

// PixKeyType enumerates the supported PIX key kinds.
type PixKeyType string

const (
	PixKeyCPF    PixKeyType = "cpf"
	PixKeyCNPJ   PixKeyType = "cnpj"
	PixKeyEmail  PixKeyType = "email"
	PixKeyPhone  PixKeyType = "phone"
	PixKeyRandom PixKeyType = "evp"
)

// PixKey is a PIX key registered on the account.
type PixKey struct {
	ID        string     `json:"id"`
	Key       string     `json:"key"`
	Type      PixKeyType `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
}

// PixKeyRequest registers a new PIX key. Key is left empty for random (evp)
// keys, which the upstream generates.
type PixKeyRequest struct {
	Key  string     `json:"key,omitempty"`
	Type PixKeyType `json:"type"`
}

// PixQRCode is a static QR code bound to a PIX key.
type PixQRCode struct {
	KeyID     string `json:"key_id"`
	Payload   string `json:"payload"`
	ImageB64  string `json:"image_base64"`
	CopyPaste string `json:"copy_paste"`
}

// TransactionStatus enumerates the lifecycle of deposits and withdrawals.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusConfirmed TransactionStatus = "confirmed"
	StatusFailed    TransactionStatus = "failed"
	StatusCanceled  TransactionStatus = "canceled"
	StatusExpired   TransactionStatus = "expired"
)

// Deposit is an inbound payment, fiat (PIX charge) or cryptocurrency.
type Deposit struct {
	ID         string            `json:"id"`
	CustomerID string            `json:"customer_id"`
	Amount     string            `json:"amount"`
	Currency   string            `json:"currency"`
	Status     TransactionStatus `json:"status"`
	// PIX fields, present for fiat deposits.
	TxID      string `json:"txid,omitempty"`
	QRCode    string `json:"qr_code,omitempty"`
	CopyPaste string `json:"copy_paste,omitempty"`
	// Crypto fields, present for cryptocurrency deposits.
	Address   string    `json:"address,omitempty"`
	Network   string    `json:"network,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DepositRequest creates a PIX charge. Amount is a decimal string, e.g.
// "150.00".
type DepositRequest struct {
	Amount      string `json:"amount"`
	CustomerID  string `json:"customer_id"`
	Description string `json:"description,omitempty"`
	// ExpiresIn is the charge lifetime in seconds; upstream default applies
	// when zero.
	ExpiresIn int `json:"expires_in,omitempty"`
}

// CryptoDepositRequest requests a deposit address for a cryptocurrency.
type CryptoDepositRequest struct {
	Currency   string `json:"currency"`
	Network    string `json:"network"`
	CustomerID string `json:"customer_id"`
}

// Withdrawal is an outbound payment, fiat (PIX transfer) or cryptocurrency.
type Withdrawal struct {
	ID         string            `json:"id"`
	CustomerID string            `json:"customer_id"`
	Amount     string            `json:"amount"`
	Currency   string            `json:"currency"`
	Status     TransactionStatus `json:"status"`
	// EndToEndID is set once a PIX withdrawal settles.
	EndToEndID string `json:"end_to_end_id,omitempty"`
	// TxHash is set once a crypto withdrawal is broadcast.
	TxHash    string    `json:"tx_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PixWithdrawalRequest sends funds to a PIX key.
type PixWithdrawalRequest struct {
	Amount      string     `json:"amount"`
	PixKey      string     `json:"pix_key"`
	PixKeyType  PixKeyType `json:"pix_key_type"`
	CustomerID  string     `json:"customer_id,omitempty"`
	Description string     `json:"description,omitempty"`
}

// CryptoWithdrawalRequest sends funds to a cryptocurrency address.
type CryptoWithdrawalRequest struct {
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Network    string `json:"network"`
	Address    string `json:"address"`
	CustomerID string `json:"customer_id,omitempty"`
}
