package atlaspay

import (
	"context"
	"fmt"

	"github.com/atlaspay/atlaspay-go/httpclient"
)

// WithdrawalsService manages outbound payments: PIX transfers and
// cryptocurrency withdrawals.
type WithdrawalsService struct {
	http httpclient.Client
}

// CreatePix sends funds to a PIX key.
func (s *WithdrawalsService) CreatePix(ctx context.Context, req *PixWithdrawalRequest) (*Withdrawal, error) {
	resp, err := s.http.Post(ctx, "/v1/withdrawals/pix", &httpclient.RequestOptions{Body: req})
	if err != nil {
		return nil, err
	}
	return decodeData[Withdrawal](resp)
}

// CreateCrypto sends funds to a cryptocurrency address.
func (s *WithdrawalsService) CreateCrypto(ctx context.Context, req *CryptoWithdrawalRequest) (*Withdrawal, error) {
	resp, err := s.http.Post(ctx, "/v1/withdrawals/crypto", &httpclient.RequestOptions{Body: req})
	if err != nil {
		return nil, err
	}
	return decodeData[Withdrawal](resp)
}

// Get fetches a withdrawal by ID.
func (s *WithdrawalsService) Get(ctx context.Context, id string) (*Withdrawal, error) {
	resp, err := s.http.Get(ctx, fmt.Sprintf("/v1/withdrawals/%s", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[Withdrawal](resp)
}

// List returns a page of withdrawals.
func (s *WithdrawalsService) List(ctx context.Context, opts *ListOptions) ([]Withdrawal, *PageMeta, error) {
	resp, err := s.http.Get(ctx, "/v1/withdrawals", &httpclient.RequestOptions{Query: opts.query()})
	if err != nil {
		return nil, nil, err
	}
	return decodeList[Withdrawal](resp)
}
