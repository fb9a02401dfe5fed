package atlaspay

import (
	"context"
	"fmt"

	"github.com/atlaspay/atlaspay-go/httpclient"
)

// DepositsService manages inbound payments: PIX charges and cryptocurrency
// deposit addresses.
type DepositsService struct {
	http httpclient.Client
}

// CreatePix creates an immediate PIX charge.
func (s *DepositsService) CreatePix(ctx context.Context, req *DepositRequest) (*Deposit, error) {
	resp, err := s.http.Post(ctx, "/v1/deposits/pix", &httpclient.RequestOptions{Body: req})
	if err != nil {
		return nil, err
	}
	return decodeData[Deposit](resp)
}

// CreateCrypto requests a cryptocurrency deposit address.
func (s *DepositsService) CreateCrypto(ctx context.Context, req *CryptoDepositRequest) (*Deposit, error) {
	resp, err := s.http.Post(ctx, "/v1/deposits/crypto", &httpclient.RequestOptions{Body: req})
	if err != nil {
		return nil, err
	}
	return decodeData[Deposit](resp)
}

// Get fetches a deposit by ID.
func (s *DepositsService) Get(ctx context.Context, id string) (*Deposit, error) {
	resp, err := s.http.Get(ctx, fmt.Sprintf("/v1/deposits/%s", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[Deposit](resp)
}

// List returns a page of deposits.
func (s *DepositsService) List(ctx context.Context, opts *ListOptions) ([]Deposit, *PageMeta, error) {
	resp, err := s.http.Get(ctx, "/v1/deposits", &httpclient.RequestOptions{Query: opts.query()})
	if err != nil {
		return nil, nil, err
	}
	return decodeList[Deposit](resp)
}
