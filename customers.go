package atlaspay

import (
	"context"
	"fmt"

	"github.com/atlaspay/atlaspay-go/httpclient"
)

// CustomersService manages customers registered with the payment account.
type CustomersService struct {
	http httpclient.Client
}

// Create registers a new customer.
func (s *CustomersService) Create(ctx context.Context, req *CustomerRequest) (*Customer, error) {
	resp, err := s.http.Post(ctx, "/v1/customers", &httpclient.RequestOptions{Body: req})
	if err != nil {
		return nil, err
	}
	return decodeData[Customer](resp)
}

// Get fetches a customer by ID.
func (s *CustomersService) Get(ctx context.Context, id string) (*Customer, error) {
	resp, err := s.http.Get(ctx, fmt.Sprintf("/v1/customers/%s", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[Customer](resp)
}

// List returns a page of customers.
func (s *CustomersService) List(ctx context.Context, opts *ListOptions) ([]Customer, *PageMeta, error) {
	resp, err := s.http.Get(ctx, "/v1/customers", &httpclient.RequestOptions{Query: opts.query()})
	if err != nil {
		return nil, nil, err
	}
	return decodeList[Customer](resp)
}

// Update replaces a customer's registration data.
func (s *CustomersService) Update(ctx context.Context, id string, req *CustomerRequest) (*Customer, error) {
	resp, err := s.http.Put(ctx, fmt.Sprintf("/v1/customers/%s", id), &httpclient.RequestOptions{Body: req})
	if err != nil {
		return nil, err
	}
	return decodeData[Customer](resp)
}

// Delete removes a customer.
func (s *CustomersService) Delete(ctx context.Context, id string) error {
	_, err := s.http.Delete(ctx, fmt.Sprintf("/v1/customers/%s", id), nil)
	return err
}
