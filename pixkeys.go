package atlaspay

import (
	"context"
	"fmt"

	"github.com/atlaspay/atlaspay-go/httpclient"
)

// PixKeysService manages the PIX keys registered on the account.
type PixKeysService struct {
	http httpclient.Client
}

// Create registers a new PIX key. For random (evp) keys leave Key empty;
// the upstream generates one.
func (s *PixKeysService) Create(ctx context.Context, req *PixKeyRequest) (*PixKey, error) {
	resp, err := s.http.Post(ctx, "/v1/pix/keys", &httpclient.RequestOptions{Body: req})
	if err != nil {
		return nil, err
	}
	return decodeData[PixKey](resp)
}

// List returns all PIX keys on the account.
func (s *PixKeysService) List(ctx context.Context) ([]PixKey, error) {
	resp, err := s.http.Get(ctx, "/v1/pix/keys", nil)
	if err != nil {
		return nil, err
	}
	keys, _, err := decodeList[PixKey](resp)
	return keys, err
}

// Delete removes a PIX key.
func (s *PixKeysService) Delete(ctx context.Context, id string) error {
	_, err := s.http.Delete(ctx, fmt.Sprintf("/v1/pix/keys/%s", id), nil)
	return err
}

// QRCode returns the static QR code for a PIX key.
func (s *PixKeysService) QRCode(ctx context.Context, id string) (*PixQRCode, error) {
	resp, err := s.http.Get(ctx, fmt.Sprintf("/v1/pix/keys/%s/qrcode", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[PixQRCode](resp)
}
