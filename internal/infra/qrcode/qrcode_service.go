package qrcode

import (
	"encoding/json"
	"strings"

	"medico/config"
	"medico/internal/domain/service"
	"medico/internal/errors"

	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// CouponPayload is the JSON document encoded in a coupon QR code.
type CouponPayload struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// NewQRCodeService creates a QR code service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := defaultQRSize, "medium"
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(level),
	}
}

func recoveryLevel(name string) qrcode.RecoveryLevel {
	switch strings.ToLower(name) {
	case "l", "low":
		return qrcode.Low
	case "q", "high":
		return qrcode.High
	case "h", "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateCouponQR renders the coupon payload as a PNG image.
func (s *qrcodeService) GenerateCouponQR(code string) ([]byte, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("coupon code is empty")
	}

	payload, err := json.Marshal(CouponPayload{Type: "coupon", Code: code})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(payload), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseCouponQR extracts the coupon code from a scanned payload.
func ParseCouponQR(data string) (string, error) {
	var payload CouponPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal QR code data")
	}
	if payload.Type != "coupon" || payload.Code == "" {
		return "", errors.New("not a coupon QR code")
	}

	return payload.Code, nil
}
