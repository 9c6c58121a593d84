package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"medico/config"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		name string
		want qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"low", qrcode.Low},
		{"M", qrcode.Medium},
		{"Q", qrcode.High},
		{"highest", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.name))
		})
	}
}

func TestQRCodeService_GenerateCouponQR(t *testing.T) {
	svc := NewQRCodeService(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M"}})

	pngBytes, err := svc.GenerateCouponQR("SAVE10")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestQRCodeService_GenerateCouponQR_EmptyCode(t *testing.T) {
	svc := NewQRCodeService(&config.Config{})

	_, err := svc.GenerateCouponQR("  ")
	assert.Error(t, err)
}

func TestParseCouponQR(t *testing.T) {
	code, err := ParseCouponQR(`{"type":"coupon","code":"SAVE10"}`)
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", code)

	_, err = ParseCouponQR(`{"type":"subscription","code":"SAVE10"}`)
	assert.Error(t, err)

	_, err = ParseCouponQR("not json")
	assert.Error(t, err)
}
