package service

// QRCodeService renders short payloads as QR code images.
type QRCodeService interface {
	// GenerateCouponQR returns a PNG QR code encoding the coupon code.
	GenerateCouponQR(code string) ([]byte, error)
}
