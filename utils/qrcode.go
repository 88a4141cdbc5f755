package utils

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRGenerator encodes string payloads (verification URLs) into PNG
// images. Pure and deterministic: the same payload and size always
// produce the same bytes.
type QRGenerator struct {
	Level qrcode.RecoveryLevel
}

func NewQRGenerator() *QRGenerator {
	return &QRGenerator{Level: qrcode.Medium}
}

// Encode renders the payload as a size x size PNG.
func (g *QRGenerator) Encode(payload string, size int) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("qr payload is empty")
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(payload, g.Level, size)
}
