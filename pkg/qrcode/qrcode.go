// Package qrcode renders the fiscal QR code printed on receipts and
// embedded alongside e-invoice documents.
package qrcode

import (
	qr "github.com/skip2/go-qrcode"
)

// IUDContent is the payload encoded for a signed document's QR code.
func IUDContent(iud string) string {
	return "IUD:" + iud
}

// EncodeIUD renders the QR code PNG for a signed document's IUD.
func EncodeIUD(iud string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qr.Encode(IUDContent(iud), qr.Medium, size)
}
