// Package kanda builds signed request tokens for the Kanda finance application
// endpoint. The receiver verifies the HMAC over the exact bytes it decodes from
// the base64 half, so the body layout produced by Reformat is part of the wire
// contract.
package kanda

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload      = errors.New("payload is required")
	ErrEmptyEnterpriseID = errors.New("enterpriseId is required")
)

// Reformat compacts payload (keeping key order) and inserts a space after every
// comma and colon, string contents included.
func Reformat(payload []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyPayload
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return nil, fmt.Errorf("invalid payload json: %w", err)
	}

	out := make([]byte, 0, compact.Len()+compact.Len()/4)
	for _, b := range compact.Bytes() {
		out = append(out, b)
		if b == ',' || b == ':' {
			out = append(out, ' ')
		}
	}
	return out, nil
}

// Sign returns "<hex hmac-sha256(body, enterpriseID)>.<base64(body)>" where body
// is Reformat(payload).
func Sign(payload []byte, enterpriseID string) (string, error) {
	if enterpriseID == "" {
		return "", ErrEmptyEnterpriseID
	}
	body, err := Reformat(payload)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, []byte(enterpriseID))
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil)) + "." + base64.StdEncoding.EncodeToString(body), nil
}
