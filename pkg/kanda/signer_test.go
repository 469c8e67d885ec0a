package kanda

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func expectedSignature(body, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil)) + "." + base64.StdEncoding.EncodeToString([]byte(body))
}

func TestReformat_SpacesAfterCommaAndColon(t *testing.T) {
	out, err := Reformat([]byte(`{"a":1,"b":2}`))
	require.NoError(t, err)
	require.Equal(t, `{"a": 1, "b": 2}`, string(out))
}

func TestReformat_NormalizesExistingWhitespaceAndKeepsOrder(t *testing.T) {
	out, err := Reformat([]byte("{\n  \"z\" : [1, 2],\n  \"a\": {\"x\":\"y\"}\n}"))
	require.NoError(t, err)
	require.Equal(t, `{"z": [1, 2], "a": {"x": "y"}}`, string(out))
}

func TestReformat_TouchesStringContents(t *testing.T) {
	out, err := Reformat([]byte(`{"url":"https://x.test/a,b"}`))
	require.NoError(t, err)
	require.Equal(t, `{"url": "https: //x.test/a, b"}`, string(out))
}

func TestReformat_Invalid(t *testing.T) {
	_, err := Reformat(nil)
	require.ErrorIs(t, err, ErrEmptyPayload)

	_, err = Reformat([]byte("null"))
	require.ErrorIs(t, err, ErrEmptyPayload)

	_, err = Reformat([]byte(`{"a":`))
	require.Error(t, err)
}

func TestSign_MatchesReferenceAndIsDeterministic(t *testing.T) {
	got, err := Sign([]byte(`{"a":1,"b":2}`), "secret")
	require.NoError(t, err)
	require.Equal(t, expectedSignature(`{"a": 1, "b": 2}`, "secret"), got)

	again, err := Sign([]byte(`{"a":1,"b":2}`), "secret")
	require.NoError(t, err)
	require.Equal(t, got, again)

	parts := strings.SplitN(got, ".", 2)
	require.Len(t, parts[0], 64)
	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	require.Equal(t, `{"a": 1, "b": 2}`, string(decoded))
}

func TestSign_KeyMatters(t *testing.T) {
	a, err := Sign([]byte(`{"a":1}`), "one")
	require.NoError(t, err)
	b, err := Sign([]byte(`{"a":1}`), "two")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	_, err = Sign([]byte(`{"a":1}`), "")
	require.ErrorIs(t, err, ErrEmptyEnterpriseID)
}
