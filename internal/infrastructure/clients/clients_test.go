package clients

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "homequote.backend/internal/domain/errors"
)

func TestStripeClient_CreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_1", r.Header.Get("Authorization"))
		assert.Equal(t, "idem-1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2500", r.PostForm.Get("amount"))
		assert.Equal(t, "gbp", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_x"}`))
	}))
	defer srv.Close()

	c := NewStripeClient(srv.URL, time.Second)
	secret, err := c.CreatePaymentIntent(context.Background(), "sk_test_1", 2500, "gbp", "idem-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_x", secret)
}

func TestStripeClient_ErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
	}))
	defer srv.Close()

	_, err := NewStripeClient(srv.URL, time.Second).CreatePaymentIntent(context.Background(), "bad", 100, "gbp", "")
	require.ErrorIs(t, err, domainerrors.ErrUpstream)
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestAuthProviderClient_ExchangeCode(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "pkce", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "code-1", body["auth_code"])
		assert.Equal(t, "verifier-1", body["code_verifier"])
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "at",
			"refresh_token": "rt",
			"user":          map[string]string{"id": userID.String(), "email": "p@x.test"},
		})
	}))
	defer srv.Close()

	session, err := NewAuthProviderClient(srv.URL, "anon-key", time.Second).ExchangeCode(context.Background(), "code-1", "verifier-1")
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "p@x.test", session.Email)
	assert.Equal(t, "at", session.AccessToken)
}

func TestAuthProviderClient_RejectedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code expired"}`))
	}))
	defer srv.Close()

	_, err := NewAuthProviderClient(srv.URL, "k", time.Second).ExchangeCode(context.Background(), "c", "v")
	require.ErrorIs(t, err, domainerrors.ErrUpstream)
	assert.Contains(t, err.Error(), "code expired")
}

func TestPostcodeClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.EscapedPath() {
		case "/postcodes/SW1A%201AA":
			_, _ = w.Write([]byte(`{"status":200,"result":{"postcode":"SW1A 1AA","country":"England","region":"London","admin_district":"Westminster","latitude":51.501,"longitude":-0.141}}`))
		case "/postcodes/ZZ1%201ZZ":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":404,"error":"Postcode not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewPostcodeClient(srv.URL, time.Second)

	got, err := c.Lookup(context.Background(), "SW1A 1AA")
	require.NoError(t, err)
	assert.Equal(t, "Westminster", got.AdminDistrict)
	assert.InDelta(t, 51.501, got.Latitude, 0.0001)

	_, err = c.Lookup(context.Background(), "ZZ1 1ZZ")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = c.Lookup(context.Background(), "BOOM")
	require.ErrorIs(t, err, domainerrors.ErrUpstream)
}

func TestGHLClient_ExchangeAndLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret-1", r.PostForm.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			assert.Equal(t, "code-1", r.PostForm.Get("code"))
			_, _ = w.Write([]byte(`{"access_token":"at1","refresh_token":"rt1","expires_in":86399,"token_type":"Bearer","locationId":"loc-9"}`))
		case "refresh_token":
			assert.Equal(t, "rt1", r.PostForm.Get("refresh_token"))
			_, _ = w.Write([]byte(`{"access_token":"at2","refresh_token":"rt2","expires_in":86399,"token_type":"Bearer"}`))
		}
	})
	mux.HandleFunc("/locations/loc-9/customFields", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at1", r.Header.Get("Authorization"))
		assert.Equal(t, "2021-07-28", r.Header.Get("Version"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"customFields":[{"id":"cf1","name":"Boiler age","fieldKey":"contact.boiler_age","dataType":"TEXT"}]}`))
	})
	mux.HandleFunc("/opportunities/pipelines", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "loc-9", r.URL.Query().Get("locationId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pipelines":[{"id":"p1","name":"Installs","stages":[{"id":"s1","name":"New"},{"id":"s2","name":"Won"}]}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewGHLClient(GHLConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RedirectURL:  "http://localhost/auth/crm/callback",
		AuthURL:      srv.URL + "/oauth/chooselocation",
		TokenURL:     srv.URL + "/oauth/token",
		APIBaseURL:   srv.URL,
		APIVersion:   "2021-07-28",
		Scopes:       []string{"contacts.readonly"},
		Timeout:      time.Second,
	})

	authURL := c.AuthCodeURL("state-1")
	assert.Contains(t, authURL, "state=state-1")
	assert.Contains(t, authURL, "client_id=client-1")

	set, err := c.Exchange(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "at1", set.AccessToken)
	assert.Equal(t, "loc-9", set.LocationID)
	assert.True(t, set.ExpiresAt.After(time.Now()))

	refreshed, err := c.Refresh(context.Background(), "rt1", "loc-9")
	require.NoError(t, err)
	assert.Equal(t, "at2", refreshed.AccessToken)
	assert.Equal(t, "loc-9", refreshed.LocationID)

	fields, err := c.ListCustomFields(context.Background(), "at1", "loc-9")
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "contact.boiler_age", fields[0].FieldKey)

	pipelines, err := c.ListPipelines(context.Background(), "at1", "loc-9")
	require.NoError(t, err)
	require.Len(t, pipelines, 1)
	assert.Len(t, pipelines[0].Stages, 2)
}

func TestGHLClient_ExchangeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	c := NewGHLClient(GHLConfig{TokenURL: srv.URL, APIBaseURL: srv.URL, Timeout: time.Second})
	_, err := c.Exchange(context.Background(), "bad")
	require.ErrorIs(t, err, domainerrors.ErrUpstream)
}

type fakeResolver struct {
	records map[string][]string
	err     error
}

func (f fakeResolver) LookupTXT(_ context.Context, name string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.records[name]; ok {
		return r, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: name, IsNotFound: true}
}

func TestDomainVerifier(t *testing.T) {
	v := NewDomainVerifier(fakeResolver{records: map[string][]string{
		"_homequote-verify.quotes.acme.test": {"other", " tok-1 "},
	}}, "_homequote-verify")

	assert.Equal(t, "_homequote-verify.quotes.acme.test", v.RecordName("quotes.acme.test"))

	ok, err := v.Verify(context.Background(), "quotes.acme.test", "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify(context.Background(), "quotes.acme.test", "tok-2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Verify(context.Background(), "missing.test", "tok-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = NewDomainVerifier(fakeResolver{err: &net.DNSError{Err: "timeout", IsTimeout: true}}, "_x").Verify(context.Background(), "a.test", "t")
	assert.Error(t, err)
}
