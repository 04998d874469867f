package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestSignIn_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/sign_in", r.URL.Path)

		var body map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["user"]["email"])
		assert.Equal(t, "secret", body["user"]["password"])

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})

	token, err := client.SignIn(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestSignIn_CredentialsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	})

	_, err := client.SignIn(context.Background(), "a@b.com", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid email or password", authErr.Message)
}

func TestRegister_ValidationMessagesPreserved(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string][]string{
			"errors": {"Email has already been taken", "Password is too short"},
		})
	})

	_, err := client.Register(context.Background(), "a@b.com", "x", "A", "B")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"Email has already been taken", "Password is too short"}, valErr.Messages)
}

func TestBearerToken_AttachedWhenPresent(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(User{ID: 1})
	})
	client.SetTokenSource(func() string { return "tok-1" })

	_, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestBearerToken_OmittedWhenAbsent(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Item{})
	})

	_, err := client.ListItems(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestListItems_SearchQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mug", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]Item{{ID: 1, Name: "Mug", Price: "9.99"}})
	})

	items, err := client.ListItems(context.Background(), "mug")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "9.99", items[0].Price)
}

func TestCreateOrder_IdempotencyKeyAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get(HeaderIdempotencyKey))

		var body map[string][]OrderItemRef
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []OrderItemRef{{ItemID: 1, Quantity: 2}}, body["order_items"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Order{ID: 7, Amount: "19.98"})
	})

	order, err := client.CreateOrder(context.Background(), []OrderItemRef{{ItemID: 1, Quantity: 2}}, "key-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
}

func TestCreateOrder_ServerErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "Item out of stock"})
	})

	_, err := client.CreateOrder(context.Background(), []OrderItemRef{{ItemID: 1, Quantity: 1}}, "key-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Item out of stock", apiErr.Message)
}

func TestTransportFailure_IsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, time.Second)
	srv.Close()

	_, err := client.ListOrders(context.Background())
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestNotFound_IsNotFoundError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Item not found"})
	})

	err := client.DeleteItem(context.Background(), 42)
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Item not found", nfErr.Message)
}

func TestOrderDecoding_NestedLines(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"id": 3,
			"user_id": 1,
			"amount": "24.98",
			"created_at": "2026-08-01T10:00:00Z",
			"order_descriptions": [
				{"id": 5, "item_id": 1, "quantity": 2, "item": {"id": 1, "name": "Mug", "price": "9.99", "description": "d"}},
				{"id": 6, "item_id": 2, "quantity": 1, "item": null}
			]
		}]`))
	})

	orders, err := client.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Lines, 2)
	require.NotNil(t, orders[0].Lines[0].Item)
	assert.Equal(t, "9.99", orders[0].Lines[0].Item.Price)
	assert.Nil(t, orders[0].Lines[1].Item)
}
