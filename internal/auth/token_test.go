package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/conoha-io/conoha-go/internal/auth"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{
			name:     "nil token",
			token:    nil,
			expected: false,
		},
		{
			name:     "empty value",
			token:    &auth.Token{Value: ""},
			expected: false,
		},
		{
			name:     "valid token without expiry",
			token:    &auth.Token{Value: "test-token"},
			expected: true,
		},
		{
			name: "valid token with future expiry",
			token: &auth.Token{
				Value:     "test-token",
				ExpiresAt: time.Now().Add(1 * time.Hour),
			},
			expected: true,
		},
		{
			name: "expired token",
			token: &auth.Token{
				Value:     "test-token",
				ExpiresAt: time.Now().Add(-1 * time.Hour),
			},
			expected: false,
		},
		{
			name: "token inside the safety margin",
			token: &auth.Token{
				Value:     "test-token",
				ExpiresAt: time.Now().Add(1 * time.Minute),
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func TestTokenStore_SetAndGet(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()

	token, catalog := store.Get()
	assert.Nil(t, token)
	assert.Nil(t, catalog)

	store.Set(
		&auth.Token{Value: "token-1", ExpiresAt: time.Now().Add(time.Hour)},
		auth.Catalog{"compute": "https://compute.example.com/v2.1"},
	)

	token, catalog = store.Get()
	assert.Equal(t, "token-1", token.Value)

	endpoint, ok := catalog.Endpoint("compute")
	assert.True(t, ok)
	assert.Equal(t, "https://compute.example.com/v2.1", endpoint)
}

func TestTokenStore_Clear(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	store.Set(&auth.Token{Value: "token-1"}, auth.Catalog{"compute": "https://compute.example.com"})
	store.Clear()

	token, catalog := store.Get()
	assert.Nil(t, token)
	assert.Nil(t, catalog)
}

// The token and catalog are replaced as a pair: a reader must never observe
// one authentication event's token with another's catalog.
func TestTokenStore_AtomicPairUnderConcurrency(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	store.Set(&auth.Token{Value: "gen-0"}, auth.Catalog{"compute": "gen-0"})

	var wg sync.WaitGroup

	stop := make(chan struct{})

	for reader := 0; reader < 4; reader++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-stop:
					return
				default:
				}

				token, catalog := store.Get()
				assert.Equal(t, token.Value, catalog["compute"])
			}
		}()
	}

	for i := 1; i <= 100; i++ {
		value := "gen-" + string(rune('0'+i%10))
		store.Set(&auth.Token{Value: value}, auth.Catalog{"compute": value})
	}

	close(stop)
	wg.Wait()
}
