package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conoha-io/conoha-go/pkg/conoha"
)

func TestLoadBalancerClient_CreateLoadBalancer(t *testing.T) {
	t.Run("admin state defaults to up", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2.0/lbaas/loadbalancers", r.URL.Path)
			assert.Equal(t, "POST", r.Method)

			var payload map[string]map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

			lb := payload["loadbalancer"]
			assert.Equal(t, "web-lb", lb["name"])
			assert.Equal(t, "sub-1", lb["vip_subnet_id"])
			assert.Equal(t, true, lb["admin_state_up"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"loadbalancer": conoha.LoadBalancer{ID: "lb-1", ProvisioningStatus: "PENDING_CREATE"},
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		lb, err := client.LoadBalancer().CreateLoadBalancer(context.Background(), &conoha.LoadBalancerCreateRequest{
			Name:        "web-lb",
			VIPSubnetID: "sub-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "lb-1", lb.ID)
	})

	t.Run("explicit admin state down", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, false, payload["loadbalancer"]["admin_state_up"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"loadbalancer": conoha.LoadBalancer{ID: "lb-2"},
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		down := false
		_, err := client.LoadBalancer().CreateLoadBalancer(context.Background(), &conoha.LoadBalancerCreateRequest{
			Name:         "web-lb",
			VIPSubnetID:  "sub-1",
			AdminStateUp: &down,
		})
		require.NoError(t, err)
	})
}

func TestLoadBalancerClient_CreateListener(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.0/lbaas/listeners", r.URL.Path)

		var payload map[string]map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		listener := payload["listener"]
		assert.Equal(t, "lb-1", listener["loadbalancer_id"])
		assert.Equal(t, "HTTP", listener["protocol"])
		assert.Equal(t, float64(80), listener["protocol_port"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"listener": conoha.Listener{ID: "lsn-1", Protocol: "HTTP", ProtocolPort: 80},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	listener, err := client.LoadBalancer().CreateListener(context.Background(), &conoha.ListenerCreateRequest{
		LoadBalancerID: "lb-1",
		Protocol:       "HTTP",
		ProtocolPort:   80,
	})
	require.NoError(t, err)
	assert.Equal(t, "lsn-1", listener.ID)
}

func TestLoadBalancerClient_CreateMember(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.0/lbaas/pools/pool-1/members", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var payload map[string]map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		member := payload["member"]
		assert.Equal(t, "10.0.0.5", member["address"])
		assert.Equal(t, float64(8080), member["protocol_port"])
		assert.Equal(t, float64(5), member["weight"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"member": conoha.Member{ID: "mbr-1", Address: "10.0.0.5", ProtocolPort: 8080},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	weight := 5
	member, err := client.LoadBalancer().CreateMember(context.Background(), "pool-1", &conoha.MemberCreateRequest{
		Address:      "10.0.0.5",
		ProtocolPort: 8080,
		Weight:       &weight,
	})
	require.NoError(t, err)
	assert.Equal(t, "mbr-1", member.ID)
}

func TestLoadBalancerClient_CreateHealthMonitor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.0/lbaas/healthmonitors", r.URL.Path)

		var payload map[string]map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		monitor := payload["healthmonitor"]
		assert.Equal(t, "pool-1", monitor["pool_id"])
		assert.Equal(t, "HTTP", monitor["type"])
		assert.Equal(t, float64(10), monitor["delay"])
		assert.Equal(t, float64(5), monitor["timeout"])
		assert.Equal(t, float64(3), monitor["max_retries"])
		assert.Equal(t, "/healthz", monitor["url_path"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"healthmonitor": conoha.HealthMonitor{ID: "hm-1", Type: "HTTP"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	monitor, err := client.LoadBalancer().CreateHealthMonitor(context.Background(), &conoha.HealthMonitorCreateRequest{
		PoolID:     "pool-1",
		Type:       "HTTP",
		Delay:      10,
		Timeout:    5,
		MaxRetries: 3,
		URLPath:    "/healthz",
	})
	require.NoError(t, err)
	assert.Equal(t, "hm-1", monitor.ID)
}

func TestLoadBalancerClient_UpdateHealthMonitor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.0/lbaas/healthmonitors/hm-1", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var payload map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "renamed", payload["healthmonitor"]["name"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"healthmonitor": conoha.HealthMonitor{ID: "hm-1", Name: "renamed"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	monitor, err := client.LoadBalancer().UpdateHealthMonitor(context.Background(), "hm-1", "renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", monitor.Name)
}

func TestLoadBalancerClient_ListLoadBalancers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.0/lbaas/loadbalancers", r.URL.Path)

		_, _ = w.Write([]byte(`{"loadbalancers": [{"id": "lb-1", "provisioning_status": "ACTIVE"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	lbs, err := client.LoadBalancer().ListLoadBalancers(context.Background())
	require.NoError(t, err)
	require.Len(t, lbs, 1)
	assert.Equal(t, "ACTIVE", lbs[0].ProvisioningStatus)
}
