// Package conoha provides types, interfaces, and helpers for working with
// the ConoHa VPS v3 API.
//
// # Overview
//
// The conoha package defines the domain types (e.g., Server, Volume, Image,
// Domain) and the interfaces for service-oriented clients (e.g.,
// ComputeClient, DNSClient). A concrete implementation of these clients is
// provided by the conohaclient package, which wires configuration,
// transport, authentication, and service-catalog resolution. Most consumers
// should import conohaclient to construct a client and then interact with
// the service client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/conoha-io/conoha-go/pkg/conoha"
//	  "github.com/conoha-io/conoha-go/pkg/conohaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := conohaclient.New(ctx, &conoha.Config{
//	    Username: "api-user",
//	    Password: "api-password",
//	    TenantID: "tenant-id",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  servers, err := cli.Compute().ListServers(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = servers
//	}
//
// Authentication happens lazily on the first request and the token is
// renewed automatically when it expires; a request rejected with 401 is
// retried exactly once after re-authentication.
//
// # Errors
//
// API errors are represented by Error, a tagged variant carrying a Kind,
// the HTTP status code, and the server-provided message. Helpers such as
// IsNotFound, IsTokenExpired, and IsConflict make it easy to branch on
// common cases without inspecting status codes.
package conoha
